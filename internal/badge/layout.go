package badge

import "AIDIR-Backend/internal/domain"

// Dimensions is the outer size of a badge in pixels.
type Dimensions struct {
	Width  int
	Height int
}

// Spacing holds the inner metrics of a badge.
type Spacing struct {
	Padding  int
	IconSize int
	Gap      int
	Radius   int
}

// Typography holds font sizes of the three text runs.
type Typography struct {
	CaptionSize int
	LabelSize   int
	CountSize   int
}

// Palette holds the colors of one (variant, theme) pair.
type Palette struct {
	GradientFrom  string
	GradientTo    string
	Border        string
	Text          string
	Caption       string
	Accent        string
	ShadowOpacity string
}

// Style is everything the renderer needs for one table entry.
type Style struct {
	Dimensions
	Spacing
	Typography
	Palette
}

// FontFamily is a system font stack so badges never load external fonts.
const FontFamily = "system-ui,-apple-system,Segoe UI,Roboto,Helvetica,Arial,sans-serif"

type styleKey struct {
	variant domain.Variant
	size    domain.Size
	theme   domain.Theme
}

// Layout is the immutable lookup table indexed by (variant, size, theme).
// Build it once with NewLayout and share the pointer.
type Layout struct {
	styles map[styleKey]Style
	errors map[domain.Size]Style
}

var sizeMetrics = map[domain.Size]struct {
	Dimensions
	Spacing
	Typography
}{
	domain.SizeSmall: {
		Dimensions{Width: 180, Height: 40},
		Spacing{Padding: 10, IconSize: 16, Gap: 6, Radius: 8},
		Typography{CaptionSize: 8, LabelSize: 12, CountSize: 13},
	},
	domain.SizeMedium: {
		Dimensions{Width: 220, Height: 48},
		Spacing{Padding: 12, IconSize: 20, Gap: 8, Radius: 10},
		Typography{CaptionSize: 9, LabelSize: 14, CountSize: 15},
	},
	domain.SizeLarge: {
		Dimensions{Width: 260, Height: 56},
		Spacing{Padding: 14, IconSize: 24, Gap: 10, Radius: 12},
		Typography{CaptionSize: 10, LabelSize: 16, CountSize: 17},
	},
}

var palettes = map[domain.Variant]map[domain.Theme]Palette{
	domain.VariantPro: {
		domain.ThemeLight: {
			GradientFrom: "#ffffff", GradientTo: "#f3f4f6", Border: "#e5e7eb",
			Text: "#111827", Caption: "#6b7280", Accent: "#6366f1", ShadowOpacity: "0.12",
		},
		domain.ThemeDark: {
			GradientFrom: "#1f2937", GradientTo: "#111827", Border: "#374151",
			Text: "#f9fafb", Caption: "#9ca3af", Accent: "#818cf8", ShadowOpacity: "0.4",
		},
	},
	domain.VariantProPlus: {
		domain.ThemeLight: {
			GradientFrom: "#fffbeb", GradientTo: "#fef3c7", Border: "#fcd34d",
			Text: "#78350f", Caption: "#b45309", Accent: "#d97706", ShadowOpacity: "0.15",
		},
		domain.ThemeDark: {
			GradientFrom: "#292524", GradientTo: "#1c1917", Border: "#a16207",
			Text: "#fef3c7", Caption: "#fbbf24", Accent: "#f59e0b", ShadowOpacity: "0.45",
		},
	},
}

var errorPalette = Palette{
	GradientFrom: "#f9fafb", GradientTo: "#e5e7eb", Border: "#d1d5db",
	Text: "#4b5563", Caption: "#6b7280", Accent: "#9ca3af", ShadowOpacity: "0.1",
}

// NewLayout builds the full table for every variant, size and concrete theme.
func NewLayout() *Layout {
	l := &Layout{
		styles: make(map[styleKey]Style),
		errors: make(map[domain.Size]Style),
	}

	for size, m := range sizeMetrics {
		for variant, byTheme := range palettes {
			for theme, palette := range byTheme {
				l.styles[styleKey{variant, size, theme}] = Style{
					Dimensions: m.Dimensions,
					Spacing:    m.Spacing,
					Typography: m.Typography,
					Palette:    palette,
				}
			}
		}
		l.errors[size] = Style{
			Dimensions: m.Dimensions,
			Spacing:    m.Spacing,
			Typography: m.Typography,
			Palette:    errorPalette,
		}
	}

	return l
}

// Lookup returns the style for the key. ThemeAuto resolves to light.
func (l *Layout) Lookup(variant domain.Variant, size domain.Size, theme domain.Theme) (Style, bool) {
	s, ok := l.styles[styleKey{variant, size, theme.Resolved()}]
	return s, ok
}

// ErrorStyle returns the neutral style used by error badges of a size.
func (l *Layout) ErrorStyle(size domain.Size) (Style, bool) {
	s, ok := l.errors[size]
	return s, ok
}

// DimensionsFor returns the outer size of a badge, defaulting to medium.
func DimensionsFor(size domain.Size) Dimensions {
	if m, ok := sizeMetrics[size]; ok {
		return m.Dimensions
	}
	return sizeMetrics[domain.DefaultSize].Dimensions
}
