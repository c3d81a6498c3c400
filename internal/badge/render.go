// Package badge renders embeddable SVG badges.
//
// Rendering is pure: the same configuration always produces the same bytes,
// element ids included, so responses can be cached and compared by content.
package badge

import (
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"strings"

	"AIDIR-Backend/internal/domain"
	"AIDIR-Backend/pkg/badgefmt"
)

const (
	captionPro     = "FEATURED ON"
	captionProPlus = "PRO+ FEATURED ON"

	// charWidth approximates the advance of one glyph relative to font size.
	charWidth = 0.6
)

// Icons are drawn on a 24x24 grid and scaled to the icon size.
const (
	sparklesPath = "M12 2l1.9 5.6 5.6 1.9-5.6 1.9L12 17l-1.9-5.6-5.6-1.9 5.6-1.9zM19 15l.8 2.2 2.2.8-2.2.8L19 21l-.8-2.2-2.2-.8 2.2-.8z"
	crownPath    = "M3 7l4.5 4L12 4l4.5 7L21 7l-2 11H5zM5 19.5h14V21H5z"
	alertPath    = "M12 2a10 10 0 1 0 0 20 10 10 0 0 0 0-20zm-1 5h2v7h-2zm0 9h2v2h-2z"
)

// Renderer turns badge configurations into SVG documents.
type Renderer struct {
	layout   *Layout
	platform string
}

// NewRenderer creates a renderer over a prebuilt layout table.
func NewRenderer(layout *Layout, platform string) *Renderer {
	return &Renderer{
		layout:   layout,
		platform: platform,
	}
}

// AltText is the accessible description shared by badges and embed snippets.
func AltText(productName, platform string) string {
	return productName + " - Featured on " + platform
}

// Render produces the SVG for a validated configuration. A configuration
// that has no layout entry yields the server-error badge.
func (r *Renderer) Render(cfg domain.BadgeConfig) string {
	style, ok := r.layout.Lookup(cfg.Variant, cfg.Size, cfg.Theme)
	if !ok {
		return r.RenderError(domain.ErrorServerError, cfg.Size)
	}

	id := elementID("b", string(cfg.Variant), string(cfg.Size), string(cfg.Theme))
	title := badgefmt.EscapeXML(AltText(cfg.ProductName, r.platform))
	count := badgefmt.FormatUpvoteCount(cfg.UpvotesCount)

	caption, icon := captionPro, sparklesPath
	if cfg.Variant == domain.VariantProPlus {
		caption, icon = captionProPlus, crownPath
	}

	w, h := style.Width, style.Height
	var b strings.Builder
	b.Grow(2048)

	writeHeader(&b, w, h, title)
	writeDefs(&b, id, style.Palette)
	if cfg.Theme == domain.ThemeAuto {
		if dark, ok := r.layout.Lookup(cfg.Variant, cfg.Size, domain.ThemeDark); ok {
			writeDarkScheme(&b, dark.Palette)
		}
	}
	writeBackground(&b, id, style)

	// left group: icon and two-line label
	iconY := (h - style.IconSize) / 2
	fmt.Fprintf(&b, `<g transform="translate(%d %d)"><path class="i" fill="%s" transform="scale(%s)" d="%s"/></g>`,
		style.Padding, iconY, style.Accent, num(float64(style.IconSize)/24), icon)

	textX := style.Padding + style.IconSize + style.Gap
	fmt.Fprintf(&b, `<g font-family="%s"><text class="c" x="%d" y="%d" fill="%s" font-size="%d" font-weight="600" letter-spacing="0.5">%s</text>`,
		FontFamily, textX, h/2-3, style.Caption, style.CaptionSize, badgefmt.EscapeXML(caption))
	fmt.Fprintf(&b, `<text class="t" x="%d" y="%d" fill="%s" font-size="%d" font-weight="700">%s</text>`,
		textX, h/2+style.LabelSize-2, style.Text, style.LabelSize, badgefmt.EscapeXML(r.platform))

	// right group: upvote glyph and count, anchored to the right edge
	countRight := w - style.Padding
	countWidth := textWidth(count, style.CountSize)
	arrow := int(math.Round(float64(style.CountSize) * 0.7))
	arrowX := countRight - countWidth - style.Gap/2 - arrow
	arrowY := (h - arrow) / 2
	fmt.Fprintf(&b, `<path class="i" fill="%s" d="M%d %dL%s %dL%d %dz"/>`,
		style.Accent, arrowX, arrowY+arrow, num(float64(arrowX)+float64(arrow)/2), arrowY, arrowX+arrow, arrowY+arrow)
	fmt.Fprintf(&b, `<text class="t" x="%d" y="%d" fill="%s" font-size="%d" font-weight="700" text-anchor="end">%s</text></g>`,
		countRight, h/2+style.CountSize/3, style.Text, style.CountSize, badgefmt.EscapeXML(count))

	b.WriteString(`</svg>`)
	return b.String()
}

// RenderError produces the neutral badge for an error kind. Unknown sizes
// fall back to medium so the caller always gets a valid image.
func (r *Renderer) RenderError(kind domain.ErrorKind, size domain.Size) string {
	style, ok := r.layout.ErrorStyle(size)
	if !ok {
		size = domain.DefaultSize
		style, _ = r.layout.ErrorStyle(size)
	}

	id := elementID("e", string(kind), string(size))
	msg := badgefmt.EscapeXML(kind.Message())
	w, h := style.Width, style.Height

	var b strings.Builder
	b.Grow(1024)

	writeHeader(&b, w, h, msg)
	writeDefs(&b, id, style.Palette)
	writeBackground(&b, id, style)

	iconY := (h - style.IconSize) / 2
	fmt.Fprintf(&b, `<g transform="translate(%d %d)"><path fill="%s" transform="scale(%s)" d="%s"/></g>`,
		style.Padding, iconY, style.Accent, num(float64(style.IconSize)/24), alertPath)
	fmt.Fprintf(&b, `<text x="%d" y="%d" fill="%s" font-family="%s" font-size="%d" font-weight="600">%s</text>`,
		style.Padding+style.IconSize+style.Gap, h/2+style.LabelSize/3, style.Text, FontFamily, style.LabelSize-1, msg)

	b.WriteString(`</svg>`)
	return b.String()
}

func writeHeader(b *strings.Builder, w, h int, title string) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" role="img" aria-label="%s"><title>%s</title>`,
		w, h, w, h, title, title)
}

func writeDefs(b *strings.Builder, id string, p Palette) {
	fmt.Fprintf(b, `<defs><linearGradient id="g%s" x1="0" y1="0" x2="0" y2="1"><stop class="a" offset="0" stop-color="%s"/><stop class="z" offset="1" stop-color="%s"/></linearGradient>`,
		id, p.GradientFrom, p.GradientTo)
	fmt.Fprintf(b, `<filter id="s%s" x="-5%%" y="-10%%" width="110%%" height="130%%"><feDropShadow dx="0" dy="1" stdDeviation="1" flood-color="#000" flood-opacity="%s"/></filter></defs>`,
		id, p.ShadowOpacity)
}

func writeDarkScheme(b *strings.Builder, p Palette) {
	fmt.Fprintf(b, `<style>@media (prefers-color-scheme:dark){.a{stop-color:%s}.z{stop-color:%s}.r{stroke:%s}.t{fill:%s}.c{fill:%s}.i{fill:%s}}</style>`,
		p.GradientFrom, p.GradientTo, p.Border, p.Text, p.Caption, p.Accent)
}

func writeBackground(b *strings.Builder, id string, s Style) {
	fmt.Fprintf(b, `<rect class="r" x="1" y="1" width="%d" height="%d" rx="%d" fill="url(#g%s)" stroke="%s" filter="url(#s%s)"/>`,
		s.Width-2, s.Height-3, s.Radius, id, s.Border, id)
}

// elementID derives gradient and filter ids from the inputs that shape the
// badge, never from time, so equal inputs give equal documents.
func elementID(prefix string, parts ...string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s%08x", prefix, h.Sum32())
}

func textWidth(text string, fontSize int) int {
	return int(math.Ceil(float64(len(text)*fontSize) * charWidth))
}

func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*1000)/1000, 'f', -1, 64)
}
