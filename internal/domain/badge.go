package domain

import (
	"errors"

	"AIDIR-Backend/pkg/badgefmt"
)

var (
	ErrUpgradeRequired = errors.New("variant requires a higher subscription tier")
	ErrInvalidSlug     = errors.New("invalid product slug")
	ErrInvalidConfig   = errors.New("invalid badge configuration")
)

// Variant is the visual class of a badge.
type Variant string

const (
	VariantPro     Variant = "pro"
	VariantProPlus Variant = "pro-plus"
)

// Size selects one of the fixed badge dimensions.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Theme selects the badge palette. ThemeAuto follows the viewer's color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

const (
	DefaultVariant = VariantPro
	DefaultSize    = SizeMedium
	DefaultTheme   = ThemeAuto
)

// ParseVariant returns the variant named by s and whether it is known.
func ParseVariant(s string) (Variant, bool) {
	switch v := Variant(s); v {
	case VariantPro, VariantProPlus:
		return v, true
	}
	return DefaultVariant, false
}

// ParseSize returns the size named by s and whether it is known.
func ParseSize(s string) (Size, bool) {
	switch v := Size(s); v {
	case SizeSmall, SizeMedium, SizeLarge:
		return v, true
	}
	return DefaultSize, false
}

// ParseTheme returns the theme named by s and whether it is known.
func ParseTheme(s string) (Theme, bool) {
	switch v := Theme(s); v {
	case ThemeLight, ThemeDark, ThemeAuto:
		return v, true
	}
	return DefaultTheme, false
}

// Resolved collapses ThemeAuto onto the light palette used as its base.
func (t Theme) Resolved() Theme {
	if t == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// BadgeData is the per-request view of a product used to pick a badge.
type BadgeData struct {
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductSlug  string `json:"product_slug"`
	UpvotesCount int    `json:"upvotes_count"`
	UserTier     Tier   `json:"user_tier"`
	IsPublished  bool   `json:"is_published"`
	IsOwner      bool   `json:"is_owner"`
}

// BadgeConfig is the complete input of the renderer.
type BadgeConfig struct {
	Variant      Variant
	Size         Size
	Theme        Theme
	UpvotesCount int
	ProductName  string
	ProductSlug  string
}

// Validate checks the configuration against the owner's tier.
func (c BadgeConfig) Validate(tier Tier) error {
	if _, ok := ParseVariant(string(c.Variant)); !ok {
		return ErrInvalidConfig
	}
	if _, ok := ParseSize(string(c.Size)); !ok {
		return ErrInvalidConfig
	}
	if _, ok := ParseTheme(string(c.Theme)); !ok {
		return ErrInvalidConfig
	}
	if c.UpvotesCount < 0 {
		return ErrInvalidConfig
	}
	if !badgefmt.IsValidSlug(c.ProductSlug) {
		return ErrInvalidSlug
	}
	if !tier.AllowsVariant(c.Variant) {
		return ErrUpgradeRequired
	}
	return nil
}

// ErrorKind identifies the neutral badge served instead of a real one.
type ErrorKind string

const (
	ErrorProductNotFound ErrorKind = "product-not-found"
	ErrorNotPublished    ErrorKind = "not-published"
	ErrorUpgradeRequired ErrorKind = "upgrade-required"
	ErrorInvalidSlug     ErrorKind = "invalid-slug"
	ErrorServerError     ErrorKind = "server-error"
	ErrorRateLimited     ErrorKind = "rate-limited"
)

var errorMessages = map[ErrorKind]string{
	ErrorProductNotFound: "Product not found",
	ErrorNotPublished:    "Product not published",
	ErrorUpgradeRequired: "Pro+ plan required",
	ErrorInvalidSlug:     "Invalid product",
	ErrorServerError:     "Badge unavailable",
	ErrorRateLimited:     "Too many requests",
}

// Message returns the fixed human readable text of the error kind.
func (k ErrorKind) Message() string {
	if msg, ok := errorMessages[k]; ok {
		return msg
	}
	return errorMessages[ErrorServerError]
}
