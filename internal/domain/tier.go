package domain

import "strings"

// Tier is the effective subscription level of a product owner.
type Tier string

const (
	TierFree    Tier = "free"
	TierPro     Tier = "pro"
	TierProPlus Tier = "pro_plus"
)

// ParseTier maps a billing plan name onto a Tier. Unknown plans are free.
func ParseTier(planName string) Tier {
	switch strings.ToLower(strings.TrimSpace(planName)) {
	case "pro":
		return TierPro
	case "pro_plus", "pro-plus":
		return TierProPlus
	default:
		return TierFree
	}
}

// IsPaid reports whether the tier comes from a paid plan.
func (t Tier) IsPaid() bool {
	return t == TierPro || t == TierProPlus
}

// AllowsVariant reports whether a badge variant may be served for this tier.
func (t Tier) AllowsVariant(v Variant) bool {
	switch v {
	case VariantPro:
		return true
	case VariantProPlus:
		return t == TierProPlus
	default:
		return false
	}
}

func (t Tier) String() string {
	return string(t)
}
