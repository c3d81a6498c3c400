// Package access decides which badge variants a product owner may serve.
package access

import (
	"AIDIR-Backend/internal/domain"
	"AIDIR-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"
)

// SubscriptionReader is the part of the storage the resolver reads.
type SubscriptionReader interface {
	GetActiveSubscription(ctx context.Context, userID int64, now time.Time) (*domain.Subscription, error)
}

// Entitlements is the resolved set of badge capabilities of an owner.
type Entitlements struct {
	Tier              domain.Tier      `json:"tier"`
	IsPaid            bool             `json:"isPaid"`
	CanUsePlusVariant bool             `json:"canUsePlusVariant"`
	AllowedVariants   []domain.Variant `json:"allowedVariants"`
}

// Resolver maps owners to tiers. It holds no cache of its own.
type Resolver struct {
	subs SubscriptionReader
	now  func() time.Time
}

func NewResolver(subs SubscriptionReader) *Resolver {
	return &Resolver{
		subs: subs,
		now:  time.Now,
	}
}

// ResolveTier returns the tier of the owner's current subscription, or free
// when there is none. Storage failures are returned to the caller.
func (r *Resolver) ResolveTier(ctx context.Context, ownerID int64) (domain.Tier, error) {
	sub, err := r.subs.GetActiveSubscription(ctx, ownerID, r.now())
	if errors.Is(err, repository.ErrSubscriptionNotFound) {
		return domain.TierFree, nil
	}
	if err != nil {
		return domain.TierFree, fmt.Errorf("failed to resolve tier: %w", err)
	}
	// storage may be lenient about the period; re-check
	if !sub.IsCurrent(r.now()) {
		return domain.TierFree, nil
	}
	return sub.Tier(), nil
}

// Resolve returns the full entitlements of the owner.
func (r *Resolver) Resolve(ctx context.Context, ownerID int64) (Entitlements, error) {
	tier, err := r.ResolveTier(ctx, ownerID)
	if err != nil {
		return Entitlements{}, err
	}
	return EntitlementsFor(tier), nil
}

// EntitlementsFor derives the flags of a tier.
func EntitlementsFor(tier domain.Tier) Entitlements {
	e := Entitlements{
		Tier:              tier,
		IsPaid:            tier.IsPaid(),
		CanUsePlusVariant: tier.AllowsVariant(domain.VariantProPlus),
	}
	for _, v := range []domain.Variant{domain.VariantPro, domain.VariantProPlus} {
		if tier.AllowsVariant(v) {
			e.AllowedVariants = append(e.AllowedVariants, v)
		}
	}
	return e
}
