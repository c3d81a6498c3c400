package domain

import "time"

// SubscriptionStatusActive is the only status that grants a paid tier.
const SubscriptionStatusActive = "active"

// Subscription is the read-only projection of a billing subscription.
// Rows are owned by the billing system; this service only queries them.
type Subscription struct {
	ID               int64      `gorm:"primaryKey;column:id" json:"id"`
	UserID           int64      `gorm:"column:user_id;not null;index" json:"user_id"`
	PlanName         string     `gorm:"column:plan_name;size:50;not null" json:"plan_name"`
	Status           string     `gorm:"column:status;size:20;not null;index" json:"status"`
	CurrentPeriodEnd *time.Time `gorm:"column:current_period_end" json:"current_period_end,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName возвращает название таблицы для GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// IsCurrent проверяет, что подписка активна и её период ещё не истёк.
// A missing period end never counts as current.
func (s *Subscription) IsCurrent(now time.Time) bool {
	if s.Status != SubscriptionStatusActive || s.CurrentPeriodEnd == nil {
		return false
	}
	return s.CurrentPeriodEnd.After(now)
}

// Tier maps the plan of the subscription onto a badge tier.
func (s *Subscription) Tier() Tier {
	return ParseTier(s.PlanName)
}
