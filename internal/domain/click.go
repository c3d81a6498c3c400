package domain

import (
	"time"
)

// Click представляет клик по бейджу продукта. Rows are append-only.
type Click struct {
	ID             int64     `gorm:"primaryKey;column:id" json:"id"`
	ProductID      int64     `gorm:"column:product_id;not null;index:idx_clicks_product_time,priority:1" json:"product_id"`
	ReferrerDomain *string   `gorm:"column:referrer_domain;size:255" json:"referrer_domain,omitempty"`
	DeviceType     *string   `gorm:"column:device_type;size:10" json:"device_type,omitempty"` // 'desktop', 'mobile', 'tablet', 'bot'
	ClickedAt      time.Time `gorm:"column:clicked_at;not null;index:idx_clicks_product_time,priority:2" json:"clicked_at"`
}

// TableName возвращает название таблицы для GORM
func (Click) TableName() string {
	return "clicks"
}

// GetDeviceType возвращает тип устройства или "unknown"
func (c *Click) GetDeviceType() string {
	if c.DeviceType != nil {
		return *c.DeviceType
	}
	return "unknown"
}
