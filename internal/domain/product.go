package domain

import "time"

// ProductStatusPublished marks a product that is visible in the directory.
const ProductStatusPublished = "published"

// Product is the slice of the catalog entry the badge engine needs.
type Product struct {
	ID           int64     `gorm:"primaryKey;column:id" json:"id"`
	OwnerID      int64     `gorm:"column:owner_id;not null;index" json:"owner_id"`
	Name         string    `gorm:"column:name;size:200;not null" json:"name"`
	Slug         string    `gorm:"column:slug;size:100;uniqueIndex;not null" json:"slug"`
	UpvotesCount int       `gorm:"column:upvotes_count;not null;default:0" json:"upvotes_count"`
	Status       string    `gorm:"column:status;size:20;not null;default:'draft'" json:"status"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName возвращает название таблицы для GORM
func (Product) TableName() string {
	return "products"
}

// IsPublished проверяет, опубликован ли продукт
func (p *Product) IsPublished() bool {
	return p.Status == ProductStatusPublished
}

// IsOwnedBy reports whether userID owns the product. A nil caller never does.
func (p *Product) IsOwnedBy(userID *int64) bool {
	return userID != nil && *userID == p.OwnerID
}
