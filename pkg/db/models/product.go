package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryUncategorized is the sentinel applied when a seller omits the
// category at creation time.
const CategoryUncategorized = "uncategorized"

// Product represents a catalog listing.
type Product struct {
	ID         uuid.UUID       `gorm:"column:id;type:text;primaryKey"`
	Name       string          `gorm:"column:name;not null"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric;not null"`
	Category   string          `gorm:"column:category;not null;default:'uncategorized'"`
	City       string          `gorm:"column:city;not null"`
	BranchID   *uuid.UUID      `gorm:"column:branch_id;type:text"`
	Stock      int             `gorm:"column:stock;not null;default:0"`
	IsFeatured bool            `gorm:"column:is_featured;not null;default:false"`
	Rating     decimal.Decimal `gorm:"column:rating;type:numeric;not null;default:0"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the identifier; sqlite has no uuid default.
func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
