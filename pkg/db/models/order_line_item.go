package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderLineItem captures the snapshot of each item within an order.
// UnitPrice is copied from the catalog at order time, so later catalog
// price edits never alter historical totals.
type OrderLineItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:text;primaryKey"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:text;not null"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:text;not null"`
	Name      string          `gorm:"column:name;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric;not null"`
	Qty       int             `gorm:"column:qty;not null"`
	Subtotal  decimal.Decimal `gorm:"column:subtotal;type:numeric;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (i *OrderLineItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
