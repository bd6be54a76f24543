package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bazaarhq/bazaar-backend/pkg/enums"
)

// Order records a cart-to-order transition. Total is fixed at creation
// time from snapshotted line-item prices and never recomputed.
type Order struct {
	ID                   uuid.UUID           `gorm:"column:id;type:text;primaryKey"`
	CustomerID           uuid.UUID           `gorm:"column:customer_id;type:text;not null"`
	BranchID             uuid.UUID           `gorm:"column:branch_id;type:text;not null"`
	ShippingAddress      *string             `gorm:"column:shipping_address"`
	Status               enums.OrderStatus   `gorm:"column:status;not null;default:'pending'"`
	Total                decimal.Decimal     `gorm:"column:total;type:numeric;not null"`
	PaymentMethod        enums.PaymentMethod `gorm:"column:payment_method;not null;default:'cash'"`
	PaymentStatus        enums.PaymentStatus `gorm:"column:payment_status;not null;default:'pending'"`
	PaymentTransactionID *string             `gorm:"column:payment_transaction_id"`
	Items                []OrderLineItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
