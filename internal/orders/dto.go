package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/bazaarhq/bazaar-backend/pkg/db/models"
	"github.com/bazaarhq/bazaar-backend/pkg/enums"
)

// CreateOrderInput holds the validated payload for order intake.
type CreateOrderInput struct {
	CustomerID      uuid.UUID
	BranchID        uuid.UUID
	ShippingAddress *string
	PaymentMethod   enums.PaymentMethod
	Items           []OrderItemInput
}

// OrderItemInput references a catalog product and a quantity. The unit
// price is never supplied by the caller; it is snapshotted server-side.
type OrderItemInput struct {
	ProductID uuid.UUID
	Qty       int
}

// OrderDTO is the wire representation of a persisted order.
type OrderDTO struct {
	ID              uuid.UUID           `json:"id"`
	CustomerID      uuid.UUID           `json:"customer_id"`
	BranchID        uuid.UUID           `json:"branch_id"`
	ShippingAddress *string             `json:"shipping_address,omitempty"`
	Status          enums.OrderStatus   `json:"status"`
	Total           float64             `json:"total"`
	PaymentMethod   enums.PaymentMethod `json:"payment_method"`
	PaymentStatus   enums.PaymentStatus `json:"payment_status"`
	Items           []LineItemDTO       `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
}

// LineItemDTO is the wire representation of an order line.
type LineItemDTO struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Qty       int       `json:"quantity"`
	Subtotal  float64   `json:"subtotal"`
}

// NewOrderDTO maps a stored order onto the wire shape.
func NewOrderDTO(order *models.Order) *OrderDTO {
	items := make([]LineItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, LineItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.InexactFloat64(),
			Qty:       item.Qty,
			Subtotal:  item.Subtotal.InexactFloat64(),
		})
	}
	return &OrderDTO{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		BranchID:        order.BranchID,
		ShippingAddress: order.ShippingAddress,
		Status:          order.Status,
		Total:           order.Total.InexactFloat64(),
		PaymentMethod:   order.PaymentMethod,
		PaymentStatus:   order.PaymentStatus,
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}

// NewOrderDTOs maps a listing result.
func NewOrderDTOs(orders []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, *NewOrderDTO(&orders[i]))
	}
	return out
}
