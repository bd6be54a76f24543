package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bazaarhq/bazaar-backend/api/responses"
	"github.com/bazaarhq/bazaar-backend/api/validators"
	"github.com/bazaarhq/bazaar-backend/internal/orders"
	"github.com/bazaarhq/bazaar-backend/pkg/enums"
	pkgerrors "github.com/bazaarhq/bazaar-backend/pkg/errors"
	"github.com/bazaarhq/bazaar-backend/pkg/logger"
)

type OrderController struct {
	service orders.Service
	logg    *logger.Logger
}

func NewOrderController(service orders.Service, logg *logger.Logger) *OrderController {
	return &OrderController{service: service, logg: logg}
}

type createOrderRequest struct {
	CustomerID      string                   `json:"customer_id" validate:"required"`
	BranchID        string                   `json:"branch_id" validate:"required"`
	ShippingAddress *string                  `json:"shipping_address"`
	PaymentMethod   string                   `json:"payment_method"`
	Items           []createOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type createOrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, validators.InvalidField("customer_id", "must be a uuid"))
		return
	}
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, validators.InvalidField("branch_id", "must be a uuid"))
		return
	}

	items := make([]orders.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), c.logg, w, validators.InvalidField("items.product_id", "must be a uuid"))
			return
		}
		items = append(items, orders.OrderItemInput{ProductID: productID, Qty: item.Quantity})
	}

	ctx := r.Context()
	if c.logg != nil {
		ctx = c.logg.WithCustomerID(ctx, customerID.String())
		ctx = c.logg.WithBranchID(ctx, branchID.String())
	}

	order, err := c.service.CreateOrder(ctx, orders.CreateOrderInput{
		CustomerID:      customerID,
		BranchID:        branchID,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   enums.PaymentMethod(req.PaymentMethod),
		Items:           items,
	})
	if err != nil {
		responses.WriteError(ctx, c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, order)
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	order, err := c.service.GetOrder(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, order)
}

// List returns a customer's orders, newest first. The customer_id query
// parameter is required.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	customerID, err := validators.QueryUUID(r, "customer_id")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	if customerID == nil {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.New(pkgerrors.CodeValidation, "customer_id query parameter is required"))
		return
	}

	rows, err := c.service.ListByCustomer(r.Context(), *customerID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, rows)
}

func (c *OrderController) Confirm(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, enums.OrderStatusConfirmed)
}

func (c *OrderController) Ship(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, enums.OrderStatusShipped)
}

func (c *OrderController) Deliver(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, enums.OrderStatusDelivered)
}

func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, enums.OrderStatusCancelled)
}

func (c *OrderController) transition(w http.ResponseWriter, r *http.Request, next enums.OrderStatus) {
	id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	order, err := c.service.Transition(r.Context(), id, next)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, order)
}
