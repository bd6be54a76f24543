package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bazaarhq/bazaar-backend/internal/notify"
	"github.com/bazaarhq/bazaar-backend/pkg/db"
	"github.com/bazaarhq/bazaar-backend/pkg/db/models"
	"github.com/bazaarhq/bazaar-backend/pkg/enums"
	pkgerrors "github.com/bazaarhq/bazaar-backend/pkg/errors"
	"github.com/bazaarhq/bazaar-backend/pkg/logger"
)

// Service exposes order intake and lifecycle operations.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]OrderDTO, error)
	Transition(ctx context.Context, id uuid.UUID, next enums.OrderStatus) (*OrderDTO, error)
}

type productReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type customerReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type branchReader interface {
	FindBranchByID(ctx context.Context, id uuid.UUID) (*models.Branch, error)
}

type service struct {
	dbClient  *db.Client
	repo      *Repository
	products  productReader
	customers customerReader
	branches  branchReader
	publisher notify.Publisher
	logg      *logger.Logger
}

// ServiceParams collects the order service dependencies.
type ServiceParams struct {
	DBClient  *db.Client
	Repo      *Repository
	Products  productReader
	Customers customerReader
	Branches  branchReader
	Publisher notify.Publisher
	Logger    *logger.Logger
}

// NewService constructs an order service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.DBClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	if params.Customers == nil {
		return nil, fmt.Errorf("customer reader required")
	}
	if params.Branches == nil {
		return nil, fmt.Errorf("branch reader required")
	}
	publisher := params.Publisher
	if publisher == nil {
		publisher = notify.Noop{}
	}
	return &service{
		dbClient:  params.DBClient,
		repo:      params.Repo,
		products:  params.Products,
		customers: params.Customers,
		branches:  params.Branches,
		publisher: publisher,
		logg:      params.Logger,
	}, nil
}

// CreateOrder validates the cart, snapshots unit prices, computes the
// total, and persists the order as pending. The branch broadcast after
// commit is advisory only; its failure never fails the order.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	for _, item := range input.Items {
		if item.Qty < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1").
				WithDetails(map[string]any{"product_id": item.ProductID})
		}
	}

	method := input.PaymentMethod
	if method == "" {
		method = enums.PaymentMethodCash
	}
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	if _, err := s.customers.FindByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	if _, err := s.branches.FindBranchByID(ctx, input.BranchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load branch")
	}

	// Unit prices are read once here and copied into the line items.
	// Later catalog price edits must not alter this order's total.
	lineItems := make([]models.OrderLineItem, 0, len(input.Items))
	total := decimal.Zero
	for _, item := range input.Items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "product does not exist").
					WithDetails(map[string]any{"product_id": item.ProductID})
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Qty)))
		lineItems = append(lineItems, models.OrderLineItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Qty:       item.Qty,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}

	order := &models.Order{
		CustomerID:      input.CustomerID,
		BranchID:        input.BranchID,
		ShippingAddress: input.ShippingAddress,
		Status:          enums.OrderStatusPending,
		Total:           total,
		PaymentMethod:   method,
		PaymentStatus:   enums.PaymentStatusPending,
		Items:           lineItems,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).Create(ctx, order)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert order")
	}

	s.broadcast(ctx, order)

	return NewOrderDTO(order), nil
}

func (s *service) broadcast(ctx context.Context, order *models.Order) {
	event := notify.OrderCreatedEvent{
		OrderID:    order.ID,
		BranchID:   order.BranchID,
		CustomerID: order.CustomerID,
		Total:      order.Total.InexactFloat64(),
		Status:     order.Status.String(),
		CreatedAt:  order.CreatedAt,
	}
	if err := s.publisher.OrderCreated(ctx, event); err != nil && s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"order_id":  order.ID,
			"branch_id": order.BranchID,
			"error":     err.Error(),
		})
		s.logg.Warn(ctx, "order broadcast failed")
	}
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return NewOrderDTO(order), nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]OrderDTO, error) {
	rows, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return NewOrderDTOs(rows), nil
}

// Transition advances the order through its state machine. Illegal moves
// are rejected without touching the row.
func (s *service) Transition(ctx context.Context, id uuid.UUID, next enums.OrderStatus) (*OrderDTO, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "invalid order transition").
			WithDetails(map[string]string{
				"from": order.Status.String(),
				"to":   next.String(),
			})
	}

	var paymentStatus *enums.PaymentStatus
	if next == enums.OrderStatusCancelled && order.PaymentStatus == enums.PaymentStatusPending {
		voided := enums.PaymentStatusVoided
		paymentStatus = &voided
	}

	if err := s.repo.UpdateStatus(ctx, id, next, paymentStatus); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}

	order.Status = next
	if paymentStatus != nil {
		order.PaymentStatus = *paymentStatus
	}
	return NewOrderDTO(order), nil
}
