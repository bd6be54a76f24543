package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bazaarhq/bazaar-backend/pkg/db/models"
	pkgerrors "github.com/bazaarhq/bazaar-backend/pkg/errors"
)

// Service exposes catalog listing and creation operations.
type Service interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
// Category and BranchID are optional; an omitted category falls back to
// the uncategorized sentinel.
type CreateProductInput struct {
	Name       string
	Price      decimal.Decimal
	Category   *string
	City       string
	BranchID   *uuid.UUID
	Stock      int
	IsFeatured bool
}

type branchReader interface {
	FindBranchByID(ctx context.Context, id uuid.UUID) (*models.Branch, error)
}

type service struct {
	repo     *Repository
	branches branchReader
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, branches branchReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if branches == nil {
		return nil, fmt.Errorf("branch reader required")
	}
	return &service{repo: repo, branches: branches}, nil
}

// ListProducts applies every provided filter field conjunctively.
func (s *service) ListProducts(ctx context.Context, filter ProductFilter) ([]ProductDTO, error) {
	rows, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return NewProductDTOs(rows), nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product), nil
}

// CreateProduct validates the draft, assigns an identifier, and persists.
// Nothing is written when validation fails.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	invalid := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		invalid["name"] = "must not be empty"
	}
	if input.Price.IsNegative() {
		invalid["price"] = "must be non-negative"
	}
	if strings.TrimSpace(input.City) == "" {
		invalid["location"] = "must not be empty"
	}
	if input.Stock < 0 {
		invalid["stock"] = "must be non-negative"
	}
	if len(invalid) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product draft").WithDetails(invalid)
	}

	if input.BranchID != nil {
		if _, err := s.branches.FindBranchByID(ctx, *input.BranchID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch does not exist").
					WithDetails(map[string]string{"branch_id": "unknown branch"})
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load branch")
		}
	}

	category := models.CategoryUncategorized
	if input.Category != nil && strings.TrimSpace(*input.Category) != "" {
		category = strings.TrimSpace(*input.Category)
	}

	product := &models.Product{
		Name:       strings.TrimSpace(input.Name),
		Price:      input.Price,
		Category:   category,
		City:       strings.TrimSpace(input.City),
		BranchID:   input.BranchID,
		Stock:      input.Stock,
		IsFeatured: input.IsFeatured,
		Rating:     decimal.Zero,
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert product")
	}
	return NewProductDTO(created), nil
}
