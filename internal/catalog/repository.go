package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarhq/bazaar-backend/pkg/db/models"
)

// ProductFilter narrows a listing to products matching every provided
// field. Nil fields never exclude anything.
type ProductFilter struct {
	City     *string
	BranchID *uuid.UUID
	Category *string
}

// Repository wires together product persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListProducts returns products matching the filter in insertion order.
// No matches yields an empty slice, not an error.
func (r *Repository) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	qb := r.db.WithContext(ctx).Model(&models.Product{})
	if filter.City != nil {
		qb = qb.Where("city = ?", *filter.City)
	}
	if filter.BranchID != nil {
		qb = qb.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.Category != nil {
		qb = qb.Where("category = ?", *filter.Category)
	}

	rows := []models.Product{}
	err := qb.Order("created_at ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

// FindByID loads a single product.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// CountProducts returns the catalog size.
func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}
