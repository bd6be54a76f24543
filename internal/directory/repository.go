package directory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarhq/bazaar-backend/pkg/db/models"
)

// Repository exposes branch persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCities returns each distinct city exactly once, alphabetically.
// The list is derived from branch rows on every call so it can never
// drift from the branch table.
func (r *Repository) ListCities(ctx context.Context) ([]string, error) {
	cities := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.Branch{}).
		Distinct("city").
		Order("city ASC").
		Pluck("city", &cities).
		Error
	return cities, err
}

// ListBranches returns branches in insertion order, optionally scoped to
// one city.
func (r *Repository) ListBranches(ctx context.Context, city *string) ([]models.Branch, error) {
	qb := r.db.WithContext(ctx).Model(&models.Branch{})
	if city != nil {
		qb = qb.Where("city = ?", *city)
	}

	rows := []models.Branch{}
	err := qb.Order("created_at ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

// FindBranchByID loads a single branch.
func (r *Repository) FindBranchByID(ctx context.Context, id uuid.UUID) (*models.Branch, error) {
	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}
