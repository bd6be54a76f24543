package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bazaarhq/bazaar-backend/pkg/db/models"
	pkgerrors "github.com/bazaarhq/bazaar-backend/pkg/errors"
)

// Service answers city and branch lookups for the storefront dropdowns.
type Service interface {
	ListCities(ctx context.Context) ([]string, error)
	ListBranches(ctx context.Context, city *string) ([]BranchDTO, error)
}

// BranchDTO is the wire representation of a branch.
type BranchDTO struct {
	ID        uuid.UUID `json:"id"`
	City      string    `json:"city"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     *string   `json:"phone,omitempty"`
	Hours     *string   `json:"hours,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBranchDTO maps a stored branch onto the wire shape.
func NewBranchDTO(branch *models.Branch) BranchDTO {
	return BranchDTO{
		ID:        branch.ID,
		City:      branch.City,
		Name:      branch.Name,
		Address:   branch.Address,
		Phone:     branch.Phone,
		Hours:     branch.Hours,
		CreatedAt: branch.CreatedAt,
	}
}

type service struct {
	repo *Repository
}

// NewService constructs a directory service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("directory repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListCities(ctx context.Context) ([]string, error) {
	cities, err := s.repo.ListCities(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cities")
	}
	return cities, nil
}

func (s *service) ListBranches(ctx context.Context, city *string) ([]BranchDTO, error) {
	rows, err := s.repo.ListBranches(ctx, city)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list branches")
	}
	out := make([]BranchDTO, 0, len(rows))
	for i := range rows {
		out = append(out, NewBranchDTO(&rows[i]))
	}
	return out, nil
}
