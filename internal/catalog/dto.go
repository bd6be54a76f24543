package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/bazaarhq/bazaar-backend/pkg/db/models"
)

// ProductDTO is the wire representation of a catalog listing. Prices are
// decimals internally; the boundary exposes plain JSON numbers.
type ProductDTO struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Price      float64    `json:"price"`
	Category   string     `json:"category"`
	City       string     `json:"location"`
	BranchID   *uuid.UUID `json:"branch_id,omitempty"`
	Stock      int        `json:"stock"`
	IsFeatured bool       `json:"is_featured"`
	Rating     float64    `json:"rating"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewProductDTO maps a stored product onto the wire shape.
func NewProductDTO(product *models.Product) *ProductDTO {
	return &ProductDTO{
		ID:         product.ID,
		Name:       product.Name,
		Price:      product.Price.InexactFloat64(),
		Category:   product.Category,
		City:       product.City,
		BranchID:   product.BranchID,
		Stock:      product.Stock,
		IsFeatured: product.IsFeatured,
		Rating:     product.Rating.InexactFloat64(),
		CreatedAt:  product.CreatedAt,
	}
}

// NewProductDTOs maps a listing result.
func NewProductDTOs(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, *NewProductDTO(&products[i]))
	}
	return out
}
