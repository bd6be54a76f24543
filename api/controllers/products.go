package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bazaarhq/bazaar-backend/api/responses"
	"github.com/bazaarhq/bazaar-backend/api/validators"
	"github.com/bazaarhq/bazaar-backend/internal/catalog"
	"github.com/bazaarhq/bazaar-backend/pkg/logger"
)

type ProductController struct {
	service catalog.Service
	logg    *logger.Logger
}

func NewProductController(service catalog.Service, logg *logger.Logger) *ProductController {
	return &ProductController{service: service, logg: logg}
}

type createProductRequest struct {
	Name       string   `json:"name" validate:"required"`
	Price      *float64 `json:"price" validate:"required,gte=0"`
	Category   *string  `json:"category"`
	Location   string   `json:"location" validate:"required"`
	BranchID   *string  `json:"branch_id"`
	Stock      int      `json:"stock" validate:"gte=0"`
	IsFeatured bool     `json:"is_featured"`
}

// List returns products filtered conjunctively by city, branch, and
// category query parameters.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	branchID, err := validators.QueryUUID(r, "branch")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	filter := catalog.ProductFilter{
		City:     validators.QueryString(r, "city"),
		BranchID: branchID,
		Category: validators.QueryString(r, "category"),
	}

	products, err := c.service.ListProducts(r.Context(), filter)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, products)
}

func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	product, err := c.service.GetProduct(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, product)
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	input := catalog.CreateProductInput{
		Name:       req.Name,
		Price:      decimal.NewFromFloat(*req.Price),
		Category:   req.Category,
		City:       req.Location,
		Stock:      req.Stock,
		IsFeatured: req.IsFeatured,
	}
	if req.BranchID != nil {
		parsed, err := uuid.Parse(*req.BranchID)
		if err != nil {
			responses.WriteError(r.Context(), c.logg, w, validators.InvalidField("branch_id", "must be a uuid"))
			return
		}
		input.BranchID = &parsed
	}

	product, err := c.service.CreateProduct(r.Context(), input)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, product)
}
