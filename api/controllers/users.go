package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bazaarhq/bazaar-backend/api/responses"
	"github.com/bazaarhq/bazaar-backend/api/validators"
	"github.com/bazaarhq/bazaar-backend/internal/users"
	"github.com/bazaarhq/bazaar-backend/pkg/enums"
	"github.com/bazaarhq/bazaar-backend/pkg/logger"
)

type UserController struct {
	service users.Service
	logg    *logger.Logger
}

func NewUserController(service users.Service, logg *logger.Logger) *UserController {
	return &UserController{service: service, logg: logg}
}

type createUserRequest struct {
	Name        string            `json:"name" validate:"required"`
	Email       string            `json:"email" validate:"required,email"`
	Phone       *string           `json:"phone"`
	Address     *string           `json:"address"`
	Role        string            `json:"role"`
	Preferences map[string]string `json:"preferences"`
}

func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	user, err := c.service.Create(r.Context(), users.CreateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Role:        enums.UserRole(req.Role),
		Preferences: req.Preferences,
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, user)
}

func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	user, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, user)
}
