package controllers

import (
	"net/http"

	"github.com/bazaarhq/bazaar-backend/api/responses"
	"github.com/bazaarhq/bazaar-backend/api/validators"
	"github.com/bazaarhq/bazaar-backend/internal/directory"
	"github.com/bazaarhq/bazaar-backend/pkg/logger"
)

type DirectoryController struct {
	service directory.Service
	logg    *logger.Logger
}

func NewDirectoryController(service directory.Service, logg *logger.Logger) *DirectoryController {
	return &DirectoryController{service: service, logg: logg}
}

// ListCities returns the distinct cities that carry stock, sorted
// ascending.
func (c *DirectoryController) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := c.service.ListCities(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, cities)
}

// ListBranches returns branches, optionally narrowed by the city query
// parameter.
func (c *DirectoryController) ListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := c.service.ListBranches(r.Context(), validators.QueryString(r, "city"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, branches)
}
