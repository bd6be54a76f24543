package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bazaarhq/bazaar-backend/api/controllers"
	"github.com/bazaarhq/bazaar-backend/api/middleware"
	"github.com/bazaarhq/bazaar-backend/pkg/logger"
	"github.com/bazaarhq/bazaar-backend/pkg/metrics"
)

// RouterParams collects everything the HTTP surface depends on.
type RouterParams struct {
	Logger    *logger.Logger
	Metrics   *metrics.HTTP
	Health    *controllers.HealthController
	Products  *controllers.ProductController
	Directory *controllers.DirectoryController
	Orders    *controllers.OrderController
	Users     *controllers.UserController
}

// New assembles the chi router with the full middleware chain and every
// storefront route.
func New(params RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(params.Logger))
	r.Use(middleware.RequestID(params.Logger))
	r.Use(middleware.Logging(params.Logger))
	if params.Metrics != nil {
		r.Use(params.Metrics.Middleware())
		r.Handle("/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", params.Health.Check)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", params.Products.List)
			r.Post("/", params.Products.Create)
			r.Get("/{id}", params.Products.Get)
		})

		r.Get("/cities", params.Directory.ListCities)
		r.Get("/branches", params.Directory.ListBranches)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", params.Orders.List)
			r.Post("/", params.Orders.Create)
			r.Get("/{id}", params.Orders.Get)
			r.Post("/{id}/confirm", params.Orders.Confirm)
			r.Post("/{id}/ship", params.Orders.Ship)
			r.Post("/{id}/deliver", params.Orders.Deliver)
			r.Post("/{id}/cancel", params.Orders.Cancel)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", params.Users.Create)
			r.Get("/{id}", params.Users.Get)
		})
	})

	return r
}
