package controllers

import (
	"net/http"
	"time"

	"github.com/bazaarhq/bazaar-backend/api/responses"
	"github.com/bazaarhq/bazaar-backend/pkg/db"
	"github.com/bazaarhq/bazaar-backend/pkg/logger"
)

type HealthController struct {
	dbClient *db.Client
	logg     *logger.Logger
}

func NewHealthController(dbClient *db.Client, logg *logger.Logger) *HealthController {
	return &HealthController{dbClient: dbClient, logg: logg}
}

func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if c.dbClient != nil {
		if err := c.dbClient.Ping(r.Context()); err != nil {
			status = "degraded"
			if c.logg != nil {
				c.logg.Error(r.Context(), "health.db_ping", err)
			}
		}
	}
	responses.WriteSuccess(w, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
