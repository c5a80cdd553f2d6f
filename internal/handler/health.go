package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mbruton/festival-manager/internal/database"
)

// HealthHandler reports process liveness and database reachability.
type HealthHandler struct {
	DB *database.DB
}

func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{DB: db}
}

func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"status": "degraded",
			"error":  "database unreachable",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
