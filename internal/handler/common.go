// Package handler implements the HTTP endpoints. Each resource gets its
// own handler type holding the repositories it needs; responses use a
// single {"error": "..."} envelope for every failure.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mbruton/festival-manager/internal/repository"
)

// dbCtx bounds a handler's database work.
func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

func idParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// festivalIDQuery reads the festival_id query parameter, required by the
// festival-scoped list endpoints.
func festivalIDQuery(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.QueryParam("festival_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// fail translates repository errors into the shared error envelope.
func fail(c echo.Context, err error) error {
	var conflict *repository.ConflictError
	var deps *repository.HasDependents
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": "Already exists"})
	case errors.Is(err, repository.ErrInUse):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Record is still referenced by other records"})
	case errors.Is(err, repository.ErrDeadlinePassed):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Signing deadline has passed"})
	case errors.Is(err, repository.ErrBadTransition):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Operation not allowed in current status"})
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":     "Time slot conflict detected",
			"conflicts": conflict.Conflicts,
		})
	case errors.As(err, &deps):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":          "Cannot delete festival with associated data",
			"canForceDelete": true,
			"details":        deps,
		})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
