package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mbruton/festival-manager/internal/model"
	"github.com/mbruton/festival-manager/internal/repository"
)

type VenueHandler struct {
	Venues *repository.VenueRepo
}

func NewVenueHandler(venues *repository.VenueRepo) *VenueHandler {
	return &VenueHandler{Venues: venues}
}

func (h *VenueHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	venues, err := h.Venues.List(ctx, c.QueryParam("include_inactive") == "true")
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, venues)
}

func (h *VenueHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid venue id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	venue, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, venue)
}

func (h *VenueHandler) Create(c echo.Context) error {
	var req model.Venue
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return badRequest(c, "Name is required")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	venue, err := h.Venues.Create(ctx, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, venue)
}

func (h *VenueHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid venue id")
	}
	var req model.Venue
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return badRequest(c, "Name is required")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	venue, err := h.Venues.Update(ctx, id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, venue)
}

func (h *VenueHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid venue id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	soft, err := h.Venues.Delete(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	msg := "Venue deleted successfully"
	if soft {
		msg = "Venue deactivated; it is referenced by existing festivals"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msg})
}
