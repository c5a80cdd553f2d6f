package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mbruton/festival-manager/internal/model"
	"github.com/mbruton/festival-manager/internal/repository"
)

type VendorHandler struct {
	Vendors *repository.VendorRepo
}

func NewVendorHandler(vendors *repository.VendorRepo) *VendorHandler {
	return &VendorHandler{Vendors: vendors}
}

func (h *VendorHandler) List(c echo.Context) error {
	festivalID, ok := festivalIDQuery(c)
	if !ok {
		return badRequest(c, "festival_id query parameter is required")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	vendors, err := h.Vendors.ListByFestival(ctx, festivalID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, vendors)
}

func (h *VendorHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid vendor id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	vendor, err := h.Vendors.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, vendor)
}

func (h *VendorHandler) Create(c echo.Context) error {
	var req model.Vendor
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.FestivalID == 0 || strings.TrimSpace(req.Name) == "" {
		return badRequest(c, "Festival id and name are required")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	vendor, err := h.Vendors.Create(ctx, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, vendor)
}

func (h *VendorHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid vendor id")
	}
	var req model.Vendor
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return badRequest(c, "Name is required")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	vendor, err := h.Vendors.Update(ctx, id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, vendor)
}

func (h *VendorHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid vendor id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Vendors.Delete(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Vendor deleted successfully"})
}
