package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mbruton/festival-manager/internal/model"
	"github.com/mbruton/festival-manager/internal/repository"
)

type FestivalHandler struct {
	Festivals *repository.FestivalRepo
}

func NewFestivalHandler(festivals *repository.FestivalRepo) *FestivalHandler {
	return &FestivalHandler{Festivals: festivals}
}

func (h *FestivalHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	festivals, err := h.Festivals.List(ctx)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, festivals)
}

func (h *FestivalHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid festival id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	festival, err := h.Festivals.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, festival)
}

func validFestival(f *model.Festival) string {
	if strings.TrimSpace(f.Name) == "" || f.Year == 0 || f.StartDate == "" || f.EndDate == "" {
		return "Name, year, start date and end date are required"
	}
	if f.EndDate < f.StartDate {
		return "End date must not be before start date"
	}
	if f.Status != "" {
		switch f.Status {
		case model.FestivalPlanning, model.FestivalActive, model.FestivalCompleted, model.FestivalCancelled:
		default:
			return "Invalid festival status"
		}
	}
	return ""
}

func (h *FestivalHandler) Create(c echo.Context) error {
	var req model.Festival
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if msg := validFestival(&req); msg != "" {
		return badRequest(c, msg)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	festival, err := h.Festivals.Create(ctx, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, festival)
}

func (h *FestivalHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid festival id")
	}
	var req model.Festival
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if msg := validFestival(&req); msg != "" {
		return badRequest(c, msg)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	festival, err := h.Festivals.Update(ctx, id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, festival)
}

// Delete removes a festival; ?force=true cascades to all dependent rows.
func (h *FestivalHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid festival id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Festivals.Delete(ctx, id, c.QueryParam("force") == "true"); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Festival deleted successfully"})
}

func (h *FestivalHandler) Stats(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid festival id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	stats, err := h.Festivals.Stats(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *FestivalHandler) Clone(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid festival id")
	}
	var req struct {
		Name      string                  `json:"name"`
		Year      int                     `json:"year"`
		StartDate string                  `json:"start_date"`
		EndDate   string                  `json:"end_date"`
		Include   repository.CloneOptions `json:"include"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" || req.Year == 0 || req.StartDate == "" || req.EndDate == "" {
		return badRequest(c, "Name, year, start date and end date are required")
	}
	if req.EndDate < req.StartDate {
		return badRequest(c, "End date must not be before start date")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	festival, err := h.Festivals.Clone(ctx, id, req.Name, req.Year, req.StartDate, req.EndDate, req.Include)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, festival)
}
