package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mbruton/festival-manager/internal/model"
	"github.com/mbruton/festival-manager/internal/repository"
)

type StageHandler struct {
	Stages *repository.StageRepo
}

func NewStageHandler(stages *repository.StageRepo) *StageHandler {
	return &StageHandler{Stages: stages}
}

// List returns a festival's active stages; festival_id is required.
func (h *StageHandler) List(c echo.Context) error {
	festivalID, ok := festivalIDQuery(c)
	if !ok {
		return badRequest(c, "festival_id query parameter is required")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	stages, err := h.Stages.ListByFestival(ctx, festivalID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, stages)
}

func (h *StageHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid stage id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	stage, err := h.Stages.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, stage)
}

func (h *StageHandler) Create(c echo.Context) error {
	var req model.StageArea
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.EventID == 0 || strings.TrimSpace(req.Name) == "" {
		return badRequest(c, "Event id and name are required")
	}
	if req.Type == "" {
		req.Type = "stage"
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	stage, err := h.Stages.Create(ctx, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, stage)
}

func (h *StageHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid stage id")
	}
	var req model.StageArea
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return badRequest(c, "Name is required")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	stage, err := h.Stages.Update(ctx, id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, stage)
}

// Reorder applies a new display order for a festival's stages. The body
// carries the full id sequence; unknown ids abort the whole reorder.
func (h *StageHandler) Reorder(c echo.Context) error {
	var req struct {
		FestivalID int64   `json:"festival_id"`
		StageIDs   []int64 `json:"stage_ids"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.FestivalID == 0 || len(req.StageIDs) == 0 {
		return badRequest(c, "festival_id and stage_ids are required")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Stages.Reorder(ctx, req.FestivalID, req.StageIDs); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Stage order updated"})
}

func (h *StageHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid stage id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Stages.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInUse) {
			return badRequest(c, "Cannot delete stage with scheduled performances")
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Stage deleted successfully"})
}
