package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mbruton/festival-manager/internal/model"
	"github.com/mbruton/festival-manager/internal/repository"
	"github.com/mbruton/festival-manager/internal/schedule"
)

// ScheduleHandler serves the performance schedule. Booking conflicts come
// back as 409 with the clashing performances attached.
type ScheduleHandler struct {
	Performances *repository.PerformanceRepo
	Stages       *repository.StageRepo
}

func NewScheduleHandler(performances *repository.PerformanceRepo, stages *repository.StageRepo) *ScheduleHandler {
	return &ScheduleHandler{Performances: performances, Stages: stages}
}

// annotate fills the computed clock fields on a performance. Stored times
// already passed slot validation, so parse errors cannot happen here.
func annotate(p *model.Performance) {
	start, err := schedule.ToMinutes(p.StartTime)
	if err != nil {
		return
	}
	p.EndTime = schedule.ToClock(start + p.DurationMinutes)
	p.StageFreeAt = schedule.ToClock(start + p.DurationMinutes + p.ChangeoverMinutes)
}

// List returns a festival's performances, optionally filtered by
// performance_date and/or stage_area_id.
func (h *ScheduleHandler) List(c echo.Context) error {
	festivalID, ok := festivalIDQuery(c)
	if !ok {
		return badRequest(c, "festival_id query parameter is required")
	}
	var date *string
	if d := c.QueryParam("performance_date"); d != "" {
		date = &d
	}
	var stageID *int64
	if s := c.QueryParam("stage_area_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return badRequest(c, "Invalid stage_area_id")
		}
		stageID = &id
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	performances, err := h.Performances.List(ctx, festivalID, date, stageID)
	if err != nil {
		return fail(c, err)
	}
	for i := range performances {
		annotate(&performances[i])
	}
	return c.JSON(http.StatusOK, performances)
}

// Grid returns one day's schedule grouped by stage, in stage display order,
// for the timetable view.
func (h *ScheduleHandler) Grid(c echo.Context) error {
	festivalID, ok := festivalIDQuery(c)
	if !ok {
		return badRequest(c, "festival_id query parameter is required")
	}
	date := c.Param("date")

	ctx, cancel := dbCtx(c)
	defer cancel()

	stages, err := h.Stages.ListByFestival(ctx, festivalID)
	if err != nil {
		return fail(c, err)
	}
	performances, err := h.Performances.List(ctx, festivalID, &date, nil)
	if err != nil {
		return fail(c, err)
	}
	byStage := make(map[int64][]model.Performance, len(stages))
	for i := range performances {
		annotate(&performances[i])
		byStage[performances[i].StageAreaID] = append(byStage[performances[i].StageAreaID], performances[i])
	}

	type column struct {
		Stage        model.StageArea     `json:"stage"`
		Performances []model.Performance `json:"performances"`
	}
	grid := make([]column, 0, len(stages))
	for _, s := range stages {
		cells := byStage[s.ID]
		if cells == nil {
			cells = []model.Performance{}
		}
		grid = append(grid, column{Stage: s, Performances: cells})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":   date,
		"stages": grid,
	})
}

func (h *ScheduleHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid performance id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	performance, err := h.Performances.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	annotate(performance)
	return c.JSON(http.StatusOK, performance)
}

func validPerformance(p *model.Performance) string {
	if p.FestivalID == 0 || p.ArtistID == 0 || p.StageAreaID == 0 {
		return "Festival id, artist id and stage area id are required"
	}
	if p.PerformanceDate == "" || p.StartTime == "" {
		return "Performance date and start time are required"
	}
	changeover := p.ChangeoverMinutes
	if changeover == 0 {
		changeover = schedule.DefaultChangeoverMinutes
	}
	if _, err := schedule.NewSlot(p.StartTime, p.DurationMinutes, changeover); err != nil {
		return err.Error()
	}
	if p.Status != "" {
		switch p.Status {
		case model.PerformanceScheduled, model.PerformanceConfirmed,
			model.PerformanceCancelled, model.PerformanceCompleted:
		default:
			return "Invalid performance status"
		}
	}
	return ""
}

func (h *ScheduleHandler) Create(c echo.Context) error {
	var req model.Performance
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if msg := validPerformance(&req); msg != "" {
		return badRequest(c, msg)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	performance, err := h.Performances.Create(ctx, &req)
	if err != nil {
		return fail(c, err)
	}
	annotate(performance)
	return c.JSON(http.StatusCreated, performance)
}

// Update applies a partial reschedule; absent fields keep their stored
// values.
func (h *ScheduleHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid performance id")
	}
	var req struct {
		ArtistID           *int64  `json:"artist_id"`
		StageAreaID        *int64  `json:"stage_area_id"`
		PerformanceDate    *string `json:"performance_date"`
		StartTime          *string `json:"start_time"`
		DurationMinutes    *int    `json:"duration_minutes"`
		ChangeoverMinutes  *int    `json:"changeover_minutes"`
		SoundcheckTime     *string `json:"soundcheck_time"`
		SoundcheckDuration *int    `json:"soundcheck_duration"`
		Notes              *string `json:"notes"`
		Status             *string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.StartTime != nil {
		if _, err := schedule.ToMinutes(*req.StartTime); err != nil {
			return badRequest(c, err.Error())
		}
	}
	if req.DurationMinutes != nil && *req.DurationMinutes < schedule.MinDurationMinutes {
		return badRequest(c, "Duration is too short")
	}
	if req.ChangeoverMinutes != nil && *req.ChangeoverMinutes < 0 {
		return badRequest(c, "Changeover must not be negative")
	}
	if req.Status != nil {
		switch *req.Status {
		case model.PerformanceScheduled, model.PerformanceConfirmed,
			model.PerformanceCancelled, model.PerformanceCompleted:
		default:
			return badRequest(c, "Invalid performance status")
		}
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	performance, err := h.Performances.Update(ctx, id, &repository.PerformancePatch{
		ArtistID:           req.ArtistID,
		StageAreaID:        req.StageAreaID,
		PerformanceDate:    req.PerformanceDate,
		StartTime:          req.StartTime,
		DurationMinutes:    req.DurationMinutes,
		ChangeoverMinutes:  req.ChangeoverMinutes,
		SoundcheckTime:     req.SoundcheckTime,
		SoundcheckDuration: req.SoundcheckDuration,
		Notes:              req.Notes,
		Status:             req.Status,
	})
	if err != nil {
		return fail(c, err)
	}
	annotate(performance)
	return c.JSON(http.StatusOK, performance)
}

func (h *ScheduleHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid performance id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Performances.Delete(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Performance deleted successfully"})
}
