package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mbruton/festival-manager/internal/model"
	"github.com/mbruton/festival-manager/internal/repository"
)

type VolunteerHandler struct {
	Volunteers *repository.VolunteerRepo
}

func NewVolunteerHandler(volunteers *repository.VolunteerRepo) *VolunteerHandler {
	return &VolunteerHandler{Volunteers: volunteers}
}

func (h *VolunteerHandler) List(c echo.Context) error {
	festivalID, ok := festivalIDQuery(c)
	if !ok {
		return badRequest(c, "festival_id query parameter is required")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	volunteers, err := h.Volunteers.ListByFestival(ctx, festivalID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, volunteers)
}

func (h *VolunteerHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid volunteer id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	volunteer, err := h.Volunteers.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, volunteer)
}

func (h *VolunteerHandler) Create(c echo.Context) error {
	var req model.Volunteer
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.FestivalID == 0 || strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return badRequest(c, "Festival id, first name and last name are required")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	volunteer, err := h.Volunteers.Create(ctx, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, volunteer)
}

// Register is the public application form. It accepts contact details
// only; the volunteer always starts in applied status and staff-side
// fields like assigned_role are ignored.
func (h *VolunteerHandler) Register(c echo.Context) error {
	var req model.Volunteer
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.FestivalID == 0 || strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return badRequest(c, "Festival id, first name and last name are required")
	}
	req.AssignedRole = nil
	req.VolunteerStatus = "applied"
	req.Notes = nil

	ctx, cancel := dbCtx(c)
	defer cancel()

	volunteer, err := h.Volunteers.Create(ctx, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "Application received",
		"volunteer": volunteer,
	})
}

func (h *VolunteerHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid volunteer id")
	}
	var req model.Volunteer
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return badRequest(c, "First name and last name are required")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	volunteer, err := h.Volunteers.Update(ctx, id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, volunteer)
}

func (h *VolunteerHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid volunteer id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Volunteers.Delete(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Volunteer deleted successfully"})
}
