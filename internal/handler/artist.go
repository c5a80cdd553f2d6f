package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mbruton/festival-manager/internal/model"
	"github.com/mbruton/festival-manager/internal/repository"
)

type ArtistHandler struct {
	Artists *repository.ArtistRepo
}

func NewArtistHandler(artists *repository.ArtistRepo) *ArtistHandler {
	return &ArtistHandler{Artists: artists}
}

func (h *ArtistHandler) List(c echo.Context) error {
	festivalID, ok := festivalIDQuery(c)
	if !ok {
		return badRequest(c, "festival_id query parameter is required")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	artists, err := h.Artists.ListByFestival(ctx, festivalID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, artists)
}

// Dropdown returns the trimmed-down artist list used by booking forms.
func (h *ArtistHandler) Dropdown(c echo.Context) error {
	festivalID, ok := festivalIDQuery(c)
	if !ok {
		return badRequest(c, "festival_id query parameter is required")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	artists, err := h.Artists.ListByFestival(ctx, festivalID)
	if err != nil {
		return fail(c, err)
	}
	type option struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	options := make([]option, 0, len(artists))
	for i := range artists {
		options = append(options, option{ID: artists[i].ID, Name: artists[i].Name, Status: artists[i].Status})
	}
	return c.JSON(http.StatusOK, options)
}

func (h *ArtistHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid artist id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	artist, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, artist)
}

func (h *ArtistHandler) Create(c echo.Context) error {
	var req model.Artist
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.FestivalID == 0 || strings.TrimSpace(req.Name) == "" {
		return badRequest(c, "Festival id and name are required")
	}
	if req.Status != "" && !model.ValidArtistStatus(req.Status) {
		return badRequest(c, "Invalid artist status")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	artist, err := h.Artists.Create(ctx, &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "An artist with this name already exists for this festival"})
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, artist)
}

func (h *ArtistHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid artist id")
	}
	var req model.Artist
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return badRequest(c, "Name is required")
	}
	if req.Status != "" && !model.ValidArtistStatus(req.Status) {
		return badRequest(c, "Invalid artist status")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	artist, err := h.Artists.Update(ctx, id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "An artist with this name already exists for this festival"})
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, artist)
}

func (h *ArtistHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid artist id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Artists.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInUse) {
			return badRequest(c, "Cannot delete artist with scheduled performances")
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Artist deleted successfully"})
}
