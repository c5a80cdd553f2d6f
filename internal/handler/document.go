package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mbruton/festival-manager/internal/middleware"
	"github.com/mbruton/festival-manager/internal/model"
	"github.com/mbruton/festival-manager/internal/repository"
)

type DocumentHandler struct {
	Documents *repository.DocumentRepo
}

func NewDocumentHandler(documents *repository.DocumentRepo) *DocumentHandler {
	return &DocumentHandler{Documents: documents}
}

func (h *DocumentHandler) List(c echo.Context) error {
	festivalID, ok := festivalIDQuery(c)
	if !ok {
		return badRequest(c, "festival_id query parameter is required")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	docs, err := h.Documents.ListByFestival(ctx, festivalID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *DocumentHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid document id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	doc, err := h.Documents.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) Create(c echo.Context) error {
	var req model.Document
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.FestivalID == 0 || strings.TrimSpace(req.Name) == "" || req.Type == "" {
		return badRequest(c, "Festival id, name and type are required")
	}
	uploader := middleware.CurrentUser(c).ID
	req.UploadedBy = &uploader

	ctx, cancel := dbCtx(c)
	defer cancel()

	doc, err := h.Documents.Create(ctx, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, doc)
}

func (h *DocumentHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid document id")
	}
	var req model.Document
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" || req.Type == "" {
		return badRequest(c, "Name and type are required")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	doc, err := h.Documents.Update(ctx, id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid document id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Documents.Delete(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Document deleted successfully"})
}
