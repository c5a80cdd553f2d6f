package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mbruton/festival-manager/internal/model"
	"github.com/mbruton/festival-manager/internal/repository"
)

type BudgetHandler struct {
	Budget *repository.BudgetRepo
}

func NewBudgetHandler(budget *repository.BudgetRepo) *BudgetHandler {
	return &BudgetHandler{Budget: budget}
}

// List returns budget items, narrowed to one festival when festival_id is
// given.
func (h *BudgetHandler) List(c echo.Context) error {
	var festivalID *int64
	if id, ok := festivalIDQuery(c); ok {
		festivalID = &id
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	items, err := h.Budget.List(ctx, festivalID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *BudgetHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid budget item id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	item, err := h.Budget.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *BudgetHandler) Create(c echo.Context) error {
	var req model.BudgetItem
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.FestivalID == 0 || strings.TrimSpace(req.Name) == "" || req.Category == "" {
		return badRequest(c, "Festival id, name and category are required")
	}
	if req.Type != model.BudgetIncome && req.Type != model.BudgetExpense {
		return badRequest(c, "Type must be income or expense")
	}
	if req.Amount < 0 {
		return badRequest(c, "Amount must not be negative")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	item, err := h.Budget.Create(ctx, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// Update applies a partial change; absent fields are left alone.
func (h *BudgetHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid budget item id")
	}
	var req struct {
		Name          *string  `json:"name"`
		Category      *string  `json:"category"`
		Type          *string  `json:"type"`
		Amount        *float64 `json:"amount"`
		PlannedAmount *float64 `json:"planned_amount"`
		PaymentStatus *string  `json:"payment_status"`
		DueDate       *string  `json:"due_date"`
		PaidDate      *string  `json:"paid_date"`
		Description   *string  `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Type != nil && *req.Type != model.BudgetIncome && *req.Type != model.BudgetExpense {
		return badRequest(c, "Type must be income or expense")
	}
	if req.Amount != nil && *req.Amount < 0 {
		return badRequest(c, "Amount must not be negative")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	item, err := h.Budget.Update(ctx, id, req.Name, req.Category, req.Type,
		req.Amount, req.PlannedAmount, req.PaymentStatus, req.DueDate, req.PaidDate, req.Description)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *BudgetHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid budget item id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Budget.Delete(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Budget item deleted successfully"})
}

func (h *BudgetHandler) Summary(c echo.Context) error {
	festivalID, err := idParam(c, "festival_id")
	if err != nil {
		return badRequest(c, "Invalid festival id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	summary, err := h.Budget.Summary(ctx, festivalID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *BudgetHandler) Categories(c echo.Context) error {
	festivalID, err := idParam(c, "festival_id")
	if err != nil {
		return badRequest(c, "Invalid festival id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	report, err := h.Budget.Categories(ctx, festivalID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
