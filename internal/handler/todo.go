package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mbruton/festival-manager/internal/repository"
)

// TodoHandler serves the generated action-item list for a festival.
type TodoHandler struct {
	Todos *repository.TodoRepo
}

func NewTodoHandler(todos *repository.TodoRepo) *TodoHandler {
	return &TodoHandler{Todos: todos}
}

func (h *TodoHandler) List(c echo.Context) error {
	festivalID, ok := festivalIDQuery(c)
	if !ok {
		return badRequest(c, "festival_id query parameter is required")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	report, err := h.Todos.Build(ctx, festivalID, time.Now())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
