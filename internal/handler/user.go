package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mbruton/festival-manager/internal/middleware"
	"github.com/mbruton/festival-manager/internal/model"
	"github.com/mbruton/festival-manager/internal/repository"
)

// UserHandler serves the admin user-management routes.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(users *repository.UserRepo) *UserHandler {
	return &UserHandler{Users: users}
}

func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return fail(c, err)
	}
	out := make([]userPart, 0, len(users))
	for i := range users {
		out = append(out, toUserPart(&users[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// SetRole changes a user's role. Admins cannot demote themselves, which
// would lock the last admin out mid-session.
func (h *UserHandler) SetRole(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid user id")
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if !model.ValidRole(req.Role) {
		return badRequest(c, "Invalid role")
	}
	if middleware.CurrentUser(c).ID == id {
		return badRequest(c, "Cannot change your own role")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	updated, err := h.Users.Update(ctx, id, nil, nil, &req.Role, nil, nil)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(updated)})
}

// Deactivate disables a user's login without deleting their history.
func (h *UserHandler) Deactivate(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid user id")
	}
	if middleware.CurrentUser(c).ID == id {
		return badRequest(c, "Cannot deactivate your own account")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	inactive := false
	updated, err := h.Users.Update(ctx, id, nil, nil, nil, nil, &inactive)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(updated)})
}

// Activate re-enables a deactivated user.
func (h *UserHandler) Activate(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	active := true
	updated, err := h.Users.Update(ctx, id, nil, nil, nil, nil, &active)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(updated)})
}
