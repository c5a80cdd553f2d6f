package handler

import (
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"

	"github.com/mbruton/festival-manager/internal/config"
	"github.com/mbruton/festival-manager/internal/middleware"
	"github.com/mbruton/festival-manager/internal/model"
	"github.com/mbruton/festival-manager/internal/repository"
	"github.com/mbruton/festival-manager/internal/utils"
)

// AuthHandler serves login, registration and profile management.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type userPart struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Role      string  `json:"role"`
	Phone     *string `json:"phone,omitempty"`
}

func toUserPart(u *model.User) userPart {
	return userPart{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName, Role: u.Role, Phone: u.Phone}
}

// Login verifies credentials and returns a signed access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}
	if !user.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Account is deactivated"})
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, user.ID, user.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token": token.Token,
		"user":  toUserPart(user),
	})
}

// Register creates a user; the route is gated to admins.
func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Email     string  `json:"email"`
		Password  string  `json:"password"`
		FirstName string  `json:"first_name"`
		LastName  string  `json:"last_name"`
		Role      string  `json:"role"`
		Phone     *string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return badRequest(c, "Email, password, first name and last name are required")
	}
	if !emailPattern.MatchString(req.Email) {
		return badRequest(c, "Invalid email format")
	}
	if len(req.Password) < 8 {
		return badRequest(c, "Password must be at least 8 characters long")
	}
	role := req.Role
	if role == "" {
		role = model.RoleReadOnly
	}
	if !model.ValidRole(role) {
		return badRequest(c, "Invalid role")
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return fail(c, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	user, err := h.Users.Create(ctx, req.Email, hash, req.FirstName, req.LastName, role, req.Phone)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": toUserPart(user)})
}

// Profile returns the authenticated user.
func (h *AuthHandler) Profile(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(middleware.CurrentUser(c))})
}

// UpdateProfile lets a user change their own name and phone.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	user := middleware.CurrentUser(c)
	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Phone     *string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	updated, err := h.Users.Update(ctx, user.ID, req.FirstName, req.LastName, nil, req.Phone, nil)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(updated)})
}

// ChangePassword verifies the current password before replacing it.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	user := middleware.CurrentUser(c)
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return badRequest(c, "Current and new password are required")
	}
	if len(req.NewPassword) < 8 {
		return badRequest(c, "Password must be at least 8 characters long")
	}
	if !utils.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Current password is incorrect"})
	}

	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return fail(c, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated successfully"})
}
