package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbruton/festival-manager/internal/model"
	"github.com/mbruton/festival-manager/internal/utils"
)

type stubUserStore struct {
	users map[int64]*model.User
}

func (s *stubUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

const testSecret = "test-secret"

func doAuth(t *testing.T, store UserStore, header string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(testSecret, store)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec := doAuth(t, &stubUserStore{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	store := &stubUserStore{users: map[int64]*model.User{
		7: {ID: 7, Role: model.RoleManager, IsActive: true},
	}}
	tok, err := utils.NewAccessToken(testSecret, 7, model.RoleManager, 5)
	require.NoError(t, err)

	rec := doAuth(t, store, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthDeactivatedUser(t *testing.T) {
	store := &stubUserStore{users: map[int64]*model.User{
		7: {ID: 7, Role: model.RoleManager, IsActive: false},
	}}
	tok, err := utils.NewAccessToken(testSecret, 7, model.RoleManager, 5)
	require.NoError(t, err)

	rec := doAuth(t, store, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthDeletedUser(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 99, model.RoleAdmin, 5)
	require.NoError(t, err)

	rec := doAuth(t, &stubUserStore{}, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func doWithUser(t *testing.T, user *model.User, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(ContextUser, user)
	}
	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, h(c))
	return rec
}

func TestRequireMinimumRole(t *testing.T) {
	coordinator := &model.User{ID: 1, Role: model.RoleCoordinator, IsActive: true}

	rec := doWithUser(t, coordinator, RequireMinimumRole(model.RoleCoordinator))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doWithUser(t, coordinator, RequireMinimumRole(model.RoleManager))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := &model.User{ID: 2, Role: model.RoleAdmin, IsActive: true}
	rec = doWithUser(t, admin, RequireMinimumRole(model.RoleCoordinator))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleExactMatch(t *testing.T) {
	manager := &model.User{ID: 1, Role: model.RoleManager, IsActive: true}

	rec := doWithUser(t, manager, RequireRole(model.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doWithUser(t, manager, RequireRole(model.RoleAdmin, model.RoleManager))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleNoUser(t *testing.T) {
	rec := doWithUser(t, nil, RequireRole(model.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
