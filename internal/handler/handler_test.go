package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbruton/festival-manager/internal/database"
	"github.com/mbruton/festival-manager/internal/middleware"
	"github.com/mbruton/festival-manager/internal/model"
	"github.com/mbruton/festival-manager/internal/queue"
	"github.com/mbruton/festival-manager/internal/repository"
)

type testEnv struct {
	db           *database.DB
	users        *repository.UserRepo
	venues       *repository.VenueRepo
	festivals    *repository.FestivalRepo
	stages       *repository.StageRepo
	artists      *repository.ArtistRepo
	performances *repository.PerformanceRepo
	contracts    *repository.ContractRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.InitSchema(context.Background()))
	return &testEnv{
		db:           db,
		users:        repository.NewUserRepo(db),
		venues:       repository.NewVenueRepo(db),
		festivals:    repository.NewFestivalRepo(db),
		stages:       repository.NewStageRepo(db),
		artists:      repository.NewArtistRepo(db),
		performances: repository.NewPerformanceRepo(db),
		contracts:    repository.NewContractRepo(db),
	}
}

// capturingPublisher records events instead of talking to a broker.
type capturingPublisher struct {
	events []queue.ContractSignedEvent
}

func (p *capturingPublisher) ContractSigned(_ context.Context, ev queue.ContractSignedEvent) error {
	p.events = append(p.events, ev)
	return nil
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, setup func(echo.Context)) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	require.NoError(t, h(c))

	out := map[string]any{}
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Body.String(), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func (env *testEnv) seedFestival(t *testing.T) *model.Festival {
	t.Helper()
	f, err := env.festivals.Create(context.Background(), &model.Festival{
		Name: "Green Meadow", Year: 2026, StartDate: "2026-07-10", EndDate: "2026-07-12",
	})
	require.NoError(t, err)
	return f
}

func (env *testEnv) seedArtist(t *testing.T, festivalID int64, name string) *model.Artist {
	t.Helper()
	a, err := env.artists.Create(context.Background(), &model.Artist{FestivalID: festivalID, Name: name})
	require.NoError(t, err)
	return a
}

func (env *testEnv) seedUser(t *testing.T) *model.User {
	t.Helper()
	u, err := env.users.Create(context.Background(),
		"manager@example.com", "hash", "Robin", "Hale", model.RoleManager, nil)
	require.NoError(t, err)
	return u
}

func TestFestivalDeleteReportsDependents(t *testing.T) {
	env := newTestEnv(t)
	f := env.seedFestival(t)
	env.seedArtist(t, f.ID, "The Larks")

	h := NewFestivalHandler(env.festivals)
	rec, out := doJSON(t, h.Delete, http.MethodDelete, "/api/festivals/"+strconv.FormatInt(f.ID, 10), "",
		func(c echo.Context) {
			c.SetParamNames("id")
			c.SetParamValues(strconv.FormatInt(f.ID, 10))
		})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot delete festival with associated data", out["error"])
	assert.Equal(t, true, out["canForceDelete"])
	details := out["details"].(map[string]any)
	assert.Equal(t, float64(1), details["artists"])
}

func TestFestivalForceDelete(t *testing.T) {
	env := newTestEnv(t)
	f := env.seedFestival(t)
	env.seedArtist(t, f.ID, "The Larks")

	h := NewFestivalHandler(env.festivals)
	rec, _ := doJSON(t, h.Delete, http.MethodDelete,
		"/api/festivals/"+strconv.FormatInt(f.ID, 10)+"?force=true", "",
		func(c echo.Context) {
			c.SetParamNames("id")
			c.SetParamValues(strconv.FormatInt(f.ID, 10))
		})
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err := env.festivals.GetByID(context.Background(), f.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestScheduleCreateConflictEnvelope(t *testing.T) {
	env := newTestEnv(t)
	f := env.seedFestival(t)
	artist := env.seedArtist(t, f.ID, "The Larks")
	other := env.seedArtist(t, f.ID, "Night Swimmers")
	stage, err := env.stages.Create(context.Background(), &model.StageArea{EventID: f.ID, Name: "Main Stage", Type: "stage"})
	require.NoError(t, err)

	h := NewScheduleHandler(env.performances, env.stages)
	body := func(artistID int64, start string) string {
		return `{"festival_id":` + strconv.FormatInt(f.ID, 10) +
			`,"artist_id":` + strconv.FormatInt(artistID, 10) +
			`,"stage_area_id":` + strconv.FormatInt(stage.ID, 10) +
			`,"performance_date":"2026-07-10","start_time":"` + start + `","duration_minutes":60}`
	}

	rec, _ := doJSON(t, h.Create, http.MethodPost, "/api/schedule", body(artist.ID, "20:00"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// 20:30 lands inside [20:00, 21:15) so the booking must be refused.
	rec, out := doJSON(t, h.Create, http.MethodPost, "/api/schedule", body(other.ID, "20:30"), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Time slot conflict detected", out["error"])
	conflicts := out["conflicts"].([]any)
	require.Len(t, conflicts, 1)
	first := conflicts[0].(map[string]any)
	assert.Equal(t, "The Larks", first["artist_name"])

	// The changeover window ends at 21:15; starting there is fine.
	rec, _ = doJSON(t, h.Create, http.MethodPost, "/api/schedule", body(other.ID, "21:15"), nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestScheduleCreateRejectsBadTime(t *testing.T) {
	env := newTestEnv(t)
	h := NewScheduleHandler(env.performances, env.stages)
	rec, out := doJSON(t, h.Create, http.MethodPost, "/api/schedule",
		`{"festival_id":1,"artist_id":1,"stage_area_id":1,"performance_date":"2026-07-10","start_time":"25:00","duration_minutes":60}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, out["error"], "HH:MM")
}

func TestScheduleUpdateKeepsOmittedFields(t *testing.T) {
	env := newTestEnv(t)
	f := env.seedFestival(t)
	artist := env.seedArtist(t, f.ID, "The Larks")
	stage, err := env.stages.Create(context.Background(), &model.StageArea{EventID: f.ID, Name: "Main Stage", Type: "stage"})
	require.NoError(t, err)

	h := NewScheduleHandler(env.performances, env.stages)
	p, err := env.performances.Create(context.Background(), &model.Performance{
		FestivalID: f.ID, ArtistID: artist.ID, StageAreaID: stage.ID,
		PerformanceDate: "2026-07-10", StartTime: "20:00", DurationMinutes: 60,
	})
	require.NoError(t, err)

	// A start-time-only update keeps the default changeover and status.
	rec, out := doJSON(t, h.Update, http.MethodPut, "/api/schedule/1",
		`{"start_time":"20:30"}`, func(c echo.Context) {
			c.SetParamNames("id")
			c.SetParamValues(strconv.FormatInt(p.ID, 10))
		})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "20:30", out["start_time"])
	assert.Equal(t, float64(15), out["changeover_minutes"])
	assert.Equal(t, "scheduled", out["status"])
	assert.Equal(t, "21:45", out["stage_free_at"])
}

func TestPublicContractViewAndSign(t *testing.T) {
	env := newTestEnv(t)
	f := env.seedFestival(t)
	artist := env.seedArtist(t, f.ID, "The Larks")
	user := env.seedUser(t)

	content := "Agreement between {{festival_name}} and {{artist_name}} for a fee of {{artist_fee}}."
	contract, err := env.contracts.Create(context.Background(), artist.ID, nil, &content, nil, &user.ID)
	require.NoError(t, err)
	contract, err = env.contracts.Send(context.Background(), contract.ID)
	require.NoError(t, err)

	events := &capturingPublisher{}
	h := NewContractHandler(env.contracts, env.artists, env.festivals, env.performances, events)

	withToken := func(c echo.Context) {
		c.SetParamNames("token")
		c.SetParamValues(contract.SecureToken)
	}

	rec, out := doJSON(t, h.View, http.MethodGet, "/api/contracts/sign/"+contract.SecureToken, "", withToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Agreement between Green Meadow and The Larks for a fee of To be agreed.", out["content"])
	info := out["contract"].(map[string]any)
	assert.Equal(t, model.ContractViewed, info["status"])

	rec, out = doJSON(t, h.Sign, http.MethodPost, "/api/contracts/sign/"+contract.SecureToken,
		`{"signature_data":"data:image/png;base64,abc","signature_name":"Jo Lark"}`, withToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Contract signed successfully", out["message"])

	require.Len(t, events.events, 1)
	assert.Equal(t, contract.ID, events.events[0].ContractID)
	assert.Equal(t, "The Larks", events.events[0].ArtistName)
	assert.Equal(t, "Jo Lark", events.events[0].SignatureName)

	updated, err := env.artists.GetByID(context.Background(), artist.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ArtistContracted, updated.Status)
}

func TestPublicContractSignRejectsPastDeadline(t *testing.T) {
	env := newTestEnv(t)
	f := env.seedFestival(t)
	artist := env.seedArtist(t, f.ID, "The Larks")
	user := env.seedUser(t)

	content := "Terms."
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	contract, err := env.contracts.Create(context.Background(), artist.ID, nil, &content, &yesterday, &user.ID)
	require.NoError(t, err)
	_, err = env.contracts.Send(context.Background(), contract.ID)
	require.NoError(t, err)

	h := NewContractHandler(env.contracts, env.artists, env.festivals, env.performances, &capturingPublisher{})
	rec, out := doJSON(t, h.Sign, http.MethodPost, "/api/contracts/sign/"+contract.SecureToken,
		`{"signature_data":"sig"}`, func(c echo.Context) {
			c.SetParamNames("token")
			c.SetParamValues(contract.SecureToken)
		})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Signing deadline has passed", out["error"])
}

func TestVenueSoftDeleteMessage(t *testing.T) {
	env := newTestEnv(t)
	v, err := env.venues.Create(context.Background(), &model.Venue{Name: "Willow Park"})
	require.NoError(t, err)
	_, err = env.festivals.Create(context.Background(), &model.Festival{
		Name: "Green Meadow", Year: 2026, StartDate: "2026-07-10", EndDate: "2026-07-12", VenueID: &v.ID,
	})
	require.NoError(t, err)

	h := NewVenueHandler(env.venues)
	rec, out := doJSON(t, h.Delete, http.MethodDelete, "/api/venues/"+strconv.FormatInt(v.ID, 10), "",
		func(c echo.Context) {
			c.SetParamNames("id")
			c.SetParamValues(strconv.FormatInt(v.ID, 10))
		})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, out["message"], "deactivated")
}

func TestUserSetRoleBlocksSelf(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)

	h := NewUserHandler(env.users)
	rec, out := doJSON(t, h.SetRole, http.MethodPut, "/api/users/"+strconv.FormatInt(user.ID, 10)+"/role",
		`{"role":"admin"}`, func(c echo.Context) {
			c.SetParamNames("id")
			c.SetParamValues(strconv.FormatInt(user.ID, 10))
			c.Set(middleware.ContextUser, user)
		})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot change your own role", out["error"])
}
