package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbruton/festival-manager/internal/database"
	"github.com/mbruton/festival-manager/internal/model"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.InitSchema(context.Background()))
	return db
}

func seedFestival(t *testing.T, db *database.DB) int64 {
	t.Helper()
	f, err := NewFestivalRepo(db).Create(context.Background(), &model.Festival{
		Name: "Greenfield", Year: 2026, StartDate: "2026-08-14", EndDate: "2026-08-16",
	})
	require.NoError(t, err)
	return f.ID
}

func seedStage(t *testing.T, db *database.DB, festivalID int64, name string) int64 {
	t.Helper()
	s, err := NewStageRepo(db).Create(context.Background(), &model.StageArea{
		EventID: festivalID, Name: name, Type: "stage",
	})
	require.NoError(t, err)
	return s.ID
}

func seedArtist(t *testing.T, db *database.DB, festivalID int64, name string) *model.Artist {
	t.Helper()
	a, err := NewArtistRepo(db).Create(context.Background(), &model.Artist{
		FestivalID: festivalID, Name: name,
	})
	require.NoError(t, err)
	return a
}

func TestUserRepoCreateAndDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	u, err := repo.Create(ctx, "Admin@Example.com", "hash", "Ada", "Lovelace", model.RoleAdmin, nil)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", u.Email)
	assert.True(t, u.IsActive)

	_, err = repo.Create(ctx, "admin@example.com", "hash", "Other", "Person", model.RoleManager, nil)
	assert.ErrorIs(t, err, ErrDuplicate)

	got, err := repo.GetByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestUserRepoDeactivate(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	u, err := repo.Create(ctx, "c@example.com", "hash", "Co", "Ordinator", model.RoleCoordinator, nil)
	require.NoError(t, err)

	inactive := false
	got, err := repo.Update(ctx, u.ID, nil, nil, nil, nil, &inactive)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, model.RoleCoordinator, got.Role)
}

func TestVenueSoftDeleteWhenReferenced(t *testing.T) {
	db := newTestDB(t)
	venues := NewVenueRepo(db)
	ctx := context.Background()

	v, err := venues.Create(ctx, &model.Venue{Name: "Willow Park"})
	require.NoError(t, err)
	assert.Equal(t, "United Kingdom", v.Country)

	_, err = NewFestivalRepo(db).Create(ctx, &model.Festival{
		Name: "Willow Fest", Year: 2026, StartDate: "2026-07-01", EndDate: "2026-07-03", VenueID: &v.ID,
	})
	require.NoError(t, err)

	soft, err := venues.Delete(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, soft)

	got, err := venues.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	active, err := venues.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestVenueHardDeleteWhenUnreferenced(t *testing.T) {
	db := newTestDB(t)
	venues := NewVenueRepo(db)
	ctx := context.Background()

	v, err := venues.Create(ctx, &model.Venue{Name: "Unused Field"})
	require.NoError(t, err)

	soft, err := venues.Delete(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, soft)

	_, err = venues.GetByID(ctx, v.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFestivalDeleteRequiresForce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)
	stageID := seedStage(t, db, festivalID, "Main Stage")
	artist := seedArtist(t, db, festivalID, "The Night Owls")

	perfs := NewPerformanceRepo(db)
	_, err := perfs.Create(ctx, &model.Performance{
		FestivalID: festivalID, ArtistID: artist.ID, StageAreaID: stageID,
		PerformanceDate: "2026-08-15", StartTime: "20:00", DurationMinutes: 60,
	})
	require.NoError(t, err)

	_, err = NewBudgetRepo(db).Create(ctx, &model.BudgetItem{
		FestivalID: festivalID, Name: "PA hire", Category: "Production", Type: "expense", Amount: 900,
	})
	require.NoError(t, err)

	festivals := NewFestivalRepo(db)
	err = festivals.Delete(ctx, festivalID, false)
	var deps *HasDependents
	require.ErrorAs(t, err, &deps)
	assert.EqualValues(t, 1, deps.Stages)
	assert.EqualValues(t, 1, deps.Performances)
	assert.EqualValues(t, 1, deps.Artists)
	assert.EqualValues(t, 1, deps.BudgetItems)

	require.NoError(t, festivals.Delete(ctx, festivalID, true))

	_, err = festivals.GetByID(ctx, festivalID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Force delete leaves no orphans in any dependent table.
	for _, q := range []string{
		"SELECT COUNT(*) FROM stages_areas WHERE event_id = ?",
		"SELECT COUNT(*) FROM performances WHERE festival_id = ?",
		"SELECT COUNT(*) FROM artists WHERE festival_id = ?",
		"SELECT COUNT(*) FROM volunteers WHERE festival_id = ?",
		"SELECT COUNT(*) FROM vendors WHERE festival_id = ?",
		"SELECT COUNT(*) FROM budget_items WHERE festival_id = ?",
		"SELECT COUNT(*) FROM documents WHERE festival_id = ?",
	} {
		var n int64
		require.NoError(t, db.QueryRowContext(ctx, q, festivalID).Scan(&n))
		assert.Zero(t, n, q)
	}
}

func TestFestivalClone(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)
	seedStage(t, db, festivalID, "Main Stage")
	seedArtist(t, db, festivalID, "The Night Owls")

	festivals := NewFestivalRepo(db)
	clone, err := festivals.Clone(ctx, festivalID, "Greenfield 2027", 2027, "2027-08-13", "2027-08-15",
		CloneOptions{Stages: true, Artists: true})
	require.NoError(t, err)
	assert.Equal(t, model.FestivalPlanning, clone.Status)

	stages, err := NewStageRepo(db).ListByFestival(ctx, clone.ID)
	require.NoError(t, err)
	assert.Len(t, stages, 1)

	artists, err := NewArtistRepo(db).ListByFestival(ctx, clone.ID)
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, model.ArtistInquired, artists[0].Status)
}

func TestStageReorder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)
	a := seedStage(t, db, festivalID, "Acoustic Tent")
	b := seedStage(t, db, festivalID, "Main Stage")
	c := seedStage(t, db, festivalID, "Dance Arena")

	stages := NewStageRepo(db)
	require.NoError(t, stages.Reorder(ctx, festivalID, []int64{c, a, b}))

	got, err := stages.ListByFestival(ctx, festivalID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, c, got[0].ID)
	assert.Equal(t, a, got[1].ID)
	assert.Equal(t, b, got[2].ID)
}

func TestStageDeleteBlockedByBooking(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)
	stageID := seedStage(t, db, festivalID, "Main Stage")
	artist := seedArtist(t, db, festivalID, "The Night Owls")

	perfs := NewPerformanceRepo(db)
	p, err := perfs.Create(ctx, &model.Performance{
		FestivalID: festivalID, ArtistID: artist.ID, StageAreaID: stageID,
		PerformanceDate: "2026-08-15", StartTime: "20:00", DurationMinutes: 60,
	})
	require.NoError(t, err)

	stages := NewStageRepo(db)
	assert.ErrorIs(t, stages.Delete(ctx, stageID), ErrInUse)

	// A cancelled booking no longer blocks.
	cancelled := model.PerformanceCancelled
	_, err = perfs.Update(ctx, p.ID, &PerformancePatch{Status: &cancelled})
	require.NoError(t, err)
	require.NoError(t, stages.Delete(ctx, stageID))

	got, err := stages.GetByID(ctx, stageID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestArtistUniqueNamePerFestival(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)
	otherFestival := seedFestival(t, db)
	artists := NewArtistRepo(db)

	seedArtist(t, db, festivalID, "The Night Owls")
	_, err := artists.Create(ctx, &model.Artist{FestivalID: festivalID, Name: "The Night Owls"})
	assert.ErrorIs(t, err, ErrDuplicate)

	// Same name in a different festival is fine.
	_, err = artists.Create(ctx, &model.Artist{FestivalID: otherFestival, Name: "The Night Owls"})
	assert.NoError(t, err)
}

func TestArtistDeleteBlockedByPerformance(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)
	stageID := seedStage(t, db, festivalID, "Main Stage")
	artist := seedArtist(t, db, festivalID, "The Night Owls")

	perfs := NewPerformanceRepo(db)
	p, err := perfs.Create(ctx, &model.Performance{
		FestivalID: festivalID, ArtistID: artist.ID, StageAreaID: stageID,
		PerformanceDate: "2026-08-15", StartTime: "20:00", DurationMinutes: 60,
	})
	require.NoError(t, err)

	artists := NewArtistRepo(db)
	assert.ErrorIs(t, artists.Delete(ctx, artist.ID), ErrInUse)

	cancelled := model.PerformanceCancelled
	_, err = perfs.Update(ctx, p.ID, &PerformancePatch{Status: &cancelled})
	require.NoError(t, err)
	require.NoError(t, artists.Delete(ctx, artist.ID))
}

func TestPerformanceConflictDetection(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)
	stageID := seedStage(t, db, festivalID, "Main Stage")
	otherStage := seedStage(t, db, festivalID, "Acoustic Tent")
	a := seedArtist(t, db, festivalID, "The Night Owls")
	b := seedArtist(t, db, festivalID, "Acoustic Dawn")

	perfs := NewPerformanceRepo(db)
	// Occupies 20:00-21:15 (60 min set + 15 min changeover).
	first, err := perfs.Create(ctx, &model.Performance{
		FestivalID: festivalID, ArtistID: a.ID, StageAreaID: stageID,
		PerformanceDate: "2026-08-15", StartTime: "20:00", DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, first.ChangeoverMinutes)
	assert.Equal(t, "The Night Owls", first.ArtistName)

	// Starts during the changeover window: rejected with the clash attached.
	_, err = perfs.Create(ctx, &model.Performance{
		FestivalID: festivalID, ArtistID: b.ID, StageAreaID: stageID,
		PerformanceDate: "2026-08-15", StartTime: "21:10", DurationMinutes: 45,
	})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Conflicts, 1)
	assert.Equal(t, first.ID, conflict.Conflicts[0].ID)

	// Touching the boundary exactly is allowed.
	_, err = perfs.Create(ctx, &model.Performance{
		FestivalID: festivalID, ArtistID: b.ID, StageAreaID: stageID,
		PerformanceDate: "2026-08-15", StartTime: "21:15", DurationMinutes: 45,
	})
	assert.NoError(t, err)

	// Same slot on another stage is fine.
	_, err = perfs.Create(ctx, &model.Performance{
		FestivalID: festivalID, ArtistID: b.ID, StageAreaID: otherStage,
		PerformanceDate: "2026-08-15", StartTime: "20:30", DurationMinutes: 30,
	})
	assert.NoError(t, err)

	// Same slot on another date is fine.
	_, err = perfs.Create(ctx, &model.Performance{
		FestivalID: festivalID, ArtistID: a.ID, StageAreaID: stageID,
		PerformanceDate: "2026-08-16", StartTime: "20:30", DurationMinutes: 30,
	})
	assert.NoError(t, err)
}

func TestPerformanceUpdateExcludesSelf(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)
	stageID := seedStage(t, db, festivalID, "Main Stage")
	artist := seedArtist(t, db, festivalID, "The Night Owls")

	perfs := NewPerformanceRepo(db)
	p, err := perfs.Create(ctx, &model.Performance{
		FestivalID: festivalID, ArtistID: artist.ID, StageAreaID: stageID,
		PerformanceDate: "2026-08-15", StartTime: "20:00", DurationMinutes: 60,
	})
	require.NoError(t, err)

	// Nudging its own start must not collide with itself.
	start := "20:15"
	got, err := perfs.Update(ctx, p.ID, &PerformancePatch{StartTime: &start})
	require.NoError(t, err)
	assert.Equal(t, "20:15", got.StartTime)
}

func TestPerformancePartialUpdateKeepsOmittedFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)
	stageID := seedStage(t, db, festivalID, "Main Stage")
	a := seedArtist(t, db, festivalID, "The Night Owls")
	b := seedArtist(t, db, festivalID, "Acoustic Dawn")

	perfs := NewPerformanceRepo(db)
	// Occupies 20:00-21:15 (60 min set + 15 min changeover).
	p, err := perfs.Create(ctx, &model.Performance{
		FestivalID: festivalID, ArtistID: a.ID, StageAreaID: stageID,
		PerformanceDate: "2026-08-15", StartTime: "20:00", DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.Equal(t, 15, p.ChangeoverMinutes)

	// A notes-only update must not touch changeover or status.
	notes := "bring spare amp"
	got, err := perfs.Update(ctx, p.ID, &PerformancePatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, 15, got.ChangeoverMinutes)
	assert.Equal(t, model.PerformanceScheduled, got.Status)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "bring spare amp", *got.Notes)

	// The changeover window still blocks a 21:00 booking.
	_, err = perfs.Create(ctx, &model.Performance{
		FestivalID: festivalID, ArtistID: b.ID, StageAreaID: stageID,
		PerformanceDate: "2026-08-15", StartTime: "21:00", DurationMinutes: 30,
	})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Conflicts, 1)
	assert.Equal(t, p.ID, conflict.Conflicts[0].ID)
}

func TestCancelledPerformanceDoesNotConflict(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)
	stageID := seedStage(t, db, festivalID, "Main Stage")
	a := seedArtist(t, db, festivalID, "The Night Owls")
	b := seedArtist(t, db, festivalID, "Acoustic Dawn")

	perfs := NewPerformanceRepo(db)
	p, err := perfs.Create(ctx, &model.Performance{
		FestivalID: festivalID, ArtistID: a.ID, StageAreaID: stageID,
		PerformanceDate: "2026-08-15", StartTime: "20:00", DurationMinutes: 60,
	})
	require.NoError(t, err)

	cancelled := model.PerformanceCancelled
	_, err = perfs.Update(ctx, p.ID, &PerformancePatch{Status: &cancelled})
	require.NoError(t, err)

	_, err = perfs.Create(ctx, &model.Performance{
		FestivalID: festivalID, ArtistID: b.ID, StageAreaID: stageID,
		PerformanceDate: "2026-08-15", StartTime: "20:30", DurationMinutes: 30,
	})
	assert.NoError(t, err)
}

func TestBudgetSummary(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)
	budgets := NewBudgetRepo(db)

	mk := func(name, typ, status string, amount float64) {
		_, err := budgets.Create(ctx, &model.BudgetItem{
			FestivalID: festivalID, Name: name, Category: "General", Type: typ,
			Amount: amount, PaymentStatus: status,
		})
		require.NoError(t, err)
	}
	mk("Tickets", "income", "paid", 10000)
	mk("Sponsorship", "income", "pending", 5000)
	mk("Stage hire", "expense", "paid", 3000)
	mk("Security", "expense", "pending", 2000)

	s, err := budgets.Summary(ctx, festivalID)
	require.NoError(t, err)
	assert.Equal(t, 15000.0, s.TotalIncome)
	assert.Equal(t, 5000.0, s.TotalExpenses)
	assert.Equal(t, 10000.0, s.NetBudget)
	assert.Equal(t, 5000.0, s.OutstandingIncome)
	assert.Equal(t, 2000.0, s.OutstandingExpenses)
}

func TestBudgetCategoriesFoldInArtists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)

	fee := 5000.0
	artists := NewArtistRepo(db)
	a := seedArtist(t, db, festivalID, "Headliner")
	a.Fee = &fee
	a.FeeStatus = "agreed"
	_, err := artists.Update(ctx, a.ID, a)
	require.NoError(t, err)

	budgets := NewBudgetRepo(db)
	_, err = budgets.Create(ctx, &model.BudgetItem{
		FestivalID: festivalID, Name: "Fencing", Category: "Site Costs", Type: "expense", Amount: 1200,
	})
	require.NoError(t, err)

	report, err := budgets.Categories(ctx, festivalID)
	require.NoError(t, err)

	artistsCat := report.Categories["artists"]
	require.NotNil(t, artistsCat)
	assert.Equal(t, 5000.0, artistsCat.TotalBudget)
	assert.Equal(t, 5000.0, artistsCat.Agreed)

	site := report.Categories["site_costs"]
	require.NotNil(t, site)
	assert.Equal(t, 1200.0, site.TotalBudget)

	assert.Equal(t, 6200.0, report.TotalExpenses)
}

func TestTodoRepoFixture(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)
	now := time.Now().UTC()

	budgets := NewBudgetRepo(db)
	due := func(days int) *string {
		s := now.AddDate(0, 0, days).Format("2006-01-02")
		return &s
	}
	_, err := budgets.Create(ctx, &model.BudgetItem{
		FestivalID: festivalID, Name: "Stage deposit", Category: "Production", Type: "expense",
		Amount: 500, DueDate: due(-1),
	})
	require.NoError(t, err)
	_, err = budgets.Create(ctx, &model.BudgetItem{
		FestivalID: festivalID, Name: "PA balance", Category: "Production", Type: "expense",
		Amount: 1200, DueDate: due(3),
	})
	require.NoError(t, err)
	_, err = NewDocumentRepo(db).Create(ctx, &model.Document{
		FestivalID: festivalID, Name: "Liability policy", Type: "insurance", ExpiryDate: due(5),
	})
	require.NoError(t, err)

	report, err := NewTodoRepo(db).Build(ctx, festivalID, now)
	require.NoError(t, err)

	require.Len(t, report.Todos, 3)
	assert.Equal(t, 2, report.HighPriority)
	assert.Equal(t, 1, report.MediumPriority)
	assert.Equal(t, "payment_overdue", report.Todos[0].Type)
	priorities := []string{report.Todos[0].Priority, report.Todos[1].Priority, report.Todos[2].Priority}
	assert.Equal(t, []string{"high", "high", "medium"}, priorities)
}

func TestContractLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)
	artist := seedArtist(t, db, festivalID, "The Night Owls")
	contracts := NewContractRepo(db)
	artists := NewArtistRepo(db)

	tpl, err := contracts.CreateTemplate(ctx, "Standard", nil, "Dear {{artist_name}}", nil)
	require.NoError(t, err)

	c, err := contracts.Create(ctx, artist.ID, &tpl.ID, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, model.ContractDraft, c.Status)
	assert.Len(t, c.SecureToken, 64)
	assert.Equal(t, "Dear {{artist_name}}", c.Content)

	versions, err := contracts.Versions(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, 1, versions[0].VersionNumber)

	// Send, then view via the public token.
	c, err = contracts.Send(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ContractSent, c.Status)
	require.NotNil(t, c.SentAt)

	byToken, err := contracts.GetByToken(ctx, c.SecureToken)
	require.NoError(t, err)
	require.NoError(t, contracts.MarkViewed(ctx, byToken.ID))

	c, err = contracts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ContractViewed, c.Status)
	require.NotNil(t, c.ViewedAt)

	// Sign: contract -> signed, artist -> contracted.
	name := "Sam Reed"
	signed, err := contracts.Sign(ctx, c.SecureToken, "data:image/png;base64,abc", &name, time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.ContractSigned, signed.Status)
	require.NotNil(t, signed.SignedAt)

	gotArtist, err := artists.GetByID(ctx, artist.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ArtistContracted, gotArtist.Status)

	// Voiding reverts the artist to confirmed.
	_, err = contracts.Void(ctx, c.ID)
	require.NoError(t, err)
	gotArtist, err = artists.GetByID(ctx, artist.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ArtistConfirmed, gotArtist.Status)

	// A void contract's link stops resolving.
	_, err = contracts.GetByToken(ctx, c.SecureToken)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContractSignDeadline(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)
	artist := seedArtist(t, db, festivalID, "The Night Owls")
	contracts := NewContractRepo(db)

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	content := "terms"
	c, err := contracts.Create(ctx, artist.ID, nil, &content, &yesterday, nil)
	require.NoError(t, err)
	_, err = contracts.Send(ctx, c.ID)
	require.NoError(t, err)

	_, err = contracts.Sign(ctx, c.SecureToken, "sig", nil, time.Now())
	assert.ErrorIs(t, err, ErrDeadlinePassed)
}

func TestContractAmendAndResend(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)
	artist := seedArtist(t, db, festivalID, "The Night Owls")
	contracts := NewContractRepo(db)

	content := "v1 terms"
	c, err := contracts.Create(ctx, artist.ID, nil, &content, nil, nil)
	require.NoError(t, err)
	c, err = contracts.Send(ctx, c.ID)
	require.NoError(t, err)

	amended, err := contracts.Amend(ctx, c.ID, "v2 terms", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, model.ContractDraft, amended.Status)
	assert.Equal(t, "v2 terms", amended.Content)
	assert.Nil(t, amended.SentAt)

	versions, err := contracts.Versions(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 2, versions[0].VersionNumber)

	sent, err := contracts.Send(ctx, c.ID)
	require.NoError(t, err)
	oldToken := sent.SecureToken

	resent, err := contracts.Resend(ctx, c.ID)
	require.NoError(t, err)
	assert.NotEqual(t, oldToken, resent.SecureToken)
	assert.Equal(t, model.ContractSent, resent.Status)

	// The old link is dead after the re-mint.
	_, err = contracts.GetByToken(ctx, oldToken)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContractDeleteRevertsArtist(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)
	artist := seedArtist(t, db, festivalID, "The Night Owls")
	contracts := NewContractRepo(db)
	artists := NewArtistRepo(db)

	content := "terms"
	c, err := contracts.Create(ctx, artist.ID, nil, &content, nil, nil)
	require.NoError(t, err)
	c, err = contracts.Send(ctx, c.ID)
	require.NoError(t, err)
	_, err = contracts.Sign(ctx, c.SecureToken, "sig", nil, time.Now())
	require.NoError(t, err)

	require.NoError(t, contracts.Delete(ctx, c.ID))

	gotArtist, err := artists.GetByID(ctx, artist.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ArtistConfirmed, gotArtist.Status)

	versions, err := contracts.Versions(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestContractSignRejectedWhenNotSendable(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)
	artist := seedArtist(t, db, festivalID, "The Night Owls")
	contracts := NewContractRepo(db)

	content := "terms"
	c, err := contracts.Create(ctx, artist.ID, nil, &content, nil, nil)
	require.NoError(t, err)

	// Still a draft: the public link must not allow signing.
	_, err = contracts.Sign(ctx, c.SecureToken, "sig", nil, time.Now())
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestContractVoidRejectsDraft(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	festivalID := seedFestival(t, db)
	artist := seedArtist(t, db, festivalID, "The Night Owls")
	contracts := NewContractRepo(db)

	content := "terms"
	c, err := contracts.Create(ctx, artist.ID, nil, &content, nil, nil)
	require.NoError(t, err)

	// Drafts get deleted, not voided.
	_, err = contracts.Void(ctx, c.ID)
	assert.ErrorIs(t, err, ErrBadTransition)

	got, err := contracts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ContractDraft, got.Status)
}

func TestDeadlinePassed(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	past := "2026-06-14"
	today := "2026-06-15"
	future := "2026-06-16"
	withTime := "2026-06-14T23:59:00Z"

	assert.True(t, DeadlinePassed(&past, now))
	assert.False(t, DeadlinePassed(&today, now))
	assert.False(t, DeadlinePassed(&future, now))
	assert.True(t, DeadlinePassed(&withTime, now))
	assert.False(t, DeadlinePassed(nil, now))
}

func TestRequireRowNotFound(t *testing.T) {
	db := newTestDB(t)
	err := NewVendorRepo(db).Delete(context.Background(), 999)
	assert.True(t, errors.Is(err, ErrNotFound))
}
