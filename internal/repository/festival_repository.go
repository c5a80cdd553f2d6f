package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mbruton/festival-manager/internal/database"
	"github.com/mbruton/festival-manager/internal/model"
)

type FestivalRepo struct{ DB *database.DB }

func NewFestivalRepo(db *database.DB) *FestivalRepo { return &FestivalRepo{DB: db} }

const festivalColumns = `f.id, f.name, f.year, f.start_date, f.end_date, f.venue_id, f.location,
	f.description, f.status, f.budget_total, f.budget_allocated, f.created_at, f.updated_at, v.name`

func scanFestival(row interface{ Scan(...any) error }) (*model.Festival, error) {
	var f model.Festival
	err := row.Scan(&f.ID, &f.Name, &f.Year, &f.StartDate, &f.EndDate, &f.VenueID, &f.Location,
		&f.Description, &f.Status, &f.BudgetTotal, &f.BudgetAllocated, &f.CreatedAt, &f.UpdatedAt, &f.VenueName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FestivalRepo) List(ctx context.Context) ([]model.Festival, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+festivalColumns+`
		FROM festivals f LEFT JOIN venues v ON f.venue_id = v.id
		ORDER BY f.year DESC, f.start_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	festivals := []model.Festival{}
	for rows.Next() {
		f, err := scanFestival(rows)
		if err != nil {
			return nil, err
		}
		festivals = append(festivals, *f)
	}
	return festivals, rows.Err()
}

func (r *FestivalRepo) GetByID(ctx context.Context, id int64) (*model.Festival, error) {
	return scanFestival(r.DB.QueryRowContext(ctx, `
		SELECT `+festivalColumns+`
		FROM festivals f LEFT JOIN venues v ON f.venue_id = v.id
		WHERE f.id = ? LIMIT 1`, id))
}

func (r *FestivalRepo) Create(ctx context.Context, f *model.Festival) (*model.Festival, error) {
	status := f.Status
	if status == "" {
		status = model.FestivalPlanning
	}
	id, err := r.DB.InsertContext(ctx, `
		INSERT INTO festivals (name, year, start_date, end_date, venue_id, location, description, status, budget_total, budget_allocated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.Name, f.Year, f.StartDate, f.EndDate, f.VenueID, f.Location, f.Description, status,
		f.BudgetTotal, f.BudgetAllocated)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *FestivalRepo) Update(ctx context.Context, id int64, f *model.Festival) (*model.Festival, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE festivals SET
			name = ?, year = ?, start_date = ?, end_date = ?, venue_id = ?, location = ?,
			description = ?, status = ?, budget_total = ?, budget_allocated = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		f.Name, f.Year, f.StartDate, f.EndDate, f.VenueID, f.Location,
		f.Description, f.Status, f.BudgetTotal, f.BudgetAllocated, id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// dependents counts the child rows of a festival across all seven owned
// tables.
func (r *FestivalRepo) dependents(ctx context.Context, id int64) (*HasDependents, error) {
	var d HasDependents
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM stages_areas WHERE event_id = ?),
			(SELECT COUNT(*) FROM performances WHERE festival_id = ?),
			(SELECT COUNT(*) FROM artists WHERE festival_id = ?),
			(SELECT COUNT(*) FROM volunteers WHERE festival_id = ?),
			(SELECT COUNT(*) FROM vendors WHERE festival_id = ?),
			(SELECT COUNT(*) FROM budget_items WHERE festival_id = ?),
			(SELECT COUNT(*) FROM documents WHERE festival_id = ?)`,
		id, id, id, id, id, id, id).
		Scan(&d.Stages, &d.Performances, &d.Artists, &d.Volunteers, &d.Vendors, &d.BudgetItems, &d.Documents)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Delete removes a festival. Without force it fails with *HasDependents
// when any child rows exist. With force the children are removed first,
// all inside one transaction so a failure cannot leave the festival
// half-deleted.
func (r *FestivalRepo) Delete(ctx context.Context, id int64, force bool) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	deps, err := r.dependents(ctx, id)
	if err != nil {
		return err
	}
	if deps.Total() > 0 && !force {
		return deps
	}

	tx, err := r.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if force {
		// Children first, contracts before the artists that own them.
		cascade := []string{
			`DELETE FROM contract_versions WHERE contract_id IN
				(SELECT ac.id FROM artist_contracts ac JOIN artists a ON ac.artist_id = a.id WHERE a.festival_id = ?)`,
			`DELETE FROM artist_contracts WHERE artist_id IN (SELECT id FROM artists WHERE festival_id = ?)`,
			`DELETE FROM documents WHERE festival_id = ?`,
			`DELETE FROM budget_items WHERE festival_id = ?`,
			`DELETE FROM performances WHERE festival_id = ?`,
			`DELETE FROM vendors WHERE festival_id = ?`,
			`DELETE FROM volunteers WHERE festival_id = ?`,
			`DELETE FROM artists WHERE festival_id = ?`,
			`DELETE FROM stages_areas WHERE event_id = ?`,
		}
		for _, q := range cascade {
			if _, err := tx.ExecContext(ctx, q, id); err != nil {
				return err
			}
		}
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM festivals WHERE id = ?", id)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

// Stats is the per-festival dashboard rollup.
type Stats struct {
	FestivalID    int64   `json:"festival_id"`
	Stages        int64   `json:"stages"`
	Performances  int64   `json:"performances"`
	Artists       int64   `json:"artists"`
	Volunteers    int64   `json:"volunteers"`
	Vendors       int64   `json:"vendors"`
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetProfit     float64 `json:"net_profit"`
}

func (r *FestivalRepo) Stats(ctx context.Context, id int64) (*Stats, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	s := Stats{FestivalID: id}
	var income, expenses sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM stages_areas WHERE event_id = ? AND is_active = TRUE),
			(SELECT COUNT(*) FROM performances WHERE festival_id = ?),
			(SELECT COUNT(*) FROM artists WHERE festival_id = ?),
			(SELECT COUNT(*) FROM volunteers WHERE festival_id = ?),
			(SELECT COUNT(*) FROM vendors WHERE festival_id = ?),
			(SELECT SUM(amount) FROM budget_items WHERE festival_id = ? AND type = 'income'),
			(SELECT SUM(amount) FROM budget_items WHERE festival_id = ? AND type = 'expense')`,
		id, id, id, id, id, id, id).
		Scan(&s.Stages, &s.Performances, &s.Artists, &s.Volunteers, &s.Vendors, &income, &expenses)
	if err != nil {
		return nil, err
	}
	s.TotalIncome = income.Float64
	s.TotalExpenses = expenses.Float64
	s.NetProfit = s.TotalIncome - s.TotalExpenses
	return &s, nil
}

// CloneOptions selects which record sets to carry into a cloned festival.
// Stages are always cloned; the rest copy contact/basic info only, with
// statuses reset to the start of their lifecycle.
type CloneOptions struct {
	Stages     bool `json:"stages"`
	Artists    bool `json:"artists"`
	Volunteers bool `json:"volunteers"`
	Vendors    bool `json:"vendors"`
	Budget     bool `json:"budget"`
}

// Clone creates a new festival from an existing one.
func (r *FestivalRepo) Clone(ctx context.Context, sourceID int64, name string, year int, startDate, endDate string, opts CloneOptions) (*model.Festival, error) {
	src, err := r.GetByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	tx, err := r.DB.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	budgetTotal := 0.0
	if opts.Budget {
		budgetTotal = src.BudgetTotal
	}
	newID, err := tx.InsertContext(ctx, `
		INSERT INTO festivals (name, year, start_date, end_date, venue_id, location, description, status, budget_total)
		VALUES (?, ?, ?, ?, ?, ?, ?, 'planning', ?)`,
		name, year, startDate, endDate, src.VenueID, src.Location, src.Description, budgetTotal)
	if err != nil {
		return nil, err
	}

	if opts.Stages {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO stages_areas (event_id, name, type, setup_time, breakdown_time, sort_order)
			SELECT ?, name, type, setup_time, breakdown_time, sort_order
			FROM stages_areas WHERE event_id = ?`, newID, sourceID)
		if err != nil {
			return nil, err
		}
	}
	if opts.Artists {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO artists (festival_id, name, genre, contact_name, contact_email, contact_phone, status, fee_status)
			SELECT ?, name, genre, contact_name, contact_email, contact_phone, 'inquired', 'quoted'
			FROM artists WHERE festival_id = ?`, newID, sourceID)
		if err != nil {
			return nil, err
		}
	}
	if opts.Volunteers {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO volunteers (festival_id, first_name, last_name, email, phone, skills, volunteer_status)
			SELECT ?, first_name, last_name, email, phone, skills, 'applied'
			FROM volunteers WHERE festival_id = ?`, newID, sourceID)
		if err != nil {
			return nil, err
		}
	}
	if opts.Vendors {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO vendors (festival_id, name, type, contact_name, contact_email, contact_phone, services_offered, status)
			SELECT ?, name, type, contact_name, contact_email, contact_phone, services_offered, 'inquiry'
			FROM vendors WHERE festival_id = ?`, newID, sourceID)
		if err != nil {
			return nil, err
		}
	}
	if opts.Budget {
		// Category skeleton only; amounts start at zero.
		_, err = tx.ExecContext(ctx, `
			INSERT INTO budget_items (festival_id, name, category, type, amount, payment_status)
			SELECT DISTINCT ?, category || ' Template', category, type, 0, 'pending'
			FROM budget_items WHERE festival_id = ?`, newID, sourceID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, newID)
}
