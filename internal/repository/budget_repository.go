package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mbruton/festival-manager/internal/budget"
	"github.com/mbruton/festival-manager/internal/database"
	"github.com/mbruton/festival-manager/internal/model"
)

type BudgetRepo struct{ DB *database.DB }

func NewBudgetRepo(db *database.DB) *BudgetRepo { return &BudgetRepo{DB: db} }

const budgetColumns = `id, festival_id, name, category, type, amount, planned_amount,
	payment_status, due_date, paid_date, description, created_at, updated_at`

func scanBudgetItem(row interface{ Scan(...any) error }) (*model.BudgetItem, error) {
	var b model.BudgetItem
	err := row.Scan(&b.ID, &b.FestivalID, &b.Name, &b.Category, &b.Type, &b.Amount, &b.PlannedAmount,
		&b.PaymentStatus, &b.DueDate, &b.PaidDate, &b.Description, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns budget items, all of them or one festival's.
func (r *BudgetRepo) List(ctx context.Context, festivalID *int64) ([]model.BudgetItem, error) {
	q := "SELECT " + budgetColumns + " FROM budget_items"
	args := []any{}
	if festivalID != nil {
		q += " WHERE festival_id = ?"
		args = append(args, *festivalID)
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.BudgetItem{}
	for rows.Next() {
		b, err := scanBudgetItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

func (r *BudgetRepo) GetByID(ctx context.Context, id int64) (*model.BudgetItem, error) {
	return scanBudgetItem(r.DB.QueryRowContext(ctx,
		"SELECT "+budgetColumns+" FROM budget_items WHERE id = ? LIMIT 1", id))
}

func (r *BudgetRepo) Create(ctx context.Context, b *model.BudgetItem) (*model.BudgetItem, error) {
	status := b.PaymentStatus
	if status == "" {
		status = model.PaymentPending
	}
	id, err := r.DB.InsertContext(ctx, `
		INSERT INTO budget_items (festival_id, name, category, type, amount, planned_amount, payment_status, due_date, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.FestivalID, b.Name, b.Category, b.Type, b.Amount, b.PlannedAmount, status, b.DueDate, b.Description)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update applies partial changes; nil fields keep their current value.
func (r *BudgetRepo) Update(ctx context.Context, id int64, name, category, typ *string, amount, plannedAmount *float64, paymentStatus, dueDate, paidDate, description *string) (*model.BudgetItem, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE budget_items SET
			name = COALESCE(?, name),
			category = COALESCE(?, category),
			type = COALESCE(?, type),
			amount = COALESCE(?, amount),
			planned_amount = COALESCE(?, planned_amount),
			payment_status = COALESCE(?, payment_status),
			due_date = COALESCE(?, due_date),
			paid_date = COALESCE(?, paid_date),
			description = COALESCE(?, description),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		name, category, typ, amount, plannedAmount, paymentStatus, dueDate, paidDate, description, id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *BudgetRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM budget_items WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Summary computes the headline income/expense totals for a festival.
func (r *BudgetRepo) Summary(ctx context.Context, festivalID int64) (*budget.Summary, error) {
	var income, expenses, paidIncome, paidExpenses sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			(SELECT SUM(amount) FROM budget_items WHERE festival_id = ? AND type = 'income'),
			(SELECT SUM(amount) FROM budget_items WHERE festival_id = ? AND type = 'expense'),
			(SELECT SUM(amount) FROM budget_items WHERE festival_id = ? AND type = 'income' AND payment_status = 'paid'),
			(SELECT SUM(amount) FROM budget_items WHERE festival_id = ? AND type = 'expense' AND payment_status = 'paid')`,
		festivalID, festivalID, festivalID, festivalID).
		Scan(&income, &expenses, &paidIncome, &paidExpenses)
	if err != nil {
		return nil, err
	}
	s := budget.Summary{
		FestivalID:    festivalID,
		TotalIncome:   income.Float64,
		TotalExpenses: expenses.Float64,
		PaidIncome:    paidIncome.Float64,
		PaidExpenses:  paidExpenses.Float64,
	}
	s.Finalize()
	return &s, nil
}

// Categories assembles the per-category report, folding in artist fees and
// vendor entries.
func (r *BudgetRepo) Categories(ctx context.Context, festivalID int64) (*budget.CategoryReport, error) {
	artists, err := r.artistFees(ctx, festivalID)
	if err != nil {
		return nil, err
	}
	vendors, err := r.vendorEntries(ctx, festivalID)
	if err != nil {
		return nil, err
	}
	rollups, err := r.categoryRollups(ctx, festivalID)
	if err != nil {
		return nil, err
	}
	report := budget.BuildCategories(festivalID, artists, vendors, rollups)
	return &report, nil
}

func (r *BudgetRepo) artistFees(ctx context.Context, festivalID int64) ([]budget.ArtistFee, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, fee, fee_status FROM artists WHERE festival_id = ? AND fee IS NOT NULL",
		festivalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fees []budget.ArtistFee
	for rows.Next() {
		var f budget.ArtistFee
		if err := rows.Scan(&f.ID, &f.Name, &f.Fee, &f.FeeStatus); err != nil {
			return nil, err
		}
		fees = append(fees, f)
	}
	return fees, rows.Err()
}

func (r *BudgetRepo) vendorEntries(ctx context.Context, festivalID int64) ([]budget.VendorEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, status FROM vendors WHERE festival_id = ? AND rates IS NOT NULL",
		festivalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []budget.VendorEntry
	for rows.Next() {
		var e budget.VendorEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Status); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *BudgetRepo) categoryRollups(ctx context.Context, festivalID int64) ([]budget.CategoryRollup, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT category, type, SUM(amount),
			SUM(CASE WHEN payment_status = 'paid' THEN amount ELSE 0 END),
			SUM(CASE WHEN payment_status IN ('pending', 'overdue') THEN amount ELSE 0 END)
		FROM budget_items
		WHERE festival_id = ?
		GROUP BY category, type
		ORDER BY category, type`, festivalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rollups []budget.CategoryRollup
	for rows.Next() {
		var c budget.CategoryRollup
		if err := rows.Scan(&c.Category, &c.Type, &c.Total, &c.Paid, &c.Outstanding); err != nil {
			return nil, err
		}
		rollups = append(rollups, c)
	}
	return rollups, rows.Err()
}
