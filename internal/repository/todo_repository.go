package repository

import (
	"context"
	"time"

	"github.com/mbruton/festival-manager/internal/database"
	"github.com/mbruton/festival-manager/internal/todo"
)

// TodoRepo queries the five source tables behind the dashboard todo list.
// Date comparisons are done on ISO strings computed in Go, so the same SQL
// serves both backends.
type TodoRepo struct{ DB *database.DB }

func NewTodoRepo(db *database.DB) *TodoRepo { return &TodoRepo{DB: db} }

// Build assembles the prioritized todo report for a festival as of now.
func (r *TodoRepo) Build(ctx context.Context, festivalID int64, now time.Time) (*todo.Report, error) {
	today := now.UTC().Format("2006-01-02")
	weekOut := now.UTC().AddDate(0, 0, 7).Format("2006-01-02")
	monthOut := now.UTC().AddDate(0, 0, 30).Format("2006-01-02")

	overdue, err := r.payments(ctx, `
		SELECT id, name, amount, due_date FROM budget_items
		WHERE festival_id = ? AND payment_status = 'pending' AND due_date IS NOT NULL AND due_date < ?
		ORDER BY due_date ASC`, festivalID, today)
	if err != nil {
		return nil, err
	}
	upcoming, err := r.payments(ctx, `
		SELECT id, name, amount, due_date FROM budget_items
		WHERE festival_id = ? AND payment_status = 'pending' AND due_date IS NOT NULL
			AND due_date >= ? AND due_date <= ?
		ORDER BY due_date ASC`, festivalID, today, weekOut)
	if err != nil {
		return nil, err
	}
	artists, err := r.parties(ctx,
		"SELECT id, name FROM artists WHERE festival_id = ? AND status = 'inquired' ORDER BY name ASC",
		festivalID)
	if err != nil {
		return nil, err
	}
	vendors, err := r.parties(ctx,
		"SELECT id, name FROM vendors WHERE festival_id = ? AND status = 'inquiry' ORDER BY name ASC",
		festivalID)
	if err != nil {
		return nil, err
	}
	docs, err := r.documents(ctx, festivalID, monthOut)
	if err != nil {
		return nil, err
	}

	report := todo.Build(festivalID, now, overdue, upcoming, artists, vendors, docs)
	return &report, nil
}

func (r *TodoRepo) payments(ctx context.Context, q string, args ...any) ([]todo.Payment, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []todo.Payment
	for rows.Next() {
		var p todo.Payment
		if err := rows.Scan(&p.ID, &p.Name, &p.Amount, &p.DueDate); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *TodoRepo) parties(ctx context.Context, q string, args ...any) ([]todo.Party, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parties []todo.Party
	for rows.Next() {
		var p todo.Party
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		parties = append(parties, p)
	}
	return parties, rows.Err()
}

func (r *TodoRepo) documents(ctx context.Context, festivalID int64, upTo string) ([]todo.Document, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, type, expiry_date FROM documents
		WHERE festival_id = ? AND expiry_date IS NOT NULL AND expiry_date <= ? AND status != 'expired'
		ORDER BY expiry_date ASC`, festivalID, upTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []todo.Document
	for rows.Next() {
		var d todo.Document
		if err := rows.Scan(&d.ID, &d.Name, &d.Type, &d.ExpiryDate); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
