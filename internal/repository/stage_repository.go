package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mbruton/festival-manager/internal/database"
	"github.com/mbruton/festival-manager/internal/model"
)

type StageRepo struct{ DB *database.DB }

func NewStageRepo(db *database.DB) *StageRepo { return &StageRepo{DB: db} }

const stageColumns = "id, event_id, name, type, setup_time, breakdown_time, sort_order, is_active, created_at"

func scanStage(row interface{ Scan(...any) error }) (*model.StageArea, error) {
	var s model.StageArea
	err := row.Scan(&s.ID, &s.EventID, &s.Name, &s.Type, &s.SetupTime, &s.BreakdownTime,
		&s.SortOrder, &s.IsActive, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByFestival returns a festival's active stages in display order.
func (r *StageRepo) ListByFestival(ctx context.Context, festivalID int64) ([]model.StageArea, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+stageColumns+` FROM stages_areas
		WHERE event_id = ? AND is_active = TRUE
		ORDER BY sort_order ASC, name ASC`, festivalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stages := []model.StageArea{}
	for rows.Next() {
		s, err := scanStage(rows)
		if err != nil {
			return nil, err
		}
		stages = append(stages, *s)
	}
	return stages, rows.Err()
}

func (r *StageRepo) GetByID(ctx context.Context, id int64) (*model.StageArea, error) {
	return scanStage(r.DB.QueryRowContext(ctx,
		"SELECT "+stageColumns+" FROM stages_areas WHERE id = ? LIMIT 1", id))
}

// Create appends the stage at the end of the festival's display order.
func (r *StageRepo) Create(ctx context.Context, s *model.StageArea) (*model.StageArea, error) {
	var next sql.NullInt64
	err := r.DB.QueryRowContext(ctx,
		"SELECT MAX(sort_order) + 1 FROM stages_areas WHERE event_id = ?", s.EventID).Scan(&next)
	if err != nil {
		return nil, err
	}
	id, err := r.DB.InsertContext(ctx, `
		INSERT INTO stages_areas (event_id, name, type, setup_time, breakdown_time, sort_order)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.EventID, s.Name, s.Type, s.SetupTime, s.BreakdownTime, next.Int64)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *StageRepo) Update(ctx context.Context, id int64, s *model.StageArea) (*model.StageArea, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE stages_areas SET name = ?, type = ?, setup_time = ?, breakdown_time = ?
		WHERE id = ?`,
		s.Name, s.Type, s.SetupTime, s.BreakdownTime, id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Reorder rewrites sort_order to match the given id sequence, atomically so
// a failure partway cannot scramble the display order.
func (r *StageRepo) Reorder(ctx context.Context, festivalID int64, orderedIDs []int64) error {
	tx, err := r.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for position, stageID := range orderedIDs {
		res, err := tx.ExecContext(ctx,
			"UPDATE stages_areas SET sort_order = ? WHERE id = ? AND event_id = ?",
			position, stageID, festivalID)
		if err != nil {
			return err
		}
		if err := requireRow(res); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete soft-deletes a stage. It is refused while any non-cancelled
// performance is booked on it.
func (r *StageRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	var booked int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM performances WHERE stage_area_id = ? AND status != 'cancelled'", id).Scan(&booked)
	if err != nil {
		return err
	}
	if booked > 0 {
		return ErrInUse
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE stages_areas SET is_active = FALSE WHERE id = ?", id)
	return err
}
