package repository

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/mbruton/festival-manager/internal/database"
	"github.com/mbruton/festival-manager/internal/model"
	"github.com/mbruton/festival-manager/internal/schedule"
)

// PerformanceRepo guards schedule writes with a per-stage mutex so two
// concurrent bookings for the same stage serialize their check-then-insert
// and cannot both pass the conflict check.
type PerformanceRepo struct {
	DB *database.DB

	mu     sync.Mutex
	stages map[int64]*sync.Mutex
}

func NewPerformanceRepo(db *database.DB) *PerformanceRepo {
	return &PerformanceRepo{DB: db, stages: make(map[int64]*sync.Mutex)}
}

func (r *PerformanceRepo) stageLock(stageID int64) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.stages[stageID]
	if !ok {
		l = &sync.Mutex{}
		r.stages[stageID] = l
	}
	return l
}

const performanceColumns = `p.id, p.festival_id, p.artist_id, p.stage_area_id, p.performance_date,
	p.start_time, p.duration_minutes, p.changeover_minutes, p.soundcheck_time, p.soundcheck_duration,
	p.notes, p.status, p.created_at, p.updated_at,
	a.name, a.genre, sa.name, sa.type`

const performanceJoins = `
	FROM performances p
	JOIN artists a ON p.artist_id = a.id
	JOIN stages_areas sa ON p.stage_area_id = sa.id`

func scanPerformance(row interface{ Scan(...any) error }) (*model.Performance, error) {
	var p model.Performance
	err := row.Scan(&p.ID, &p.FestivalID, &p.ArtistID, &p.StageAreaID, &p.PerformanceDate,
		&p.StartTime, &p.DurationMinutes, &p.ChangeoverMinutes, &p.SoundcheckTime, &p.SoundcheckDuration,
		&p.Notes, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		&p.ArtistName, &p.Genre, &p.StageAreaName, &p.StageAreaType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns a festival's schedule, optionally narrowed to one date
// and/or stage, ordered chronologically.
func (r *PerformanceRepo) List(ctx context.Context, festivalID int64, date *string, stageID *int64) ([]model.Performance, error) {
	q := "SELECT " + performanceColumns + performanceJoins + " WHERE p.festival_id = ?"
	args := []any{festivalID}
	if date != nil {
		q += " AND p.performance_date = ?"
		args = append(args, *date)
	}
	if stageID != nil {
		q += " AND p.stage_area_id = ?"
		args = append(args, *stageID)
	}
	q += " ORDER BY p.performance_date ASC, p.start_time ASC"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	performances := []model.Performance{}
	for rows.Next() {
		p, err := scanPerformance(rows)
		if err != nil {
			return nil, err
		}
		performances = append(performances, *p)
	}
	return performances, rows.Err()
}

func (r *PerformanceRepo) GetByID(ctx context.Context, id int64) (*model.Performance, error) {
	return scanPerformance(r.DB.QueryRowContext(ctx,
		"SELECT "+performanceColumns+performanceJoins+" WHERE p.id = ? LIMIT 1", id))
}

// conflicts returns the non-cancelled performances on the same stage and
// date whose occupied interval intersects the proposed slot. excludeID
// skips the performance being updated.
func conflicts(ctx context.Context, ex database.Executor, stageID int64, date string, slot schedule.Slot, excludeID int64) ([]model.Performance, error) {
	rows, err := ex.QueryContext(ctx, `
		SELECT `+performanceColumns+performanceJoins+`
		WHERE p.stage_area_id = ? AND p.performance_date = ? AND p.status != 'cancelled' AND p.id != ?
		ORDER BY p.start_time ASC`,
		stageID, date, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []model.Performance
	for rows.Next() {
		p, err := scanPerformance(rows)
		if err != nil {
			return nil, err
		}
		existing, err := schedule.NewSlot(p.StartTime, p.DurationMinutes, p.ChangeoverMinutes)
		if err != nil {
			return nil, err
		}
		if slot.Overlaps(existing) {
			found = append(found, *p)
		}
	}
	return found, rows.Err()
}

// Create books a performance after checking for overlaps. The check and
// insert run inside a transaction under the stage lock.
func (r *PerformanceRepo) Create(ctx context.Context, p *model.Performance) (*model.Performance, error) {
	if p.ChangeoverMinutes == 0 {
		p.ChangeoverMinutes = schedule.DefaultChangeoverMinutes
	}
	slot, err := schedule.NewSlot(p.StartTime, p.DurationMinutes, p.ChangeoverMinutes)
	if err != nil {
		return nil, err
	}

	lock := r.stageLock(p.StageAreaID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := r.DB.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	found, err := conflicts(ctx, tx, p.StageAreaID, p.PerformanceDate, slot, 0)
	if err != nil {
		return nil, err
	}
	if len(found) > 0 {
		return nil, &ConflictError{Conflicts: found}
	}

	status := p.Status
	if status == "" {
		status = model.PerformanceScheduled
	}
	soundcheckDur := p.SoundcheckDuration
	if soundcheckDur == 0 {
		soundcheckDur = 30
	}
	id, err := tx.InsertContext(ctx, `
		INSERT INTO performances (festival_id, artist_id, stage_area_id, performance_date, start_time,
			duration_minutes, changeover_minutes, soundcheck_time, soundcheck_duration, notes, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.FestivalID, p.ArtistID, p.StageAreaID, p.PerformanceDate, p.StartTime,
		p.DurationMinutes, p.ChangeoverMinutes, p.SoundcheckTime, soundcheckDur, p.Notes, status)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// PerformancePatch is a partial reschedule; nil fields keep their stored
// value.
type PerformancePatch struct {
	ArtistID           *int64
	StageAreaID        *int64
	PerformanceDate    *string
	StartTime          *string
	DurationMinutes    *int
	ChangeoverMinutes  *int
	SoundcheckTime     *string
	SoundcheckDuration *int
	Notes              *string
	Status             *string
}

func (p *PerformancePatch) applyTo(current *model.Performance) model.Performance {
	merged := *current
	if p.ArtistID != nil {
		merged.ArtistID = *p.ArtistID
	}
	if p.StageAreaID != nil {
		merged.StageAreaID = *p.StageAreaID
	}
	if p.PerformanceDate != nil {
		merged.PerformanceDate = *p.PerformanceDate
	}
	if p.StartTime != nil {
		merged.StartTime = *p.StartTime
	}
	if p.DurationMinutes != nil {
		merged.DurationMinutes = *p.DurationMinutes
	}
	if p.ChangeoverMinutes != nil {
		merged.ChangeoverMinutes = *p.ChangeoverMinutes
	}
	if p.SoundcheckTime != nil {
		merged.SoundcheckTime = p.SoundcheckTime
	}
	if p.SoundcheckDuration != nil {
		merged.SoundcheckDuration = *p.SoundcheckDuration
	}
	if p.Notes != nil {
		merged.Notes = p.Notes
	}
	if p.Status != nil {
		merged.Status = *p.Status
	}
	return merged
}

// Update reschedules a performance. Fields absent from the patch keep their
// stored values, so a partial update cannot erase the changeover buffer or
// the status. The conflict check runs against the merged row, excluding the
// performance itself.
func (r *PerformanceRepo) Update(ctx context.Context, id int64, patch *PerformancePatch) (*model.Performance, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := patch.applyTo(current)
	slot, err := schedule.NewSlot(merged.StartTime, merged.DurationMinutes, merged.ChangeoverMinutes)
	if err != nil {
		return nil, err
	}

	lock := r.stageLock(merged.StageAreaID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := r.DB.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if merged.Status != model.PerformanceCancelled {
		found, err := conflicts(ctx, tx, merged.StageAreaID, merged.PerformanceDate, slot, id)
		if err != nil {
			return nil, err
		}
		if len(found) > 0 {
			return nil, &ConflictError{Conflicts: found}
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE performances SET
			artist_id = ?, stage_area_id = ?, performance_date = ?, start_time = ?,
			duration_minutes = ?, changeover_minutes = ?, soundcheck_time = ?, soundcheck_duration = ?,
			notes = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		merged.ArtistID, merged.StageAreaID, merged.PerformanceDate, merged.StartTime,
		merged.DurationMinutes, merged.ChangeoverMinutes, merged.SoundcheckTime, merged.SoundcheckDuration,
		merged.Notes, merged.Status, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *PerformanceRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM performances WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
