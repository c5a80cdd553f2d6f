package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mbruton/festival-manager/internal/database"
	"github.com/mbruton/festival-manager/internal/model"
)

type ArtistRepo struct{ DB *database.DB }

func NewArtistRepo(db *database.DB) *ArtistRepo { return &ArtistRepo{DB: db} }

const artistColumns = `id, festival_id, name, genre, contact_name, contact_email, contact_phone,
	rider_requirements, technical_requirements, fee, fee_status, travel_requirements,
	accommodation_requirements, status, created_at, updated_at`

func scanArtist(row interface{ Scan(...any) error }) (*model.Artist, error) {
	var a model.Artist
	err := row.Scan(&a.ID, &a.FestivalID, &a.Name, &a.Genre, &a.ContactName, &a.ContactEmail,
		&a.ContactPhone, &a.RiderRequirements, &a.TechnicalRequirements, &a.Fee, &a.FeeStatus,
		&a.TravelRequirements, &a.AccommodationRequirements, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ArtistRepo) ListByFestival(ctx context.Context, festivalID int64) ([]model.Artist, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+artistColumns+" FROM artists WHERE festival_id = ? ORDER BY name ASC", festivalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	artists := []model.Artist{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		artists = append(artists, *a)
	}
	return artists, rows.Err()
}

func (r *ArtistRepo) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
	return scanArtist(r.DB.QueryRowContext(ctx,
		"SELECT "+artistColumns+" FROM artists WHERE id = ? LIMIT 1", id))
}

// Create inserts an artist. Names are unique within a festival.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) (*model.Artist, error) {
	dup, err := r.nameTaken(ctx, a.FestivalID, a.Name, 0)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicate
	}
	status := a.Status
	if status == "" {
		status = model.ArtistInquired
	}
	feeStatus := a.FeeStatus
	if feeStatus == "" {
		feeStatus = "quoted"
	}
	id, err := r.DB.InsertContext(ctx, `
		INSERT INTO artists (festival_id, name, genre, contact_name, contact_email, contact_phone,
			rider_requirements, technical_requirements, fee, fee_status, travel_requirements,
			accommodation_requirements, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.FestivalID, a.Name, a.Genre, a.ContactName, a.ContactEmail, a.ContactPhone,
		a.RiderRequirements, a.TechnicalRequirements, a.Fee, feeStatus, a.TravelRequirements,
		a.AccommodationRequirements, status)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ArtistRepo) Update(ctx context.Context, id int64, a *model.Artist) (*model.Artist, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dup, err := r.nameTaken(ctx, current.FestivalID, a.Name, id)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicate
	}
	_, err = r.DB.ExecContext(ctx, `
		UPDATE artists SET
			name = ?, genre = ?, contact_name = ?, contact_email = ?, contact_phone = ?,
			rider_requirements = ?, technical_requirements = ?, fee = ?, fee_status = ?,
			travel_requirements = ?, accommodation_requirements = ?, status = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		a.Name, a.Genre, a.ContactName, a.ContactEmail, a.ContactPhone,
		a.RiderRequirements, a.TechnicalRequirements, a.Fee, a.FeeStatus,
		a.TravelRequirements, a.AccommodationRequirements, a.Status, id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// SetStatus updates only the booking status; used by the contract
// lifecycle to mirror signing and voiding onto the artist.
func (r *ArtistRepo) SetStatus(ctx context.Context, ex database.Executor, id int64, status string) error {
	res, err := ex.ExecContext(ctx,
		"UPDATE artists SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes an artist unless a non-cancelled performance still
// references it. Contracts and their versions go with the artist.
func (r *ArtistRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	var booked int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM performances WHERE artist_id = ? AND status != 'cancelled'", id).Scan(&booked)
	if err != nil {
		return err
	}
	if booked > 0 {
		return ErrInUse
	}

	tx, err := r.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM contract_versions WHERE contract_id IN (SELECT id FROM artist_contracts WHERE artist_id = ?)",
		"DELETE FROM artist_contracts WHERE artist_id = ?",
		"DELETE FROM performances WHERE artist_id = ?",
		"DELETE FROM artists WHERE id = ?",
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *ArtistRepo) nameTaken(ctx context.Context, festivalID int64, name string, excludeID int64) (bool, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM artists WHERE festival_id = ? AND name = ? AND id != ?",
		festivalID, name, excludeID).Scan(&n)
	return n > 0, err
}
