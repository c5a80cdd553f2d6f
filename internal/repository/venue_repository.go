package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mbruton/festival-manager/internal/database"
	"github.com/mbruton/festival-manager/internal/model"
)

type VenueRepo struct{ DB *database.DB }

func NewVenueRepo(db *database.DB) *VenueRepo { return &VenueRepo{DB: db} }

const venueColumns = "id, name, address, city, postcode, country, capacity, description, facilities, contact_name, contact_email, contact_phone, is_active, created_at, updated_at"

func scanVenue(row interface{ Scan(...any) error }) (*model.Venue, error) {
	var v model.Venue
	err := row.Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.Postcode, &v.Country, &v.Capacity,
		&v.Description, &v.Facilities, &v.ContactName, &v.ContactEmail, &v.ContactPhone,
		&v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns active venues; includeInactive adds soft-deleted ones.
func (r *VenueRepo) List(ctx context.Context, includeInactive bool) ([]model.Venue, error) {
	q := "SELECT " + venueColumns + " FROM venues"
	if !includeInactive {
		q += " WHERE is_active = TRUE"
	}
	q += " ORDER BY name ASC"

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := []model.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, *v)
	}
	return venues, rows.Err()
}

func (r *VenueRepo) GetByID(ctx context.Context, id int64) (*model.Venue, error) {
	return scanVenue(r.DB.QueryRowContext(ctx,
		"SELECT "+venueColumns+" FROM venues WHERE id = ? LIMIT 1", id))
}

func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) (*model.Venue, error) {
	country := v.Country
	if country == "" {
		country = "United Kingdom"
	}
	id, err := r.DB.InsertContext(ctx, `
		INSERT INTO venues (name, address, city, postcode, country, capacity, description, facilities, contact_name, contact_email, contact_phone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.Name, v.Address, v.City, v.Postcode, country, v.Capacity, v.Description, v.Facilities,
		v.ContactName, v.ContactEmail, v.ContactPhone)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *VenueRepo) Update(ctx context.Context, id int64, v *model.Venue) (*model.Venue, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE venues SET
			name = ?, address = ?, city = ?, postcode = ?, country = ?, capacity = ?,
			description = ?, facilities = ?, contact_name = ?, contact_email = ?, contact_phone = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		v.Name, v.Address, v.City, v.Postcode, v.Country, v.Capacity,
		v.Description, v.Facilities, v.ContactName, v.ContactEmail, v.ContactPhone, id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the venue outright when no festival has ever referenced
// it; otherwise it soft-deletes so historical festivals keep their venue.
// Returns true when the delete was a soft delete.
func (r *VenueRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return false, err
	}
	var refs int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM festivals WHERE venue_id = ?", id).Scan(&refs)
	if err != nil {
		return false, err
	}
	if refs > 0 {
		_, err = r.DB.ExecContext(ctx,
			"UPDATE venues SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = ?", id)
		return true, err
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM venues WHERE id = ?", id)
	return false, err
}
