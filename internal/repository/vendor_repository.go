package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mbruton/festival-manager/internal/database"
	"github.com/mbruton/festival-manager/internal/model"
)

type VendorRepo struct{ DB *database.DB }

func NewVendorRepo(db *database.DB) *VendorRepo { return &VendorRepo{DB: db} }

const vendorColumns = `id, festival_id, name, type, contact_name, contact_email, contact_phone,
	address, services_offered, rates, status, notes, created_at, updated_at`

func scanVendor(row interface{ Scan(...any) error }) (*model.Vendor, error) {
	var v model.Vendor
	err := row.Scan(&v.ID, &v.FestivalID, &v.Name, &v.Type, &v.ContactName, &v.ContactEmail,
		&v.ContactPhone, &v.Address, &v.ServicesOffered, &v.Rates, &v.Status, &v.Notes,
		&v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepo) ListByFestival(ctx context.Context, festivalID int64) ([]model.Vendor, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+vendorColumns+" FROM vendors WHERE festival_id = ? ORDER BY name ASC", festivalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vendors := []model.Vendor{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, *v)
	}
	return vendors, rows.Err()
}

func (r *VendorRepo) GetByID(ctx context.Context, id int64) (*model.Vendor, error) {
	return scanVendor(r.DB.QueryRowContext(ctx,
		"SELECT "+vendorColumns+" FROM vendors WHERE id = ? LIMIT 1", id))
}

func (r *VendorRepo) Create(ctx context.Context, v *model.Vendor) (*model.Vendor, error) {
	status := v.Status
	if status == "" {
		status = "inquiry"
	}
	id, err := r.DB.InsertContext(ctx, `
		INSERT INTO vendors (festival_id, name, type, contact_name, contact_email, contact_phone,
			address, services_offered, rates, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.FestivalID, v.Name, v.Type, v.ContactName, v.ContactEmail, v.ContactPhone,
		v.Address, v.ServicesOffered, v.Rates, status, v.Notes)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *VendorRepo) Update(ctx context.Context, id int64, v *model.Vendor) (*model.Vendor, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE vendors SET
			name = ?, type = ?, contact_name = ?, contact_email = ?, contact_phone = ?,
			address = ?, services_offered = ?, rates = ?, status = ?, notes = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		v.Name, v.Type, v.ContactName, v.ContactEmail, v.ContactPhone,
		v.Address, v.ServicesOffered, v.Rates, v.Status, v.Notes, id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *VendorRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM vendors WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
