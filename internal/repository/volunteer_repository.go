package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mbruton/festival-manager/internal/database"
	"github.com/mbruton/festival-manager/internal/model"
)

type VolunteerRepo struct{ DB *database.DB }

func NewVolunteerRepo(db *database.DB) *VolunteerRepo { return &VolunteerRepo{DB: db} }

const volunteerColumns = `id, festival_id, first_name, last_name, email, phone, skills, t_shirt_size,
	dietary_requirements, emergency_contact_name, emergency_contact_phone, assigned_role,
	volunteer_status, notes, created_at, updated_at`

func scanVolunteer(row interface{ Scan(...any) error }) (*model.Volunteer, error) {
	var v model.Volunteer
	err := row.Scan(&v.ID, &v.FestivalID, &v.FirstName, &v.LastName, &v.Email, &v.Phone, &v.Skills,
		&v.TShirtSize, &v.DietaryRequirements, &v.EmergencyContactName, &v.EmergencyContactPhone,
		&v.AssignedRole, &v.VolunteerStatus, &v.Notes, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VolunteerRepo) ListByFestival(ctx context.Context, festivalID int64) ([]model.Volunteer, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+volunteerColumns+" FROM volunteers WHERE festival_id = ? ORDER BY last_name ASC, first_name ASC",
		festivalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	volunteers := []model.Volunteer{}
	for rows.Next() {
		v, err := scanVolunteer(rows)
		if err != nil {
			return nil, err
		}
		volunteers = append(volunteers, *v)
	}
	return volunteers, rows.Err()
}

func (r *VolunteerRepo) GetByID(ctx context.Context, id int64) (*model.Volunteer, error) {
	return scanVolunteer(r.DB.QueryRowContext(ctx,
		"SELECT "+volunteerColumns+" FROM volunteers WHERE id = ? LIMIT 1", id))
}

func (r *VolunteerRepo) Create(ctx context.Context, v *model.Volunteer) (*model.Volunteer, error) {
	status := v.VolunteerStatus
	if status == "" {
		status = "applied"
	}
	id, err := r.DB.InsertContext(ctx, `
		INSERT INTO volunteers (festival_id, first_name, last_name, email, phone, skills, t_shirt_size,
			dietary_requirements, emergency_contact_name, emergency_contact_phone, assigned_role,
			volunteer_status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.FestivalID, v.FirstName, v.LastName, v.Email, v.Phone, v.Skills, v.TShirtSize,
		v.DietaryRequirements, v.EmergencyContactName, v.EmergencyContactPhone, v.AssignedRole,
		status, v.Notes)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *VolunteerRepo) Update(ctx context.Context, id int64, v *model.Volunteer) (*model.Volunteer, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE volunteers SET
			first_name = ?, last_name = ?, email = ?, phone = ?, skills = ?, t_shirt_size = ?,
			dietary_requirements = ?, emergency_contact_name = ?, emergency_contact_phone = ?,
			assigned_role = ?, volunteer_status = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		v.FirstName, v.LastName, v.Email, v.Phone, v.Skills, v.TShirtSize,
		v.DietaryRequirements, v.EmergencyContactName, v.EmergencyContactPhone,
		v.AssignedRole, v.VolunteerStatus, v.Notes, id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *VolunteerRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM volunteers WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
