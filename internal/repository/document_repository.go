package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mbruton/festival-manager/internal/database"
	"github.com/mbruton/festival-manager/internal/model"
)

type DocumentRepo struct{ DB *database.DB }

func NewDocumentRepo(db *database.DB) *DocumentRepo { return &DocumentRepo{DB: db} }

const documentColumns = `id, festival_id, name, type, file_path, file_size, status, version,
	expiry_date, uploaded_by, created_at, updated_at`

func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var d model.Document
	err := row.Scan(&d.ID, &d.FestivalID, &d.Name, &d.Type, &d.FilePath, &d.FileSize,
		&d.Status, &d.Version, &d.ExpiryDate, &d.UploadedBy, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepo) ListByFestival(ctx context.Context, festivalID int64) ([]model.Document, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE festival_id = ? ORDER BY created_at DESC",
		festivalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []model.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*model.Document, error) {
	return scanDocument(r.DB.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE id = ? LIMIT 1", id))
}

func (r *DocumentRepo) Create(ctx context.Context, d *model.Document) (*model.Document, error) {
	status := d.Status
	if status == "" {
		status = "draft"
	}
	version := d.Version
	if version == 0 {
		version = 1
	}
	id, err := r.DB.InsertContext(ctx, `
		INSERT INTO documents (festival_id, name, type, file_path, file_size, status, version, expiry_date, uploaded_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.FestivalID, d.Name, d.Type, d.FilePath, d.FileSize, status, version, d.ExpiryDate, d.UploadedBy)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *DocumentRepo) Update(ctx context.Context, id int64, d *model.Document) (*model.Document, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE documents SET
			name = ?, type = ?, file_path = ?, file_size = ?, status = ?, version = ?,
			expiry_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		d.Name, d.Type, d.FilePath, d.FileSize, d.Status, d.Version, d.ExpiryDate, id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *DocumentRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
