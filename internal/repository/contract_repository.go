package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mbruton/festival-manager/internal/database"
	"github.com/mbruton/festival-manager/internal/model"
	"github.com/mbruton/festival-manager/internal/utils"
)

// ContractRepo manages contract templates, artist contracts and their
// version history. Status changes that mirror onto the artist row run in a
// transaction so contract and artist cannot disagree.
type ContractRepo struct{ DB *database.DB }

func NewContractRepo(db *database.DB) *ContractRepo { return &ContractRepo{DB: db} }

// --- templates ---

const templateColumns = "id, name, description, content, is_default, created_by, created_at, updated_at"

func scanTemplate(row interface{ Scan(...any) error }) (*model.ContractTemplate, error) {
	var t model.ContractTemplate
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Content, &t.IsDefault, &t.CreatedBy,
		&t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ContractRepo) ListTemplates(ctx context.Context) ([]model.ContractTemplate, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+templateColumns+" FROM contract_templates ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []model.ContractTemplate{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

func (r *ContractRepo) GetTemplate(ctx context.Context, id int64) (*model.ContractTemplate, error) {
	return scanTemplate(r.DB.QueryRowContext(ctx,
		"SELECT "+templateColumns+" FROM contract_templates WHERE id = ? LIMIT 1", id))
}

func (r *ContractRepo) CreateTemplate(ctx context.Context, name string, description *string, content string, createdBy *int64) (*model.ContractTemplate, error) {
	id, err := r.DB.InsertContext(ctx, `
		INSERT INTO contract_templates (name, description, content, created_by)
		VALUES (?, ?, ?, ?)`,
		name, description, content, createdBy)
	if err != nil {
		return nil, err
	}
	return r.GetTemplate(ctx, id)
}

func (r *ContractRepo) UpdateTemplate(ctx context.Context, id int64, name string, description *string, content string) (*model.ContractTemplate, error) {
	if _, err := r.GetTemplate(ctx, id); err != nil {
		return nil, err
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE contract_templates SET name = ?, description = ?, content = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, name, description, content, id)
	if err != nil {
		return nil, err
	}
	return r.GetTemplate(ctx, id)
}

func (r *ContractRepo) DeleteTemplate(ctx context.Context, id int64) error {
	var inUse int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM artist_contracts WHERE template_id = ?", id).Scan(&inUse)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrInUse
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM contract_templates WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// --- contracts ---

const contractColumns = `ac.id, ac.artist_id, ac.template_id, ac.content, ac.secure_token, ac.deadline,
	ac.status, ac.sent_at, ac.viewed_at, ac.signed_at, ac.signature_data, ac.signature_name,
	ac.created_by, ac.created_at, ac.updated_at, a.name, a.festival_id, ct.name`

const contractJoins = `
	FROM artist_contracts ac
	JOIN artists a ON ac.artist_id = a.id
	LEFT JOIN contract_templates ct ON ac.template_id = ct.id`

func scanContract(row interface{ Scan(...any) error }) (*model.ArtistContract, error) {
	var c model.ArtistContract
	err := row.Scan(&c.ID, &c.ArtistID, &c.TemplateID, &c.Content, &c.SecureToken, &c.Deadline,
		&c.Status, &c.SentAt, &c.ViewedAt, &c.SignedAt, &c.SignatureData, &c.SignatureName,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt, &c.ArtistName, &c.FestivalID, &c.TemplateName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContractRepo) ListByArtist(ctx context.Context, artistID int64) ([]model.ArtistContract, error) {
	return r.list(ctx, "WHERE ac.artist_id = ?", artistID)
}

func (r *ContractRepo) ListByFestival(ctx context.Context, festivalID int64) ([]model.ArtistContract, error) {
	return r.list(ctx, "WHERE a.festival_id = ?", festivalID)
}

func (r *ContractRepo) list(ctx context.Context, where string, arg any) ([]model.ArtistContract, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+contractColumns+contractJoins+" "+where+" ORDER BY ac.created_at DESC", arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contracts := []model.ArtistContract{}
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, *c)
	}
	return contracts, rows.Err()
}

func (r *ContractRepo) GetByID(ctx context.Context, id int64) (*model.ArtistContract, error) {
	return scanContract(r.DB.QueryRowContext(ctx,
		"SELECT "+contractColumns+contractJoins+" WHERE ac.id = ? LIMIT 1", id))
}

// GetByToken resolves a public signing link. Void contracts are treated as
// missing so a revoked link stops working.
func (r *ContractRepo) GetByToken(ctx context.Context, token string) (*model.ArtistContract, error) {
	return scanContract(r.DB.QueryRowContext(ctx,
		"SELECT "+contractColumns+contractJoins+" WHERE ac.secure_token = ? AND ac.status != 'void' LIMIT 1",
		token))
}

// Create instantiates a contract from a template or custom text, mints its
// secure token and records version 1.
func (r *ContractRepo) Create(ctx context.Context, artistID int64, templateID *int64, customContent *string, deadline *string, createdBy *int64) (*model.ArtistContract, error) {
	content := ""
	if customContent != nil && *customContent != "" {
		content = *customContent
	} else if templateID != nil {
		tpl, err := r.GetTemplate(ctx, *templateID)
		if err != nil {
			return nil, err
		}
		content = tpl.Content
	} else {
		return nil, errors.New("template_id or custom_content required")
	}

	token, err := utils.NewSecureToken()
	if err != nil {
		return nil, err
	}

	tx, err := r.DB.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	id, err := tx.InsertContext(ctx, `
		INSERT INTO artist_contracts (artist_id, template_id, content, secure_token, deadline, status, created_by)
		VALUES (?, ?, ?, ?, ?, 'draft', ?)`,
		artistID, templateID, content, token, deadline, createdBy)
	if err != nil {
		return nil, err
	}
	_, err = tx.InsertContext(ctx, `
		INSERT INTO contract_versions (contract_id, version_number, content, created_by)
		VALUES (?, 1, ?, ?)`, id, content, createdBy)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Send moves a draft to sent and stamps sent_at.
func (r *ContractRepo) Send(ctx context.Context, id int64) (*model.ArtistContract, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != model.ContractDraft {
		return nil, ErrBadTransition
	}
	_, err = r.DB.ExecContext(ctx, `
		UPDATE artist_contracts
		SET status = 'sent', sent_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Resend re-mints the secure token, so the previously shared link stops
// resolving, and resets the contract to sent.
func (r *ContractRepo) Resend(ctx context.Context, id int64) (*model.ArtistContract, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status == model.ContractSigned || c.Status == model.ContractVoid {
		return nil, ErrBadTransition
	}
	token, err := utils.NewSecureToken()
	if err != nil {
		return nil, err
	}
	_, err = r.DB.ExecContext(ctx, `
		UPDATE artist_contracts
		SET secure_token = ?, status = 'sent', sent_at = CURRENT_TIMESTAMP, viewed_at = NULL,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, token, id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// MarkViewed advances sent to viewed on first public open. Any other
// status is left alone.
func (r *ContractRepo) MarkViewed(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE artist_contracts
		SET status = 'viewed', viewed_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = 'sent'`, id)
	return err
}

// DeadlinePassed reports whether a contract's signing deadline lies before
// today. Signing is still allowed on the deadline day itself.
func DeadlinePassed(deadline *string, now time.Time) bool {
	if deadline == nil || *deadline == "" {
		return false
	}
	d := *deadline
	if len(d) > 10 {
		d = d[:10]
	}
	return now.UTC().Format("2006-01-02") > d
}

// Sign records the signature and transitions contract to signed and artist
// to contracted, atomically.
func (r *ContractRepo) Sign(ctx context.Context, token, signatureData string, signatureName *string, now time.Time) (*model.ArtistContract, error) {
	c, err := r.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if c.Status != model.ContractSent && c.Status != model.ContractViewed {
		return nil, ErrBadTransition
	}
	if DeadlinePassed(c.Deadline, now) {
		return nil, ErrDeadlinePassed
	}

	tx, err := r.DB.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE artist_contracts
		SET status = 'signed', signed_at = CURRENT_TIMESTAMP, signature_data = ?, signature_name = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, signatureData, signatureName, c.ID)
	if err != nil {
		return nil, err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE artists SET status = 'contracted', updated_at = CURRENT_TIMESTAMP WHERE id = ?", c.ArtistID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, c.ID)
}

// Amend replaces content and deadline, resets the contract to draft and
// appends the next version row.
func (r *ContractRepo) Amend(ctx context.Context, id int64, content string, deadline *string, createdBy *int64) (*model.ArtistContract, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status == model.ContractSigned || c.Status == model.ContractVoid {
		return nil, ErrBadTransition
	}

	tx, err := r.DB.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var version int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(version_number), 0) + 1 FROM contract_versions WHERE contract_id = ?", id).Scan(&version)
	if err != nil {
		return nil, err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE artist_contracts
		SET content = ?, deadline = ?, status = 'draft', sent_at = NULL, viewed_at = NULL,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, content, deadline, id)
	if err != nil {
		return nil, err
	}
	_, err = tx.InsertContext(ctx, `
		INSERT INTO contract_versions (contract_id, version_number, content, created_by)
		VALUES (?, ?, ?, ?)`, id, version, content, createdBy)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Void cancels a sent, viewed or signed contract and reverts the artist to
// confirmed. Drafts are deleted, not voided.
func (r *ContractRepo) Void(ctx context.Context, id int64) (*model.ArtistContract, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status == model.ContractVoid || c.Status == model.ContractDraft {
		return nil, ErrBadTransition
	}

	tx, err := r.DB.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"UPDATE artist_contracts SET status = 'void', updated_at = CURRENT_TIMESTAMP WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE artists SET status = 'confirmed', updated_at = CURRENT_TIMESTAMP WHERE id = ?", c.ArtistID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a contract and its version history, reverting the artist
// to confirmed.
func (r *ContractRepo) Delete(ctx context.Context, id int64) error {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	tx, err := r.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM contract_versions WHERE contract_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM artist_contracts WHERE id = ?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE artists SET status = 'confirmed', updated_at = CURRENT_TIMESTAMP WHERE id = ?", c.ArtistID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Versions lists a contract's history, newest first.
func (r *ContractRepo) Versions(ctx context.Context, contractID int64) ([]model.ContractVersion, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, contract_id, version_number, content, created_by, created_at
		FROM contract_versions WHERE contract_id = ?
		ORDER BY version_number DESC`, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := []model.ContractVersion{}
	for rows.Next() {
		var v model.ContractVersion
		if err := rows.Scan(&v.ID, &v.ContractID, &v.VersionNumber, &v.Content, &v.CreatedBy, &v.CreatedAt); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
