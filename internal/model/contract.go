package model

// ContractTemplate mirrors the `contract_templates` table. Content carries
// {{placeholder}} markers that are substituted when a contract is generated.
type ContractTemplate struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Content     string  `json:"content"`
	IsDefault   bool    `json:"is_default"`
	CreatedBy   *int64  `json:"created_by"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ArtistContract mirrors the `artist_contracts` table. SecureToken is the
// only credential an artist needs to view and sign; it is re-minted on
// resend, which invalidates any previously shared link.
type ArtistContract struct {
	ID            int64   `json:"id"`
	ArtistID      int64   `json:"artist_id"`
	TemplateID    *int64  `json:"template_id"`
	Content       string  `json:"content"`
	SecureToken   string  `json:"secure_token"`
	Deadline      *string `json:"deadline"`
	Status        string  `json:"status"`
	SentAt        *string `json:"sent_at"`
	ViewedAt      *string `json:"viewed_at"`
	SignedAt      *string `json:"signed_at"`
	SignatureData *string `json:"signature_data"`
	SignatureName *string `json:"signature_name"`
	CreatedBy     *int64  `json:"created_by"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`

	ArtistName   string  `json:"artist_name,omitempty"`
	FestivalID   int64   `json:"festival_id,omitempty"`
	TemplateName *string `json:"template_name,omitempty"`
}

// Contract lifecycle statuses. Only draft -> sent -> viewed -> signed moves
// forward; void is terminal and reachable from any non-signed state.
const (
	ContractDraft  = "draft"
	ContractSent   = "sent"
	ContractViewed = "viewed"
	ContractSigned = "signed"
	ContractVoid   = "void"
)

// ContractVersion mirrors the `contract_versions` table. A row is appended
// each time a sent contract is amended, preserving the superseded content.
type ContractVersion struct {
	ID            int64  `json:"id"`
	ContractID    int64  `json:"contract_id"`
	VersionNumber int    `json:"version_number"`
	Content       string `json:"content"`
	CreatedBy     *int64 `json:"created_by"`
	CreatedAt     string `json:"created_at"`
}
