package model

// BudgetItem mirrors the `budget_items` table.
type BudgetItem struct {
	ID            int64    `json:"id"`
	FestivalID    int64    `json:"festival_id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Type          string   `json:"type"`
	Amount        float64  `json:"amount"`
	PlannedAmount *float64 `json:"planned_amount"`
	PaymentStatus string   `json:"payment_status"`
	DueDate       *string  `json:"due_date"`
	PaidDate      *string  `json:"paid_date"`
	Description   *string  `json:"description"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// Budget item types and payment statuses.
const (
	BudgetIncome  = "income"
	BudgetExpense = "expense"

	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentOverdue   = "overdue"
	PaymentCancelled = "cancelled"
)

// Document mirrors the `documents` table.
type Document struct {
	ID         int64   `json:"id"`
	FestivalID int64   `json:"festival_id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	FilePath   *string `json:"file_path"`
	FileSize   *int64  `json:"file_size"`
	Status     string  `json:"status"`
	Version    int     `json:"version"`
	ExpiryDate *string `json:"expiry_date"`
	UploadedBy *int64  `json:"uploaded_by"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}
