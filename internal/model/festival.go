package model

// Festival mirrors the `festivals` table. VenueName is populated by list
// queries that join the venues table and is omitted otherwise.
type Festival struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Year            int     `json:"year"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	VenueID         *int64  `json:"venue_id"`
	Location        *string `json:"location"`
	Description     *string `json:"description"`
	Status          string  `json:"status"`
	BudgetTotal     float64 `json:"budget_total"`
	BudgetAllocated float64 `json:"budget_allocated"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
	VenueName       *string `json:"venue_name,omitempty"`
}

// Festival statuses.
const (
	FestivalPlanning  = "planning"
	FestivalActive    = "active"
	FestivalCompleted = "completed"
	FestivalCancelled = "cancelled"
)

// Venue mirrors the `venues` table. Venues are soft-deleted via IsActive
// once they have ever been linked to a festival.
type Venue struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	Postcode     *string `json:"postcode"`
	Country      string  `json:"country"`
	Capacity     *int64  `json:"capacity"`
	Description  *string `json:"description"`
	Facilities   *string `json:"facilities"`
	ContactName  *string `json:"contact_name"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// StageArea mirrors the `stages_areas` table. A stage/area belongs to
// exactly one festival (event_id) and its sort order drives schedule
// display.
type StageArea struct {
	ID            int64  `json:"id"`
	EventID       int64  `json:"event_id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	SetupTime     int    `json:"setup_time"`
	BreakdownTime int    `json:"breakdown_time"`
	SortOrder     int    `json:"sort_order"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at"`
}
