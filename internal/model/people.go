package model

// Volunteer mirrors the `volunteers` table.
type Volunteer struct {
	ID                    int64   `json:"id"`
	FestivalID            int64   `json:"festival_id"`
	FirstName             string  `json:"first_name"`
	LastName              string  `json:"last_name"`
	Email                 string  `json:"email"`
	Phone                 *string `json:"phone"`
	Skills                *string `json:"skills"`
	TShirtSize            *string `json:"t_shirt_size"`
	DietaryRequirements   *string `json:"dietary_requirements"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
	AssignedRole          *string `json:"assigned_role"`
	VolunteerStatus       string  `json:"volunteer_status"`
	Notes                 *string `json:"notes"`
	CreatedAt             string  `json:"created_at"`
	UpdatedAt             string  `json:"updated_at"`
}

// Vendor mirrors the `vendors` table. Rates is free text and deliberately
// not parsed as a number.
type Vendor struct {
	ID              int64   `json:"id"`
	FestivalID      int64   `json:"festival_id"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	ContactName     *string `json:"contact_name"`
	ContactEmail    *string `json:"contact_email"`
	ContactPhone    *string `json:"contact_phone"`
	Address         *string `json:"address"`
	ServicesOffered *string `json:"services_offered"`
	Rates           *string `json:"rates"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}
