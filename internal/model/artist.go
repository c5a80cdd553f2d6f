package model

// Artist mirrors the `artists` table. Name is unique within a festival.
type Artist struct {
	ID                        int64    `json:"id"`
	FestivalID                int64    `json:"festival_id"`
	Name                      string   `json:"name"`
	Genre                     *string  `json:"genre"`
	ContactName               *string  `json:"contact_name"`
	ContactEmail              *string  `json:"contact_email"`
	ContactPhone              *string  `json:"contact_phone"`
	RiderRequirements         *string  `json:"rider_requirements"`
	TechnicalRequirements     *string  `json:"technical_requirements"`
	Fee                       *float64 `json:"fee"`
	FeeStatus                 string   `json:"fee_status"`
	TravelRequirements        *string  `json:"travel_requirements"`
	AccommodationRequirements *string  `json:"accommodation_requirements"`
	Status                    string   `json:"status"`
	CreatedAt                 string   `json:"created_at"`
	UpdatedAt                 string   `json:"updated_at"`
}

// Artist booking statuses.
const (
	ArtistInquired   = "inquired"
	ArtistConfirmed  = "confirmed"
	ArtistContracted = "contracted"
	ArtistCancelled  = "cancelled"
)

func ValidArtistStatus(s string) bool {
	switch s {
	case ArtistInquired, ArtistConfirmed, ArtistContracted, ArtistCancelled:
		return true
	}
	return false
}

// Performance mirrors the `performances` table. The occupied interval of a
// performance is [start, start+duration+changeover). The joined fields are
// filled by schedule queries.
type Performance struct {
	ID                 int64   `json:"id"`
	FestivalID         int64   `json:"festival_id"`
	ArtistID           int64   `json:"artist_id"`
	StageAreaID        int64   `json:"stage_area_id"`
	PerformanceDate    string  `json:"performance_date"`
	StartTime          string  `json:"start_time"`
	DurationMinutes    int     `json:"duration_minutes"`
	ChangeoverMinutes  int     `json:"changeover_minutes"`
	SoundcheckTime     *string `json:"soundcheck_time"`
	SoundcheckDuration int     `json:"soundcheck_duration"`
	Notes              *string `json:"notes"`
	Status             string  `json:"status"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`

	ArtistName    string  `json:"artist_name,omitempty"`
	Genre         *string `json:"genre,omitempty"`
	StageAreaName string  `json:"stage_area_name,omitempty"`
	StageAreaType string  `json:"stage_area_type,omitempty"`

	// EndTime and StageFreeAt are computed for schedule responses: the set's
	// end, and the end plus changeover when the stage becomes bookable again.
	EndTime     string `json:"end_time,omitempty"`
	StageFreeAt string `json:"stage_free_at,omitempty"`
}

// Performance statuses.
const (
	PerformanceScheduled = "scheduled"
	PerformanceConfirmed = "confirmed"
	PerformanceCancelled = "cancelled"
	PerformanceCompleted = "completed"
)
