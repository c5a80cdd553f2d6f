package contractdoc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strp(s string) *string { return &s }

func TestFillSubstitutesAllTokens(t *testing.T) {
	fee := 2500.0
	d := Data{
		FestivalName:          "Harvest Moon Festival",
		ArtistName:            "The Night Owls",
		ArtistContact:         strp("Sam Reed"),
		Fee:                   &fee,
		TechnicalRequirements: strp("4 DI boxes"),
		RiderRequirements:     strp("Vegetarian catering"),
		PerformanceDate:       strp("2026-08-15"),
		PerformanceTime:       strp("21:00"),
		PerformanceVenue:      strp("Main Stage"),
		Now:                   time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC),
	}
	in := "{{festival_name}} engages {{artist_name}} ({{artist_contact}}) for {{artist_fee}} on {{performance_date}} at {{performance_time}}, {{performance_venue}}. Tech: {{technical_requirements}}. Rider: {{rider_requirements}}. Dated {{current_date}}."
	got := Fill(in, d)
	assert.Equal(t, "Harvest Moon Festival engages The Night Owls (Sam Reed) for £2500.00 on 2026-08-15 at 21:00, Main Stage. Tech: 4 DI boxes. Rider: Vegetarian catering. Dated 01/07/2026.", got)
}

func TestFillFallbacks(t *testing.T) {
	d := Data{
		FestivalName: "Harvest Moon Festival",
		ArtistName:   "The Night Owls",
		Now:          time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	got := Fill("Fee: {{artist_fee}}. Venue: {{performance_venue}}. Contact: {{artist_contact}}.", d)
	assert.Equal(t, "Fee: To be agreed. Venue: To be confirmed. Contact: To be confirmed.", got)
}

func TestFillLeavesUnknownTokens(t *testing.T) {
	d := Data{FestivalName: "F", ArtistName: "A", Now: time.Now()}
	got := Fill("Hello {{mystery_token}}", d)
	assert.Equal(t, "Hello {{mystery_token}}", got)
}

func TestFillEmptyStringFallsBack(t *testing.T) {
	d := Data{FestivalName: "F", ArtistName: "A", RiderRequirements: strp(""), Now: time.Now()}
	assert.Equal(t, "To be confirmed", Fill("{{rider_requirements}}", d))
}
