// Package contractdoc renders contract text for the public signing page,
// substituting {{placeholder}} tokens with live artist, festival and
// performance data.
package contractdoc

import (
	"fmt"
	"strings"
	"time"
)

// Data carries the values available for substitution. Nil fields fall back
// to a placeholder string so an incomplete booking still renders a
// readable contract.
type Data struct {
	FestivalName          string
	ArtistName            string
	ArtistContact         *string
	Fee                   *float64
	TechnicalRequirements *string
	RiderRequirements     *string
	PerformanceDate       *string
	PerformanceTime       *string
	PerformanceVenue      *string
	Now                   time.Time
}

const (
	fallbackConfirmed = "To be confirmed"
	fallbackAgreed    = "To be agreed"
)

// Fill substitutes every known {{token}} in content. Unknown tokens are
// left untouched so template typos stay visible rather than silently
// disappearing.
func Fill(content string, d Data) string {
	fee := fallbackAgreed
	if d.Fee != nil {
		fee = fmt.Sprintf("£%.2f", *d.Fee)
	}
	r := strings.NewReplacer(
		"{{festival_name}}", d.FestivalName,
		"{{artist_name}}", d.ArtistName,
		"{{artist_contact}}", orFallback(d.ArtistContact),
		"{{current_date}}", d.Now.Format("02/01/2006"),
		"{{artist_fee}}", fee,
		"{{technical_requirements}}", orFallback(d.TechnicalRequirements),
		"{{rider_requirements}}", orFallback(d.RiderRequirements),
		"{{performance_date}}", orFallback(d.PerformanceDate),
		"{{performance_time}}", orFallback(d.PerformanceTime),
		"{{performance_venue}}", orFallback(d.PerformanceVenue),
	)
	return r.Replace(content)
}

func orFallback(s *string) string {
	if s == nil || *s == "" {
		return fallbackConfirmed
	}
	return *s
}
