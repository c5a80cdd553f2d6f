// Package todo assembles the action-item list shown on the dashboard:
// overdue and upcoming payments, artists and vendors stuck before
// contracting, and documents approaching expiry.
package todo

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Item types.
const (
	TypePaymentOverdue = "payment_overdue"
	TypePaymentDue     = "payment_due"
	TypeArtistContract = "artist_contract"
	TypeVendorContract = "vendor_contract"
	TypeDocumentExpiry = "document_expiry"
)

// Priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// maxItems caps the returned list; the counts still reflect everything.
const maxItems = 20

// Item is a single actionable entry.
type Item struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date,omitempty"`
	RelatedID   int64   `json:"related_id,omitempty"`
	RelatedType string  `json:"related_type,omitempty"`
}

// Report is the dashboard payload: priority counts over the full set plus
// the top items.
type Report struct {
	FestivalID     int64  `json:"festival_id"`
	TotalTodos     int    `json:"total_todos"`
	HighPriority   int    `json:"high_priority"`
	MediumPriority int    `json:"medium_priority"`
	LowPriority    int    `json:"low_priority"`
	Todos          []Item `json:"todos"`
}

// Payment is a pending budget item with a due date.
type Payment struct {
	ID      int64
	Name    string
	Amount  float64
	DueDate string
}

// Party is an artist or vendor still awaiting a contract.
type Party struct {
	ID   int64
	Name string
}

// Document is a document with an upcoming expiry date.
type Document struct {
	ID         int64
	Name       string
	Type       string
	ExpiryDate string
}

var priorityRank = map[string]int{PriorityHigh: 3, PriorityMedium: 2, PriorityLow: 1}

// Build merges the five source categories into one prioritized report.
// Overdue payments are high, upcoming payments medium, inquired artists
// high, inquiry-stage vendors medium; document priority scales with how
// soon the expiry lands relative to now.
func Build(festivalID int64, now time.Time, overdue, upcoming []Payment, artists, vendors []Party, docs []Document) Report {
	items := make([]Item, 0, len(overdue)+len(upcoming)+len(artists)+len(vendors)+len(docs))

	for _, p := range overdue {
		due := p.DueDate
		items = append(items, Item{
			ID:          fmt.Sprintf("payment_overdue_%d", p.ID),
			Type:        TypePaymentOverdue,
			Title:       "Overdue Payment: " + p.Name,
			Description: fmt.Sprintf("Payment of £%.2f was due on %s", p.Amount, formatDate(p.DueDate)),
			Priority:    PriorityHigh,
			DueDate:     &due,
			RelatedID:   p.ID,
			RelatedType: "budget_item",
		})
	}
	for _, p := range upcoming {
		due := p.DueDate
		items = append(items, Item{
			ID:          fmt.Sprintf("payment_due_%d", p.ID),
			Type:        TypePaymentDue,
			Title:       "Payment Due: " + p.Name,
			Description: fmt.Sprintf("Payment of £%.2f is due on %s", p.Amount, formatDate(p.DueDate)),
			Priority:    PriorityMedium,
			DueDate:     &due,
			RelatedID:   p.ID,
			RelatedType: "budget_item",
		})
	}
	for _, a := range artists {
		items = append(items, Item{
			ID:          fmt.Sprintf("artist_contract_%d", a.ID),
			Type:        TypeArtistContract,
			Title:       "Contract Needed: " + a.Name,
			Description: fmt.Sprintf("Artist %s needs contract finalization", a.Name),
			Priority:    PriorityHigh,
			RelatedID:   a.ID,
			RelatedType: "artist",
		})
	}
	for _, v := range vendors {
		items = append(items, Item{
			ID:          fmt.Sprintf("vendor_contract_%d", v.ID),
			Type:        TypeVendorContract,
			Title:       "Contract Needed: " + v.Name,
			Description: fmt.Sprintf("Vendor %s needs contract approval", v.Name),
			Priority:    PriorityMedium,
			RelatedID:   v.ID,
			RelatedType: "vendor",
		})
	}
	for _, d := range docs {
		due := d.ExpiryDate
		days := daysUntil(now, d.ExpiryDate)
		priority := PriorityLow
		switch {
		case days <= 7:
			priority = PriorityHigh
		case days <= 14:
			priority = PriorityMedium
		}
		items = append(items, Item{
			ID:          fmt.Sprintf("document_expiry_%d", d.ID),
			Type:        TypeDocumentExpiry,
			Title:       "Document Expiring: " + d.Name,
			Description: fmt.Sprintf("%s expires on %s (%d days)", d.Type, formatDate(d.ExpiryDate), days),
			Priority:    priority,
			DueDate:     &due,
			RelatedID:   d.ID,
			RelatedType: "document",
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if priorityRank[a.Priority] != priorityRank[b.Priority] {
			return priorityRank[a.Priority] > priorityRank[b.Priority]
		}
		if a.DueDate != nil && b.DueDate != nil && *a.DueDate != *b.DueDate {
			return *a.DueDate < *b.DueDate
		}
		return a.Title < b.Title
	})

	r := Report{FestivalID: festivalID, TotalTodos: len(items)}
	for _, it := range items {
		switch it.Priority {
		case PriorityHigh:
			r.HighPriority++
		case PriorityMedium:
			r.MediumPriority++
		case PriorityLow:
			r.LowPriority++
		}
	}
	if len(items) > maxItems {
		items = items[:maxItems]
	}
	r.Todos = items
	return r
}

// daysUntil counts calendar days from now to an ISO date, rounding up so a
// partial day still counts.
func daysUntil(now time.Time, date string) int {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}
