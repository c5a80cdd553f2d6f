// Package budget derives financial summaries for a festival from budget
// items, artist fees and vendor records.
package budget

import "strings"

// Summary is the headline totals view over a festival's budget items.
type Summary struct {
	FestivalID          int64   `json:"festival_id"`
	TotalIncome         float64 `json:"total_income"`
	TotalExpenses       float64 `json:"total_expenses"`
	PaidIncome          float64 `json:"paid_income"`
	PaidExpenses        float64 `json:"paid_expenses"`
	NetBudget           float64 `json:"net_budget"`
	OutstandingIncome   float64 `json:"outstanding_income"`
	OutstandingExpenses float64 `json:"outstanding_expenses"`
}

// Finalize fills the derived fields from the summed ones.
func (s *Summary) Finalize() {
	s.NetBudget = s.TotalIncome - s.TotalExpenses
	s.OutstandingIncome = s.TotalIncome - s.PaidIncome
	s.OutstandingExpenses = s.TotalExpenses - s.PaidExpenses
}

// CategoryItem is one line within a category: an artist fee, a vendor, or
// (for manual categories) nothing, since those are reported as rollups.
type CategoryItem struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Amount *float64 `json:"amount"`
	Status string   `json:"status"`
	Type   string   `json:"type"`
}

// Category is a rollup of spend or income under one heading.
type Category struct {
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	TotalBudget float64        `json:"total_budget"`
	Agreed      float64        `json:"agreed_amount"`
	Paid        float64        `json:"paid_amount"`
	Outstanding float64        `json:"outstanding_amount"`
	Items       []CategoryItem `json:"items"`
}

// CategoryReport is the per-category budget view, always carrying the
// implicit artist and vendor categories alongside the manual ones.
type CategoryReport struct {
	FestivalID    int64                `json:"festival_id"`
	TotalIncome   float64              `json:"total_income"`
	TotalExpenses float64              `json:"total_expenses"`
	NetBudget     float64              `json:"net_budget"`
	Categories    map[string]*Category `json:"categories"`
}

// ArtistFee is an artist row carrying a fee.
type ArtistFee struct {
	ID        int64
	Name      string
	Fee       float64
	FeeStatus string
}

// VendorEntry is a vendor row with a rates note. Rates are free text, so
// vendor amounts are not totalled.
type VendorEntry struct {
	ID     int64
	Name   string
	Status string
}

// CategoryRollup is one (category, type) aggregate over manual budget
// items. Paid covers status 'paid'; Outstanding covers 'pending' and
// 'overdue'.
type CategoryRollup struct {
	Category    string
	Type        string
	Total       float64
	Paid        float64
	Outstanding float64
}

// CategoryKey normalizes a display category into its map key.
func CategoryKey(category string) string {
	return strings.Join(strings.Fields(strings.ToLower(category)), "_")
}

// BuildCategories folds artist fees and vendors into the manual category
// rollups. Artist fees count as agreed once the fee_status has moved past
// 'quoted' to agreed, invoiced or paid.
func BuildCategories(festivalID int64, artists []ArtistFee, vendors []VendorEntry, rollups []CategoryRollup) CategoryReport {
	artistCat := &Category{Name: "Artists & Performers", Type: "expense", Items: []CategoryItem{}}
	for _, a := range artists {
		fee := a.Fee
		artistCat.TotalBudget += fee
		switch a.FeeStatus {
		case "paid":
			artistCat.Paid += fee
			artistCat.Agreed += fee
		case "agreed", "invoiced":
			artistCat.Agreed += fee
		}
		artistCat.Items = append(artistCat.Items, CategoryItem{
			ID: a.ID, Name: a.Name, Amount: &fee, Status: a.FeeStatus, Type: "artist_fee",
		})
	}
	artistCat.Outstanding = artistCat.TotalBudget - artistCat.Paid

	vendorCat := &Category{Name: "Vendors & Services", Type: "expense", Items: []CategoryItem{}}
	for _, v := range vendors {
		zero := 0.0
		vendorCat.Items = append(vendorCat.Items, CategoryItem{
			ID: v.ID, Name: v.Name, Amount: &zero, Status: v.Status, Type: "vendor_cost",
		})
	}

	categories := map[string]*Category{
		"artists": artistCat,
		"vendors": vendorCat,
	}

	for _, r := range rollups {
		key := CategoryKey(r.Category)
		cat, ok := categories[key]
		if !ok {
			cat = &Category{Name: r.Category, Type: r.Type, Items: []CategoryItem{}}
			categories[key] = cat
		}
		cat.TotalBudget += r.Total
		cat.Paid += r.Paid
		cat.Outstanding += r.Outstanding
	}

	report := CategoryReport{FestivalID: festivalID, Categories: categories}
	for _, cat := range categories {
		switch cat.Type {
		case "income":
			report.TotalIncome += cat.TotalBudget
		case "expense":
			report.TotalExpenses += cat.TotalBudget
		}
	}
	report.NetBudget = report.TotalIncome - report.TotalExpenses
	return report
}
