package todo

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isoDate(t time.Time) string { return t.Format("2006-01-02") }

func TestBuildPrioritizesOverdueFirst(t *testing.T) {
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

	overdue := []Payment{{ID: 1, Name: "Stage hire deposit", Amount: 500, DueDate: isoDate(now.AddDate(0, 0, -1))}}
	upcoming := []Payment{{ID: 2, Name: "PA system balance", Amount: 1200, DueDate: isoDate(now.AddDate(0, 0, 3))}}
	docs := []Document{{ID: 3, Name: "Public liability policy", Type: "insurance", ExpiryDate: isoDate(now.AddDate(0, 0, 5))}}

	r := Build(7, now, overdue, upcoming, nil, nil, docs)

	require.Len(t, r.Todos, 3)
	assert.Equal(t, 3, r.TotalTodos)
	assert.Equal(t, 2, r.HighPriority)
	assert.Equal(t, 1, r.MediumPriority)
	assert.Equal(t, 0, r.LowPriority)

	assert.Equal(t, "payment_overdue_1", r.Todos[0].ID)
	assert.Equal(t, PriorityHigh, r.Todos[0].Priority)
	assert.Equal(t, PriorityHigh, r.Todos[1].Priority)
	assert.Equal(t, "document_expiry_3", r.Todos[1].ID)
	assert.Equal(t, PriorityMedium, r.Todos[2].Priority)
	assert.Equal(t, "payment_due_2", r.Todos[2].ID)
}

func TestBuildDocumentPriorityBands(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	docs := []Document{
		{ID: 1, Name: "A", Type: "permit", ExpiryDate: isoDate(now.AddDate(0, 0, 6))},
		{ID: 2, Name: "B", Type: "permit", ExpiryDate: isoDate(now.AddDate(0, 0, 10))},
		{ID: 3, Name: "C", Type: "permit", ExpiryDate: isoDate(now.AddDate(0, 0, 25))},
	}
	r := Build(1, now, nil, nil, nil, nil, docs)
	require.Len(t, r.Todos, 3)
	assert.Equal(t, PriorityHigh, r.Todos[0].Priority)
	assert.Equal(t, PriorityMedium, r.Todos[1].Priority)
	assert.Equal(t, PriorityLow, r.Todos[2].Priority)
}

func TestBuildSortsByDueDateThenTitle(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	overdue := []Payment{
		{ID: 1, Name: "Zeta invoice", Amount: 10, DueDate: "2026-06-10"},
		{ID: 2, Name: "Alpha invoice", Amount: 10, DueDate: "2026-06-01"},
	}
	artists := []Party{{ID: 3, Name: "The Midnight Ramblers"}, {ID: 4, Name: "Acoustic Dawn"}}

	r := Build(1, now, overdue, nil, artists, nil, nil)
	require.Len(t, r.Todos, 4)
	// Earlier due date wins; undated high-priority items fall back to title order.
	assert.Equal(t, "payment_overdue_2", r.Todos[0].ID)
	assert.Equal(t, "payment_overdue_1", r.Todos[1].ID)
	assert.Equal(t, "Contract Needed: Acoustic Dawn", r.Todos[2].Title)
	assert.Equal(t, "Contract Needed: The Midnight Ramblers", r.Todos[3].Title)
}

func TestBuildTruncatesToTwenty(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	var vendors []Party
	for i := 0; i < 25; i++ {
		vendors = append(vendors, Party{ID: int64(i + 1), Name: fmt.Sprintf("Vendor %02d", i)})
	}
	r := Build(1, now, nil, nil, nil, vendors, nil)
	assert.Len(t, r.Todos, 20)
	assert.Equal(t, 25, r.TotalTodos)
	assert.Equal(t, 25, r.MediumPriority)
}
