// Package repository implements data access for every entity over the
// database port. Queries are written once with `?` placeholders; the port
// handles dialect differences.
package repository

import (
	"errors"

	"github.com/mbruton/festival-manager/internal/model"
)

// Sentinel errors returned by repositories. Handlers map these onto HTTP
// statuses.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicate      = errors.New("record already exists")
	ErrInUse          = errors.New("record is referenced by other records")
	ErrDeadlinePassed = errors.New("contract deadline has passed")
	ErrBadTransition  = errors.New("invalid status transition")
)

// ConflictError reports a rejected schedule write together with the
// performances it collided with, so the caller can display them.
type ConflictError struct {
	Conflicts []model.Performance
}

func (e *ConflictError) Error() string { return "performance overlaps existing bookings" }

// HasDependents is returned when a festival with child records is deleted
// without force. The per-table counts are included in the response body.
type HasDependents struct {
	Stages       int64 `json:"stages"`
	Performances int64 `json:"performances"`
	Artists      int64 `json:"artists"`
	Volunteers   int64 `json:"volunteers"`
	Vendors      int64 `json:"vendors"`
	BudgetItems  int64 `json:"budget_items"`
	Documents    int64 `json:"documents"`
}

func (e *HasDependents) Error() string { return "festival has associated records" }

func (e *HasDependents) Total() int64 {
	return e.Stages + e.Performances + e.Artists + e.Volunteers + e.Vendors + e.BudgetItems + e.Documents
}
