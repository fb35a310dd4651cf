// Package cycle holds the Cycle value type: a historical menstrual
// cycle, user-created and mutated only by explicit edit.
package cycle

import (
	"cyclesync/domain/civildate"
	"cyclesync/domain/core"
)

// Cycle represents one historical menstrual cycle.
type Cycle struct {
	ID           core.CycleID   `json:"id"`
	StartDate    civildate.Date `json:"start_date"`
	Length       int            `json:"length"`        // total cycle length in days, typically 21-35
	PeriodLength int            `json:"period_length"` // menses length in days, typically 3-7
	Notes        string         `json:"notes,omitempty"`
	CreatedAt    core.Timestamp `json:"created_at"`
	UpdatedAt    core.Timestamp `json:"updated_at"`
}

// Validate checks the invariants from the data model: length >= 1 and
// periodLength <= length.
func (c Cycle) Validate() error {
	if c.Length < 1 {
		return core.NewValidationError(core.ErrInvalidCycle, "length", "must be at least 1 day")
	}
	if c.PeriodLength > c.Length {
		return core.NewValidationError(core.ErrInvalidCycle, "period_length", "must not exceed cycle length")
	}
	return nil
}

// New constructs a Cycle with freshly minted identity and timestamps.
func New(startDate civildate.Date, length, periodLength int, notes string, now core.Timestamp) Cycle {
	return Cycle{
		ID:           core.NewCycleID(),
		StartDate:    startDate,
		Length:       length,
		PeriodLength: periodLength,
		Notes:        notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
