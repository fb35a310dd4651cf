package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	CycleID       ID
	PredictionID  ID
	ObservationID ID
)

// String conversions for domain IDs
func (id CycleID) String() string       { return ID(id).String() }
func (id PredictionID) String() string  { return ID(id).String() }
func (id ObservationID) String() string { return ID(id).String() }

// NewCycleID mints a fresh cycle identifier
func NewCycleID() CycleID { return CycleID(NewID()) }

// NewPredictionID mints a fresh prediction identifier
func NewPredictionID() PredictionID { return PredictionID(NewID()) }

// NewObservationID mints a fresh observation identifier
func NewObservationID() ObservationID { return ObservationID(NewID()) }

// ParseCycleID parses a string into a CycleID
func ParseCycleID(s string) (CycleID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("cycle ID cannot be empty")
	}
	return CycleID(s), nil
}

// ParsePredictionID parses a string into a PredictionID
func ParsePredictionID(s string) (PredictionID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("prediction ID cannot be empty")
	}
	return PredictionID(s), nil
}

// ParseObservationID parses a string into an ObservationID
func ParseObservationID(s string) (ObservationID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("observation ID cannot be empty")
	}
	return ObservationID(s), nil
}
