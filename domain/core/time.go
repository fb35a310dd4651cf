package core

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Timestamp represents a point in time with timezone awareness
type Timestamp time.Time

// NewTimestamp creates a new timestamp from time.Time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t)
}

// Now returns the current timestamp
func Now() Timestamp {
	return Timestamp(time.Now())
}

// Time returns the underlying time.Time
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// IsZero checks if the timestamp is zero
func (t Timestamp) IsZero() bool {
	return time.Time(t).IsZero()
}

// Before returns true if t is before u
func (t Timestamp) Before(u Timestamp) bool {
	return time.Time(t).Before(time.Time(u))
}

// After returns true if t is after u
func (t Timestamp) After(u Timestamp) bool {
	return time.Time(t).After(time.Time(u))
}

// JSON marshaling for Timestamp
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return time.Time(t).MarshalJSON()
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var tm time.Time
	if err := tm.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = Timestamp(tm)
	return nil
}

// String formats the timestamp as RFC3339.
func (t Timestamp) String() string { return t.Time().Format(time.RFC3339) }

// Value implements driver.Valuer so a Timestamp can be written
// directly to a PostgreSQL timestamptz column.
func (t Timestamp) Value() (driver.Value, error) {
	return t.Time(), nil
}

// Scan implements sql.Scanner so a Timestamp can be read directly
// from a PostgreSQL timestamptz column.
func (t *Timestamp) Scan(value interface{}) error {
	if value == nil {
		*t = Timestamp{}
		return nil
	}
	tm, ok := value.(time.Time)
	if !ok {
		return fmt.Errorf("core: cannot scan %T into Timestamp", value)
	}
	*t = Timestamp(tm)
	return nil
}
