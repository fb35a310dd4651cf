// Package civildate implements pure civil-date arithmetic at day
// granularity. Every Date is anchored to UTC midnight so that addition,
// subtraction, and comparison are stable across daylight-saving
// boundaries and independent of the host's local timezone.
package civildate

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const layout = "2006-01-02"

// Date is a civil date: a calendar day with no time-of-day or timezone
// component. The zero value is not a valid date.
type Date struct {
	t time.Time
}

// Parse converts a "YYYY-MM-DD" string into a Date.
func Parse(s string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("civildate: invalid date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// FromTime anchors t to UTC midnight, discarding its time-of-day and
// zone.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// New constructs a Date directly from a calendar year/month/day.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.t.IsZero() }

// String renders the date as "YYYY-MM-DD".
func (d Date) String() string { return d.t.Format(layout) }

// Time returns the UTC-midnight time.Time backing this date.
func (d Date) Time() time.Time { return d.t }

// Year, Month, Day expose the calendar components.
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports whether d and other denote the same calendar day.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysBetween returns the non-negative number of days between a and
// b, whichever comes first; use Sub for a signed difference.
// DaysBetween(a, a) = 0.
func DaysBetween(a, b Date) int {
	n := int(b.t.Sub(a.t).Hours() / 24)
	if n < 0 {
		return -n
	}
	return n
}

// Sub returns the signed number of days d - other.
func (d Date) Sub(other Date) int {
	return int(d.t.Sub(other.t).Hours() / 24)
}

// Range enumerates the inclusive date range [from, to]. If to is
// before from, Range returns an empty slice.
func Range(from, to Date) []Date {
	if to.Before(from) {
		return nil
	}
	n := DaysBetween(from, to)
	out := make([]Date, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, from.AddDays(i))
	}
	return out
}

// Min returns the earlier of a and b.
func Min(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

// Max returns the later of a and b.
func Max(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}

// Value implements driver.Valuer so a Date can be written directly to
// a PostgreSQL DATE column.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.t, nil
}

// Scan implements sql.Scanner so a Date can be read directly from a
// PostgreSQL DATE column.
func (d *Date) Scan(value interface{}) error {
	if value == nil {
		*d = Date{}
		return nil
	}
	t, ok := value.(time.Time)
	if !ok {
		return fmt.Errorf("civildate: cannot scan %T into Date", value)
	}
	*d = FromTime(t)
	return nil
}

// MarshalJSON renders the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON parses a quoted "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
