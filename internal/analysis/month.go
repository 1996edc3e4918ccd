package analysis

import (
	"fmt"
	"time"
)

// Month is a calendar month. It is the grouping unit for the monthly series
// and renders as "2006-01", which also sorts lexicographically.
type Month struct {
	Year int
	Mon  time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Mon: t.Month()}
}

// String formats the month as "2006-01".
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Mon))
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	if m.Mon == time.December {
		return Month{Year: m.Year + 1, Mon: time.January}
	}
	return Month{Year: m.Year, Mon: m.Mon + 1}
}

// AddMonths returns the month n months after m (n may be negative).
func (m Month) AddMonths(n int) Month {
	t := time.Date(m.Year, m.Mon, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return MonthOf(t)
}

// Before reports whether m is earlier than other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Mon < other.Mon
}

// After reports whether m is later than other.
func (m Month) After(other Month) bool {
	return other.Before(m)
}

// MarshalJSON renders the month as a "2006-01" string.
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON parses a "2006-01" string.
func (m *Month) UnmarshalJSON(data []byte) error {
	t, err := time.Parse(`"2006-01"`, string(data))
	if err != nil {
		return fmt.Errorf("invalid month %s: %w", data, err)
	}
	*m = MonthOf(t)
	return nil
}
