package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DayLayout is the wire format of a calendar date.
const DayLayout = "2006-01-02"

// Day is the date of a ledger entry. Entries recorded from a form carry a
// bare calendar date; older snapshots may hold a full timestamp, which is
// kept so that ordering stays the same after a round trip.
type Day struct {
	t time.Time
}

// NewDay returns the calendar date of t.
func NewDay(t time.Time) Day {
	y, m, d := t.Date()
	return Day{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDay accepts YYYY-MM-DD or an RFC 3339 timestamp. A timestamp keeps
// its own offset, so its calendar date is the one written in the input.
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DayLayout, s); err == nil {
		return Day{t: t}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q", s)
	}
	return Day{t: t}, nil
}

// MustParseDay is ParseDay for literals; it panics on bad input.
func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns the instant used for ordering.
func (d Day) Time() time.Time { return d.t }

// IsZero reports whether the date is unset.
func (d Day) IsZero() bool { return d.t.IsZero() }

// Compare orders two days chronologically.
func (d Day) Compare(o Day) int { return d.t.Compare(o.t) }

// String formats the calendar date as YYYY-MM-DD.
func (d Day) String() string { return d.t.Format(DayLayout) }

// Label is the short day/month form used on chart axes.
func (d Day) Label() string { return d.t.Format("02/01") }

func (d Day) hasClock() bool {
	return !d.t.Equal(time.Date(d.t.Year(), d.t.Month(), d.t.Day(), 0, 0, 0, 0, d.t.Location()))
}

// MarshalJSON implements json.Marshaler.
func (d Day) MarshalJSON() ([]byte, error) {
	if d.hasClock() {
		return json.Marshal(d.t.Format(time.RFC3339Nano))
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Day) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	v, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
