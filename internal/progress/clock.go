package progress

import (
	"encoding/json"
	"fmt"
	"time"
)

// Day is a calendar day with no time component, normalized to UTC midnight.
// It is the only date representation used inside the domain; parsing and
// formatting happen at the boundaries (store, HTTP, LLM output).
type Day struct {
	t time.Time
}

const dayLayout = "2006-01-02"

// ParseDay parses a "YYYY-MM-DD" string into a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return Day{t: t.UTC()}, nil
}

// DayOf truncates an instant to its calendar day in UTC.
func DayOf(t time.Time) Day {
	y, m, d := t.UTC().Date()
	return Day{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Day) String() string { return d.t.Format(dayLayout) }

// Time returns the day as a time.Time at UTC midnight.
func (d Day) Time() time.Time { return d.t }

func (d Day) IsZero() bool { return d.t.IsZero() }

func (d Day) Before(other Day) bool { return d.t.Before(other.t) }

func (d Day) Equal(other Day) bool { return d.t.Equal(other.t) }

// AddDays returns the day n calendar days later (or earlier for negative n).
func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

func (d Day) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.String())
}

func (d *Day) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Clock is a wall-clock time of day in minutes since midnight,
// serialized as "HH:MM". Planner entries use it for start and end times.
type Clock int

// ParseClock parses an "HH:MM" string. Anything beyond minutes is
// rejected, not ignored.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
