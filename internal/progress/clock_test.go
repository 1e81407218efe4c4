package progress

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-05-01")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.String() != "2024-05-01" {
		t.Errorf("string = %q", d.String())
	}
	if got := d.Time(); got != time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("time = %v", got)
	}

	if _, err := ParseDay("05/01/2024"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestDayOfDropsTimeComponent(t *testing.T) {
	instant := time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC)
	if got := DayOf(instant).String(); got != "2024-05-01" {
		t.Errorf("day = %q", got)
	}
}

func TestDayJSONRoundTrip(t *testing.T) {
	d, _ := ParseDay("2024-12-31")
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-12-31"` {
		t.Errorf("json = %s", b)
	}

	var back Day
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"14:00", "14:00", false},
		{"9:05", "09:05", false},
		{"00:00", "00:00", false},
		{"23:59", "23:59", false},
		{"24:00", "", true},
		{"12:60", "", true},
		{"noon", "", true},
		{"14:00:59", "", true},
		{"14:00xyz", "", true},
	}
	for _, tt := range tests {
		c, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tt.in, err)
			continue
		}
		if c.String() != tt.want {
			t.Errorf("ParseClock(%q) = %q, want %q", tt.in, c.String(), tt.want)
		}
	}
}

func TestClockOrdering(t *testing.T) {
	a, _ := ParseClock("08:30")
	b, _ := ParseClock("16:00")
	if a >= b {
		t.Errorf("expected %s < %s", a, b)
	}
}
