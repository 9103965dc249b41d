package roster

import (
	"testing"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9:30", 0, true},
		{"09-30", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}

	for _, c := range cases {
		got, err := ParseClock(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error, got %d", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseClock(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestShiftDuration(t *testing.T) {
	if got := ShiftDuration("09:00", "17:00"); got != 480 {
		t.Errorf("ShiftDuration(09:00, 17:00) = %d, want 480", got)
	}
	// a shift past midnight must add a day instead of going negative
	if got := ShiftDuration("23:00", "06:00"); got != 420 {
		t.Errorf("ShiftDuration(23:00, 06:00) = %d, want 420", got)
	}
	if got := ShiftDuration("08:00", "08:00"); got != 0 {
		t.Errorf("ShiftDuration(08:00, 08:00) = %d, want 0", got)
	}
}

func TestTimesOverlap(t *testing.T) {
	// touching endpoints do not count as overlap
	if TimesOverlap("09:00", "10:00", "10:00", "11:00") {
		t.Error("touching intervals reported as overlapping")
	}
	if !TimesOverlap("09:00", "11:00", "10:00", "12:00") {
		t.Error("intersecting intervals reported as disjoint")
	}
	if !TimesOverlap("09:00", "12:00", "10:00", "11:00") {
		t.Error("contained interval reported as disjoint")
	}
	if TimesOverlap("09:00", "10:00", "11:00", "12:00") {
		t.Error("disjoint intervals reported as overlapping")
	}
}

func TestMinutesToTimeRoundTrip(t *testing.T) {
	for m := 0; m < 24*60; m++ {
		s := MinutesToTime(m)
		if got := TimeToMinutes(s); got != m {
			t.Fatalf("TimeToMinutes(MinutesToTime(%d)) = %d", m, got)
		}
	}
}

func TestMinutesToTimeDoesNotWrap(t *testing.T) {
	if got := MinutesToTime(1440); got != "24:00" {
		t.Errorf("MinutesToTime(1440) = %q, want %q", got, "24:00")
	}
}

func TestFormatTime(t *testing.T) {
	cases := []struct{ in, want string }{
		{"00:15", "12:15 AM"},
		{"09:00", "9:00 AM"},
		{"12:00", "12:00 PM"},
		{"13:30", "1:30 PM"},
		{"23:45", "11:45 PM"},
	}
	for _, c := range cases {
		if got := FormatTime(c.in); got != c.want {
			t.Errorf("FormatTime(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{45, "45m"},
		{120, "2h"},
		{450, "7h 30m"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.in); got != c.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
