package localdate

import (
	"testing"
	"time"
)

func fixedCalendar(t *testing.T, loc *time.Location, y int, m time.Month, d, hh, mm int) *Calendar {
	t.Helper()
	now := time.Date(y, m, d, hh, mm, 0, 0, loc)
	return New(loc, func() time.Time { return now })
}

func TestFormatParseRoundTrip(t *testing.T) {
	keys := []string{"2024-01-01", "2024-02-29", "1999-12-31", "2025-06-15", "0987-03-04"}
	for _, k := range keys {
		ts, err := Parse(k)
		if err != nil {
			t.Fatalf("Parse(%q): %v", k, err)
		}
		if got := Format(ts); got != k {
			t.Errorf("Format(Parse(%q)) = %q", k, got)
		}
	}
}

func TestParseIsLocalMidnight(t *testing.T) {
	loc := time.FixedZone("UTC-11", -11*3600)
	c := New(loc, nil)
	ts, err := c.Parse("2024-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if ts.Hour() != 0 || ts.Day() != 10 || ts.Location() != loc {
		t.Errorf("Parse = %v, want local midnight on the 10th", ts)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, in := range []string{"", "2024-01", "2024/01/01", "abcd-ef-gh", "2024-01-01-01"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) should fail", in)
		}
	}
}

func TestAddDaysCrossesBoundaries(t *testing.T) {
	tests := []struct {
		key  string
		n    int
		want string
	}{
		{"2024-01-31", 1, "2024-02-01"},
		{"2024-12-31", 1, "2025-01-01"},
		{"2024-03-01", -1, "2024-02-29"},
		{"2023-03-01", -1, "2023-02-28"},
		{"2024-01-15", 0, "2024-01-15"},
		{"2024-01-01", 366, "2025-01-01"},
		{"2024-01-01", -30, "2023-12-02"},
	}
	for _, tt := range tests {
		got, err := AddDays(tt.key, tt.n)
		if err != nil {
			t.Fatalf("AddDays(%q, %d): %v", tt.key, tt.n, err)
		}
		if got != tt.want {
			t.Errorf("AddDays(%q, %d) = %q, want %q", tt.key, tt.n, got, tt.want)
		}
	}
}

func TestAddDaysAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}
	c := New(loc, nil)
	// 2024-03-10 is 23 hours long in New York; 2024-11-03 is 25 hours long.
	for _, tt := range []struct{ key, want string }{
		{"2024-03-09", "2024-03-10"},
		{"2024-03-10", "2024-03-11"},
		{"2024-11-02", "2024-11-03"},
		{"2024-11-03", "2024-11-04"},
	} {
		got, err := c.AddDays(tt.key, 1)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("AddDays(%q, 1) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"2024-02-29", "2023-12-31", "2000-01-01"}
	invalid := []string{"2023-02-29", "2024-02-30", "2024-13-01", "2024-00-10", "2024-1-1", "24-01-01", "2024-01-01T00:00", "", "2024-01-32"}
	for _, s := range valid {
		if !IsValid(s) {
			t.Errorf("IsValid(%q) = false", s)
		}
	}
	for _, s := range invalid {
		if IsValid(s) {
			t.Errorf("IsValid(%q) = true", s)
		}
	}
}

func TestLastNDays(t *testing.T) {
	c := fixedCalendar(t, time.UTC, 2024, time.March, 2, 23, 59)
	got := c.LastNDays(7)
	want := []string{"2024-02-25", "2024-02-26", "2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("day %d = %q, want %q", i, got[i], want[i])
		}
	}
	if got[len(got)-1] != c.Today() {
		t.Errorf("last day %q != today %q", got[len(got)-1], c.Today())
	}
	if n := len(c.LastNDays(0)); n != 0 {
		t.Errorf("LastNDays(0) len = %d", n)
	}
}

func TestTodayUsesCalendarLocation(t *testing.T) {
	// 23:30 on the 1st in UTC-5 is already the 2nd in UTC; the key must stay local.
	loc := time.FixedZone("UTC-5", -5*3600)
	c := fixedCalendar(t, loc, 2024, time.June, 1, 23, 30)
	if got := c.Today(); got != "2024-06-01" {
		t.Errorf("Today = %q, want 2024-06-01", got)
	}
}

func TestMonthDates(t *testing.T) {
	feb := MonthDates(2024, time.February)
	if len(feb) != 29 || feb[0] != "2024-02-01" || feb[28] != "2024-02-29" {
		t.Errorf("Feb 2024 = %v", feb)
	}
	if n := len(MonthDates(2023, time.February)); n != 28 {
		t.Errorf("Feb 2023 len = %d", n)
	}
	dec := MonthDates(2024, time.December)
	if len(dec) != 31 || dec[30] != "2024-12-31" {
		t.Errorf("Dec 2024 = %v", dec)
	}
}

func TestFirstDayOfMonth(t *testing.T) {
	got, err := FirstDayOfMonth("2024-07-19")
	if err != nil {
		t.Fatal(err)
	}
	if Format(got) != "2024-07-01" {
		t.Errorf("FirstDayOfMonth = %s", Format(got))
	}
}

func TestRange(t *testing.T) {
	got, err := Range("2024-02-27", "2024-03-02")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	if len(got) != len(want) {
		t.Fatalf("Range = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Range[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	empty, err := Range("2024-03-02", "2024-03-01")
	if err != nil || len(empty) != 0 {
		t.Errorf("reversed range = %v, %v", empty, err)
	}
	if _, err := Range("2024-02-30", "2024-03-01"); err == nil {
		t.Error("invalid start should fail")
	}
}

func TestRangeAtTopOfCalendar(t *testing.T) {
	got, err := Range("9999-12-30", "9999-12-31")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"9999-12-30", "9999-12-31"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Range = %v, want %v", got, want)
	}
}

func TestSpan(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"2024-03-05", "2024-03-05", 1},
		{"2024-02-27", "2024-03-02", 5},
		{"2024-03-02", "2024-03-01", 0},
		{"2023-12-31", "2024-12-31", 367},
		{"9999-12-30", "9999-12-31", 2},
		{"0001-01-01", "9999-12-31", 3652059},
	}
	for _, tt := range tests {
		got, err := Span(tt.start, tt.end)
		if err != nil || got != tt.want {
			t.Errorf("Span(%q, %q) = %d, %v; want %d", tt.start, tt.end, got, err, tt.want)
		}
	}
	if _, err := Span("2024-03-05", "2024-02-30"); err == nil {
		t.Error("invalid end should fail")
	}
}
