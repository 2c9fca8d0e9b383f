package gex

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBusinessDays(t *testing.T) {
	cal := NewMarketCalendar()

	// Holiday-free week: Mon 2024-03-04 through Fri 2024-03-08.
	if got := cal.BusinessDays(date(2024, 3, 4), date(2024, 3, 8)); got != 4 {
		t.Errorf("Mon->Fri half-open: expected 4, got %d", got)
	}
	// Weekend-only span.
	if got := cal.BusinessDays(date(2024, 3, 9), date(2024, 3, 11)); got != 0 {
		t.Errorf("Sat->Mon: expected 0, got %d", got)
	}
	// Same day.
	if got := cal.BusinessDays(date(2024, 3, 4), date(2024, 3, 4)); got != 0 {
		t.Errorf("same day: expected 0, got %d", got)
	}
}

func TestYearsToExpiry_FloorsSameDayToOneTradingDay(t *testing.T) {
	cal := NewMarketCalendar()
	today := date(2024, 3, 4)

	got := cal.YearsToExpiry(today, today, 262)
	if got != 1.0/262 {
		t.Errorf("same-day expiry: expected 1/262, got %v", got)
	}

	got = cal.YearsToExpiry(today, date(2024, 3, 8), 262)
	if got != 4.0/262 {
		t.Errorf("expected 4/262, got %v", got)
	}
}

func TestIsMonthlyExpiry(t *testing.T) {
	cases := []struct {
		d    time.Time
		want bool
	}{
		{date(2024, 6, 21), true},  // third Friday of June
		{date(2024, 6, 14), false}, // second Friday, day < 15
		{date(2024, 6, 28), false}, // fourth Friday, day > 21
		{date(2024, 6, 19), false}, // Wednesday in range
		{date(2024, 9, 20), true},  // third Friday of September
	}

	for _, tc := range cases {
		if got := IsMonthlyExpiry(tc.d); got != tc.want {
			t.Errorf("IsMonthlyExpiry(%s) = %v, want %v", tc.d.Format("2006-01-02"), got, tc.want)
		}
	}
}
