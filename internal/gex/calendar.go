package gex

import (
	"time"

	"github.com/scmhub/calendar"
)

// MarketCalendar answers trading-day questions against the NYSE calendar,
// including exchange holidays, not just weekends.
type MarketCalendar struct {
	nyse *calendar.Calendar
}

func NewMarketCalendar() *MarketCalendar {
	return &MarketCalendar{nyse: calendar.XNYS()}
}

// BusinessDays counts NYSE trading days in the half-open interval
// [from, to). Returns 0 when to is not after from.
func (c *MarketCalendar) BusinessDays(from, to time.Time) int {
	from = midday(from)
	to = midday(to)

	count := 0
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		if c.nyse.IsBusinessDay(d) {
			count++
		}
	}
	return count
}

// YearsToExpiry converts an expiration date into year-fraction time using
// tradingDays per year. A contract expiring today is floored to one trading
// day rather than zero, so same-day expiries still carry gamma instead of
// hitting the degenerate T==0 case.
func (c *MarketCalendar) YearsToExpiry(today, expiry time.Time, tradingDays int) float64 {
	days := c.BusinessDays(today, expiry)
	if days == 0 {
		return 1 / float64(tradingDays)
	}
	return float64(days) / float64(tradingDays)
}

// IsMarketDay reports whether t falls on an NYSE trading day.
func (c *MarketCalendar) IsMarketDay(t time.Time) bool {
	return c.nyse.IsBusinessDay(midday(t))
}

// IsMonthlyExpiry reports whether d is a standard monthly expiration under
// the third-Friday convention: a Friday whose day of month is 15 through 21.
// This is the usual heuristic, not a validated exchange calendar rule.
func IsMonthlyExpiry(d time.Time) bool {
	return d.Weekday() == time.Friday && d.Day() >= 15 && d.Day() <= 21
}

// midday normalizes to noon so calendar day matching is immune to DST edges.
func midday(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}
