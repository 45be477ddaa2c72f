// internal/clock/clock.go
//
// Calendar arithmetic for the game's daily cadence.
// Responsibilities:
//   - Resolve "today" in the game's reference timezone.
//   - Compute the day index (days since the fixed epoch) that seeds
//     daily puzzle selection.
//   - Day-boundary checks used by refills, streaks and reward cycles.
//
// Every daily boundary in the system (energy/hint refill, streak reset,
// reward cycle, daily triple, leaderboard periods, monthly stats) goes
// through one Clock bound to one location. The daily challenge is anchored
// to a North American timezone (America/Chicago), so refills follow the
// same boundary rather than UTC.
//
// All methods are pure with respect to the injected now-func, which makes
// every caller testable with a frozen clock.

package clock

import (
	"fmt"
	"time"
)

// DefaultTimezone anchors the daily challenge cutover.
const DefaultTimezone = "America/Chicago"

// Epoch date (day index zero) for daily puzzle selection. The epoch is a
// calendar date, so its midnight must be resolved in the reference
// location, not UTC.
const (
	epochYear  = 2024
	epochMonth = time.January
	epochDay   = 1
)

const dayMillis = 24 * 60 * 60 * 1000

// Clock resolves calendar dates in a fixed reference location.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New returns a Clock for the named IANA timezone.
func New(tz string) (*Clock, error) {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", tz, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// NewFixed returns a Clock frozen at t, for tests.
func NewFixed(t time.Time, tz string) *Clock {
	c, err := New(tz)
	if err != nil {
		panic(err)
	}
	c.now = func() time.Time { return t }
	return c
}

// Location returns the reference location.
func (c *Clock) Location() *time.Location { return c.loc }

// Now returns the current instant in the reference location.
func (c *Clock) Now() time.Time { return c.now().In(c.loc) }

// Today returns midnight of the current calendar date.
func (c *Clock) Today() time.Time { return c.Midnight(c.Now()) }

// Midnight truncates t to 00:00 of its calendar date in the reference location.
func (c *Clock) Midnight(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// DateKey formats t as YYYY-MM-DD in the reference location.
func (c *Clock) DateKey(t time.Time) string {
	return t.In(c.loc).Format("2006-01-02")
}

// TodayKey is DateKey(Now()).
func (c *Clock) TodayKey() string { return c.DateKey(c.Now()) }

// ParseDateKey parses a YYYY-MM-DD key as midnight in the reference location.
func (c *Clock) ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", key, c.loc)
}

// DayIndex returns the number of whole days between the epoch and t's
// calendar date. Both operands are truncated to midnight first. Rounding
// to the nearest day absorbs the one-hour skew DST transitions introduce
// between midnights.
func (c *Clock) DayIndex(t time.Time) int {
	epoch := time.Date(epochYear, epochMonth, epochDay, 0, 0, 0, 0, c.loc)
	diff := c.Midnight(t).UnixMilli() - epoch.UnixMilli()
	if diff < 0 {
		return 0
	}
	return int((diff + dayMillis/2) / dayMillis)
}

// TodayIndex is DayIndex(Now()).
func (c *Clock) TodayIndex() int { return c.DayIndex(c.Now()) }

// DaysBetween returns the non-negative whole-day count separating the
// calendar dates of a and b.
func (c *Clock) DaysBetween(a, b time.Time) int {
	diff := c.Midnight(b).UnixMilli() - c.Midnight(a).UnixMilli()
	if diff < 0 {
		diff = -diff
	}
	return int((diff + dayMillis/2) / dayMillis)
}

// IsNewDay reports whether last and now fall on different calendar dates.
// The comparison is by date, not elapsed time: instants five minutes apart
// straddling midnight are a new day, instants 23 hours apart on the same
// date are not.
func (c *Clock) IsNewDay(last, now time.Time) bool {
	return c.DateKey(last) != c.DateKey(now)
}

// WeekNumber returns a year-qualified ISO week marker (year*100 + week),
// used to detect weekly leaderboard rollover.
func (c *Clock) WeekNumber(t time.Time) int {
	year, week := t.In(c.loc).ISOWeek()
	return year*100 + week
}

// MonthNumber returns a monotonically increasing month marker
// (year*12 + month-1), used to detect monthly resets.
func (c *Clock) MonthNumber(t time.Time) int {
	t = t.In(c.loc)
	return t.Year()*12 + int(t.Month()) - 1
}

// UntilTomorrow returns the duration until the next midnight in the
// reference location, for "next puzzle in HH:MM:SS" countdowns.
func (c *Clock) UntilTomorrow() time.Duration {
	now := c.Now()
	return c.Midnight(now).AddDate(0, 0, 1).Sub(now)
}
