// Package window implements the recency filter: a job is admitted iff its
// published date falls inside [today-days, today], evaluated in UTC for
// every source.
package window

import "time"

// Filter keeps jobs published within the configured lookback window.
// days=0 means today only, days=1 today and yesterday, and so on.
type Filter struct {
	days int
	now  func() time.Time
}

// New creates a window filter with the given lookback in days.
func New(days int) *Filter {
	return &Filter{days: days, now: time.Now}
}

// NewAt is like New but with an injectable clock, for tests.
func NewAt(days int, now func() time.Time) *Filter {
	return &Filter{days: days, now: now}
}

// Admit reports whether published falls inside the window. The lower
// boundary is inclusive at midnight UTC of (today - days); dates on a
// future day relative to run time are excluded.
func (f *Filter) Admit(published time.Time) bool {
	now := f.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	start := today.AddDate(0, 0, -f.days)
	end := today.AddDate(0, 0, 1) // exclusive: first instant of tomorrow

	p := published.UTC()
	return !p.Before(start) && p.Before(end)
}
