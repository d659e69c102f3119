package repositories

import "time"

// Window is the half-open interval [Since, Until) with its midpoint, used to
// split a trailing window into halves for the seasonal trend.
type Window struct {
	Since time.Time
	Mid   time.Time
	Until time.Time
}

func TrailingWindow(now time.Time, days int) Window {
	since := now.AddDate(0, 0, -days)
	return Window{
		Since: since,
		Mid:   since.Add(now.Sub(since) / 2),
		Until: now,
	}
}

// EndOfDay is the first instant after the calendar day of t, in t's location.
// Analytics for a reference date include that whole day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Since) && t.Before(w.Until)
}

func (w Window) InFirstHalf(t time.Time) bool {
	return t.Before(w.Mid)
}
