package control

import (
	"time"
)

type Clock interface {
	Now() time.Time
}

// syncedClock is implemented by clocks that correct themselves against a time source.
type syncedClock interface {
	Synced() bool
}

// QuietHours forces the strip off from Off (inclusive) to On (exclusive), both hours of the day. The window may
// wrap around midnight. Equal hours disable it.
type QuietHours struct {
	Off   int
	On    int
	Clock Clock
}

func (q *QuietHours) Active() bool {
	if q == nil || q.Clock == nil || q.Off == q.On {
		return false
	}
	return q.contains(q.Clock.Now().Hour())
}

// Synced reports if the clock has been corrected against its time source. Clocks without one count as synced.
func (q *QuietHours) Synced() bool {
	if q == nil {
		return true
	}
	if s, ok := q.Clock.(syncedClock); ok {
		return s.Synced()
	}
	return true
}

func (q *QuietHours) contains(hour int) bool {
	if q.Off < q.On {
		return hour >= q.Off && hour < q.On
	}
	return hour >= q.Off || hour < q.On
}
