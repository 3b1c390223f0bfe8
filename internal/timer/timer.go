// Package timer holds the pure decision logic for a running activity
// timer. Persistence and UI belong to the callers.
package timer

import (
	"time"

	"github.com/tony816/dailyslot/internal/activity"
)

// Timer is a running stopwatch bound to a label and base.
type Timer struct {
	Label     string
	BaseIndex int
	StartedAt time.Time
}

// Start begins a timer at the given instant.
func Start(label string, baseIndex int, at time.Time) Timer {
	return Timer{Label: label, BaseIndex: baseIndex, StartedAt: at}
}

// ElapsedSeconds returns whole seconds since start, never negative.
func (t Timer) ElapsedSeconds(now time.Time) int {
	secs := int(now.Sub(t.StartedAt).Seconds())
	if secs < 0 {
		return 0
	}
	return secs
}

// Result is the pending activity row a stopped timer produces.
// Seconds is rounded to the unit step; RecordedSeconds keeps the raw
// elapsed time so short runs are not silently lost.
type Result struct {
	Label           string
	BaseIndex       int
	Seconds         int
	RecordedSeconds int
}

// Stop ends the timer. A timer left running past dayEnd is clipped
// there rather than bleeding into the next day; a zero dayEnd means no
// clipping.
func (t Timer) Stop(now, dayEnd time.Time, step int) Result {
	end := now
	if !dayEnd.IsZero() && end.After(dayEnd) {
		end = dayEnd
	}
	elapsed := t.ElapsedSeconds(end)
	return Result{
		Label:           t.Label,
		BaseIndex:       t.BaseIndex,
		Seconds:         activity.RoundSecondsToStep(float64(elapsed), step),
		RecordedSeconds: elapsed,
	}
}

// Row converts a stop result into an activity row ready for a session.
func (r Result) Row() activity.Activity {
	return activity.Activity{
		Label:           r.Label,
		Seconds:         r.Seconds,
		Source:          activity.SourceExtra,
		RecordedSeconds: activity.IntPtr(r.RecordedSeconds),
	}
}
