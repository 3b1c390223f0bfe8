package timer

import (
	"testing"
	"time"

	"github.com/tony816/dailyslot/internal/activity"
)

var base = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestElapsedSeconds(t *testing.T) {
	tm := Start("집중", 0, base)

	if got := tm.ElapsedSeconds(base.Add(25 * time.Minute)); got != 1500 {
		t.Errorf("got %d, want 1500", got)
	}
	if got := tm.ElapsedSeconds(base); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
	if got := tm.ElapsedSeconds(base.Add(-time.Minute)); got != 0 {
		t.Errorf("clock skew must read as 0, got %d", got)
	}
}

func TestStop(t *testing.T) {
	tm := Start("집중", 1, base)
	dayEnd := base.Add(9 * time.Hour)

	t.Run("rounds to step, keeps raw", func(t *testing.T) {
		res := tm.Stop(base.Add(14*time.Minute+50*time.Second), dayEnd, 600)
		if res.Seconds != 900 || res.RecordedSeconds != 890 {
			t.Errorf("got %d/%d, want 900/890", res.Seconds, res.RecordedSeconds)
		}
		if res.Label != "집중" || res.BaseIndex != 1 {
			t.Errorf("identity lost: %+v", res)
		}
	})

	t.Run("short run rounds to zero but records", func(t *testing.T) {
		res := tm.Stop(base.Add(3*time.Minute), dayEnd, 600)
		if res.Seconds != 0 || res.RecordedSeconds != 180 {
			t.Errorf("got %d/%d, want 0/180", res.Seconds, res.RecordedSeconds)
		}
	})

	t.Run("clipped at day end", func(t *testing.T) {
		res := tm.Stop(dayEnd.Add(2*time.Hour), dayEnd, 600)
		if res.RecordedSeconds != 9*3600 {
			t.Errorf("recorded = %d, want clipped %d", res.RecordedSeconds, 9*3600)
		}
	})

	t.Run("zero day end means no clipping", func(t *testing.T) {
		res := tm.Stop(base.Add(10*time.Hour), time.Time{}, 600)
		if res.RecordedSeconds != 10*3600 {
			t.Errorf("recorded = %d, want %d", res.RecordedSeconds, 10*3600)
		}
	})
}

func TestResultRow(t *testing.T) {
	row := Result{Label: "집중", BaseIndex: 0, Seconds: 900, RecordedSeconds: 890}.Row()

	if row.Label != "집중" || row.Seconds != 900 || row.Source != activity.SourceExtra {
		t.Errorf("got %+v", row)
	}
	if row.RecordedSeconds == nil || *row.RecordedSeconds != 890 {
		t.Errorf("recorded = %v, want 890", row.RecordedSeconds)
	}
}
