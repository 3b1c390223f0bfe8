// Package summary aggregates saved days into per-label weekly totals.
package summary

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tony816/dailyslot/internal/activity"
	"github.com/tony816/dailyslot/internal/dateutil"
)

// DayLoader is the slice of the store a week summary needs.
type DayLoader interface {
	LoadDay(ctx context.Context, date string, baseIndex int) (units []bool, raw []any, err error)
}

// LabelTotal is one label's aggregated seconds over a range of days.
type LabelTotal struct {
	Label   string
	Seconds int
}

// WeekSummary holds per-label totals for one Monday-to-Sunday week.
type WeekSummary struct {
	Start  time.Time
	End    time.Time
	Totals []LabelTotal
	Days   int // days in the range that had any saved rows
}

// TotalSeconds sums across all labels.
func (w *WeekSummary) TotalSeconds() int {
	total := 0
	for _, lt := range w.Totals {
		total += lt.Seconds
	}
	return total
}

// BuildWeekSummary loads every base of every day in the week containing
// ref and aggregates assigned seconds per label. Locked placeholder rows
// carry no label and are excluded; only time the user attributed counts.
func BuildWeekSummary(ctx context.Context, loader DayLoader, ref time.Time, bases int, n activity.Normalizer) (*WeekSummary, error) {
	if bases < 1 {
		bases = 1
	}
	start, end := dateutil.WeekRange(ref)

	byLabel := make(map[string]int)
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateutil.DayKey)
		dayHasRows := false
		for b := 0; b < bases; b++ {
			_, raw, err := loader.LoadDay(ctx, key, b)
			if err != nil {
				return nil, fmt.Errorf("loading %s base %d: %w", key, b, err)
			}
			for _, a := range activity.NormalizeActivities(raw, n) {
				if a.IsLocked() || a.Label == "" || a.Seconds <= 0 {
					continue
				}
				byLabel[a.Label] += a.Seconds
				dayHasRows = true
			}
		}
		if dayHasRows {
			days++
		}
	}

	totals := make([]LabelTotal, 0, len(byLabel))
	for label, secs := range byLabel {
		totals = append(totals, LabelTotal{Label: label, Seconds: secs})
	}
	// Largest first; ties break alphabetically so output is stable.
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Seconds != totals[j].Seconds {
			return totals[i].Seconds > totals[j].Seconds
		}
		return totals[i].Label < totals[j].Label
	})

	return &WeekSummary{Start: start, End: end, Totals: totals, Days: days}, nil
}
