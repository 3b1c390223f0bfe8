package grid

import (
	"github.com/tony816/dailyslot/internal/activity"
)

// LockedUnits resolves which units of a base are locked, combining
// explicitly owned units of manual and auto lock rows with a derived
// deficit auto-lock. The grid must account for exactly as many units as
// there are assigned seconds, either by a labeled row or by a lock
// placeholder; any shortfall is locked from the tail of the plan-labeled
// unit sequence, skipping units a manual lock already owns.
func LockedUnits(planUnits []string, acts []activity.Activity, step int) []bool {
	if step <= 0 {
		step = activity.DefaultStepSeconds
	}
	n := len(planUnits)
	manual := make([]bool, n)
	auto := make([]bool, n)

	hasAutoRows := false
	for i := range acts {
		a := &acts[i]
		if !a.IsLocked() {
			continue
		}
		mask := auto
		if a.IsManualLock() {
			mask = manual
		} else {
			hasAutoRows = true
		}
		for _, u := range a.OwnedUnits(n) {
			mask[u] = true
		}
	}

	// No explicit auto rows: derive the deficit lock from assignment
	// totals. Active units are the plan-labeled ones; without a
	// persisted grid a plan label's units all count toward its total.
	if !hasAutoRows {
		assigned := 0
		for _, a := range acts {
			if a.IsLocked() {
				continue
			}
			if a.Seconds > 0 {
				assigned += a.Seconds
			}
		}

		var active []int
		for u, label := range planUnits {
			if label != "" {
				active = append(active, u)
			}
		}

		total := len(active) * step
		if assigned < total {
			deficit := total - assigned
			units := deficit / step
			if units*step < deficit {
				units++
			}
			for i := len(active) - 1; i >= 0 && units > 0; i-- {
				u := active[i]
				if manual[u] {
					continue
				}
				auto[u] = true
				units--
			}
		}
	}

	locked := make([]bool, n)
	for u := 0; u < n; u++ {
		locked[u] = manual[u] || auto[u]
	}
	return locked
}

// RebuildLockedRows is the inverse of LockedUnits: it emits one locked
// row per maximal contiguous run of the mask, carrying explicit
// LockUnits plus the derived LockStart/LockEnd bounds kept for older
// payloads that predate the unit list.
func RebuildLockedRows(mask []bool, isAuto bool, step int) []activity.Activity {
	if step <= 0 {
		step = activity.DefaultStepSeconds
	}

	var rows []activity.Activity
	n := len(mask)
	for u := 0; u < n; u++ {
		if !mask[u] {
			continue
		}
		start := u
		for u < n && mask[u] {
			u++
		}
		end := u // exclusive

		units := make([]int, 0, end-start)
		for i := start; i < end; i++ {
			units = append(units, i)
		}
		secs := activity.RoundSecondsToStep(float64(len(units)*step), step)

		rows = append(rows, activity.Activity{
			Source:          activity.SourceLocked,
			Seconds:         secs,
			RecordedSeconds: activity.IntPtr(secs),
			IsAutoLocked:    activity.BoolPtr(isAuto),
			LockStart:       activity.IntPtr(start),
			LockEnd:         activity.IntPtr(end - 1),
			LockUnits:       units,
		})
	}
	return rows
}
