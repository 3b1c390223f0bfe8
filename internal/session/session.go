// Package session manages an in-progress edit of one base's actual
// time: the row list, the unit grid, and the clamp-to-assigned
// invariant that keeps them agreeing on totals.
package session

import (
	"github.com/tony816/dailyslot/internal/activity"
	"github.com/tony816/dailyslot/internal/grid"
)

// Session is the state of a modal edit over a single base. Mutating
// operations re-derive the deficit auto-lock after every change, so the
// grid never silently disagrees with the list about total duration.
type Session struct {
	BaseIndex    int
	PlanUnits    []string
	Units        []bool
	Activities   []activity.Activity
	Step         int
	TotalSeconds int
	HasPlanUnits bool
	PlanLabels   map[string]bool
	Dirty        bool
	ActiveRow    int

	norm activity.Normalizer
}

// New seeds a session. When existing rows are present they are
// normalized and used as-is: a planned label the user removed stays
// removed. Only an empty list falls back to rebuilding rows from the
// grid. gridUnits is copied and padded or clipped to the plan length.
func New(baseIndex int, planUnits []string, gridUnits []bool, existing []any, step int, n activity.Normalizer) *Session {
	if step <= 0 {
		step = activity.DefaultStepSeconds
	}

	units := make([]bool, len(planUnits))
	for i := range units {
		if i < len(gridUnits) {
			units[i] = gridUnits[i]
		}
	}

	hasPlan := false
	labels := make(map[string]bool)
	for _, l := range planUnits {
		if l != "" {
			hasPlan = true
			labels[n.NormalizeLabel(l)] = true
		}
	}

	acts := activity.NormalizeActivities(existing, n)
	if len(acts) == 0 {
		acts = grid.ActivitiesFromUnits(planUnits, units, step, n)
	}

	return &Session{
		BaseIndex:    baseIndex,
		PlanUnits:    append([]string(nil), planUnits...),
		Units:        units,
		Activities:   acts,
		Step:         step,
		TotalSeconds: len(planUnits) * step,
		HasPlanUnits: hasPlan,
		PlanLabels:   labels,
		norm:         n,
	}
}

// ApplyDurationChange sets a row's seconds to the step-rounded target.
// Time is never redistributed to or from other rows; the unassigned
// remainder becomes a deficit lock instead.
func (s *Session) ApplyDurationChange(index int, targetSeconds float64) {
	if index < 0 || index >= len(s.Activities) {
		return
	}
	s.Activities[index].Seconds = activity.RoundSecondsToStep(targetSeconds, s.Step)
	s.Dirty = true
	s.ClampToAssigned()
}

// AddRow appends a row claiming the full unassigned remainder of the
// base, floored at zero. Label and source come from defaults.
func (s *Session) AddRow(defaults activity.Activity) {
	remainder := s.TotalSeconds - s.assignedTotal()
	if remainder < 0 {
		remainder = 0
	}

	row := defaults.Clone()
	row.Label = s.norm.NormalizeLabel(row.Label)
	row.Seconds = remainder
	s.Activities = append(s.Activities, row)
	s.Dirty = true
	s.ClampToAssigned()
}

// RemoveRow deletes a row. Its seconds are not redistributed; total
// assigned time may drop below the grid total.
func (s *Session) RemoveRow(index int) {
	if index < 0 || index >= len(s.Activities) {
		return
	}
	s.Activities = append(s.Activities[:index], s.Activities[index+1:]...)
	if s.ActiveRow >= len(s.Activities) && s.ActiveRow > 0 {
		s.ActiveRow--
	}
	s.Dirty = true
	s.ClampToAssigned()
}

// MoveRow swaps a row with its neighbor (direction ±1) and renumbers
// every row's Order field to its new list position so the ordering
// survives persistence.
func (s *Session) MoveRow(index, direction int) {
	target := index + direction
	if index < 0 || index >= len(s.Activities) {
		return
	}
	if target < 0 || target >= len(s.Activities) {
		return
	}

	s.Activities[index], s.Activities[target] = s.Activities[target], s.Activities[index]
	for i := range s.Activities {
		s.Activities[i].Order = activity.IntPtr(i)
	}
	s.Dirty = true
}

// AdjustDuration steps a row's seconds by one unit in the given
// direction. Decrementing floors at zero and never wraps around.
func (s *Session) AdjustDuration(index, direction int) {
	if index < 0 || index >= len(s.Activities) {
		return
	}
	next := s.Activities[index].Seconds + direction*s.Step
	if next < 0 {
		next = 0
	}
	if next == s.Activities[index].Seconds {
		return
	}
	s.Activities[index].Seconds = next
	s.Dirty = true
	s.ClampToAssigned()
}

// SetActiveRow moves the row cursor, clamped to the list bounds.
func (s *Session) SetActiveRow(index int) {
	if index < 0 {
		index = 0
	}
	if max := len(s.Activities) - 1; index > max && max >= 0 {
		index = max
	}
	s.ActiveRow = index
}

// ClampToAssigned re-derives the deficit auto-lock. The accounted unit
// pool is the union of grid-active units and units the current auto
// lock owns; if assigned seconds fall short of the pool total, tail
// pool units are deactivated and a single auto lock row carries the
// deficit. When assigned covers the pool the auto lock is removed and
// its units reactivate. Calling this twice without an intervening
// mutation changes nothing.
func (s *Session) ClampToAssigned() {
	n := len(s.Units)

	pool := append([]bool(nil), s.Units...)
	manual := make([]bool, n)
	autoRows := 0
	firstAutoRow := -1
	for i := range s.Activities {
		a := &s.Activities[i]
		if !a.IsLocked() {
			continue
		}
		if a.IsManualLock() {
			for _, u := range a.OwnedUnits(n) {
				manual[u] = true
			}
			continue
		}
		autoRows++
		if firstAutoRow < 0 {
			firstAutoRow = i
		}
		for _, u := range a.OwnedUnits(n) {
			pool[u] = true
		}
	}

	poolUnits := 0
	for u := 0; u < n; u++ {
		if pool[u] {
			poolUnits++
		}
	}

	assigned := s.assignedTotal()
	deficit := poolUnits*s.Step - assigned

	want := make([]bool, n)
	if deficit > 0 {
		units := deficit / s.Step
		if units*s.Step < deficit {
			units++
		}
		for u := n - 1; u >= 0 && units > 0; u-- {
			if !pool[u] || manual[u] {
				continue
			}
			want[u] = true
			units--
		}
	}

	if autoRows == 1 && maskEqual(want, s.lockMask(firstAutoRow)) {
		// Unchanged lock; avoid row churn so the clamp stays idempotent.
		return
	}

	// Drop existing auto rows and rebuild from the desired mask.
	kept := s.Activities[:0]
	insertAt := -1
	for i := range s.Activities {
		a := s.Activities[i]
		if a.IsLocked() && !a.IsManualLock() {
			if insertAt < 0 {
				insertAt = len(kept)
			}
			continue
		}
		kept = append(kept, a)
	}
	s.Activities = kept

	rows := buildAutoLockRows(want, s.Step)
	if len(rows) > 0 {
		if insertAt < 0 || insertAt > len(s.Activities) {
			insertAt = len(s.Activities)
		}
		s.Activities = append(s.Activities[:insertAt], append(rows, s.Activities[insertAt:]...)...)
	}

	// Grid shows pool units as active except those the lock now owns.
	for u := 0; u < n; u++ {
		s.Units[u] = pool[u] && !want[u]
	}
}

// buildAutoLockRows collapses the mask into a single auto lock row
// owning every locked unit, so the deficit is carried by one
// placeholder rather than one row per run.
func buildAutoLockRows(mask []bool, step int) []activity.Activity {
	var units []int
	for u, locked := range mask {
		if locked {
			units = append(units, u)
		}
	}
	if len(units) == 0 {
		return nil
	}

	secs := len(units) * step
	return []activity.Activity{{
		Source:          activity.SourceLocked,
		Seconds:         secs,
		RecordedSeconds: activity.IntPtr(secs),
		IsAutoLocked:    activity.BoolPtr(true),
		LockStart:       activity.IntPtr(units[0]),
		LockEnd:         activity.IntPtr(units[len(units)-1]),
		LockUnits:       units,
	}}
}

// lockMask returns the unit mask owned by the lock row at index.
func (s *Session) lockMask(index int) []bool {
	mask := make([]bool, len(s.Units))
	if index < 0 || index >= len(s.Activities) {
		return mask
	}
	for _, u := range s.Activities[index].OwnedUnits(len(s.Units)) {
		mask[u] = true
	}
	return mask
}

// assignedTotal sums assigned seconds across non-locked rows.
func (s *Session) assignedTotal() int {
	total := 0
	for i := range s.Activities {
		a := &s.Activities[i]
		if a.IsLocked() {
			continue
		}
		if a.Seconds > 0 {
			total += a.Seconds
		}
	}
	return total
}

// LockedSecondsTotal sums seconds across locked rows.
func (s *Session) LockedSecondsTotal() int {
	total := 0
	for i := range s.Activities {
		if s.Activities[i].IsLocked() {
			total += s.Activities[i].Seconds
		}
	}
	return total
}

// AssignedSecondsTotal sums assigned seconds across non-locked rows.
func (s *Session) AssignedSecondsTotal() int {
	return s.assignedTotal()
}

// Finalize returns the rows to persist. Rows that lost both label and
// duration are dropped (locked placeholders stay while they own units);
// total assigned seconds are not forced to match the base total, so an
// under-assigned day persists as-is.
func (s *Session) Finalize() []activity.Activity {
	out := make([]activity.Activity, 0, len(s.Activities))
	for i := range s.Activities {
		a := s.Activities[i]
		if a.Label == "" && a.Seconds == 0 && !a.IsLocked() {
			continue
		}
		out = append(out, a.Clone())
	}
	return out
}

func maskEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
