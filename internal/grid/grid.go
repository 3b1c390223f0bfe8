// Package grid reconciles a day's planned-unit labels with the boolean
// actual-unit grid and the aggregated activity list. All functions are
// total: malformed or short input degrades to empty results.
package grid

import (
	"github.com/tony816/dailyslot/internal/activity"
)

// BlockRange is a maximal contiguous run of identical non-empty plan
// labels. End is exclusive.
type BlockRange struct {
	Start int
	End   int
	Label string
}

// BlockRangeAt returns the contiguous same-label block around unitIndex.
// Returns false when the index is out of bounds or the unit is unplanned.
// A toggle on a grid cell affects this whole block, not just the cell.
func BlockRangeAt(planUnits []string, unitIndex int) (BlockRange, bool) {
	if unitIndex < 0 || unitIndex >= len(planUnits) {
		return BlockRange{}, false
	}
	label := planUnits[unitIndex]
	if label == "" {
		return BlockRange{}, false
	}

	start := unitIndex
	for start > 0 && planUnits[start-1] == label {
		start--
	}
	end := unitIndex + 1
	for end < len(planUnits) && planUnits[end] == label {
		end++
	}
	return BlockRange{Start: start, End: end, Label: label}, true
}

// ExtraUnitCount returns the number of grid units an extra (non-plan)
// activity row occupies: the larger of assigned and recorded seconds in
// whole units, with any nonzero duration guaranteeing at least one unit
// so the row never becomes invisible on the grid.
func ExtraUnitCount(a activity.Activity, step int) int {
	if step <= 0 {
		step = activity.DefaultStepSeconds
	}

	assigned := a.Seconds
	if assigned < 0 {
		assigned = 0
	}
	recorded := a.Recorded()
	if recorded < 0 {
		recorded = 0
	}

	ua := assigned / step
	if assigned > 0 && ua == 0 {
		ua = 1
	}
	ur := recorded / step
	if recorded > 0 && ur == 0 {
		ur = 1
	}

	if ur > ua {
		return ur
	}
	return ua
}

// UnitsFromActivities reconstructs a boolean actual-unit grid from an
// activity list when no explicit grid is persisted. Demand per label is
// filled greedily left to right; only aggregate unit counts per label
// are preserved, not which specific units the user originally picked.
func UnitsFromActivities(planUnits []string, acts []activity.Activity, step int, n activity.Normalizer) []bool {
	if step <= 0 {
		step = activity.DefaultStepSeconds
	}

	remaining := make(map[string]int)
	for _, a := range acts {
		label := n.NormalizeLabel(a.Label)
		if label == "" || a.Seconds <= 0 {
			continue
		}
		remaining[label] += a.Seconds / step
	}

	units := make([]bool, len(planUnits))
	for i, label := range planUnits {
		label = n.NormalizeLabel(label)
		if label == "" {
			continue
		}
		if remaining[label] > 0 {
			units[i] = true
			remaining[label]--
		}
	}
	return units
}

// ActivitiesFromUnits aggregates active units into one grid-sourced row
// per label, in first-occurrence order of the plan. Labels with no
// active units are omitted.
func ActivitiesFromUnits(planUnits []string, actualUnits []bool, step int, n activity.Normalizer) []activity.Activity {
	if step <= 0 {
		step = activity.DefaultStepSeconds
	}

	counts := make(map[string]int)
	var order []string
	for i, label := range planUnits {
		if i >= len(actualUnits) || !actualUnits[i] {
			continue
		}
		label = n.NormalizeLabel(label)
		if label == "" {
			continue
		}
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	acts := make([]activity.Activity, 0, len(order))
	for _, label := range order {
		acts = append(acts, activity.Activity{
			Label:   label,
			Seconds: counts[label] * step,
			Source:  activity.SourceGrid,
		})
	}
	return acts
}
