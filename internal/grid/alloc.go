package grid

import (
	"github.com/tony816/dailyslot/internal/activity"
)

// ExtraAllocation maps extra-activity labels onto specific grid units.
// ByIndex holds the extra label occupying each unit (empty string when
// none). ByLabel lists each label's units in assignment order, which is
// descending for the default tail-first fill.
type ExtraAllocation struct {
	ByIndex []string
	ByLabel map[string][]int
}

// RowOrder places extra rows relative to the rest of the activity list.
// An extra whose row index precedes the first grid-sourced row fills
// candidate units head-first; everything else fills tail-first, the
// calendar default of unordered extra time landing at the end of the day.
type RowOrder struct {
	// FirstGridRow is the list index of the first grid-sourced row,
	// or -1 when the list has none.
	FirstGridRow int
}

// AllocateExtras assigns each extra activity's units on the grid.
// Candidate units are plan-labeled-but-inactive or fully unplanned
// units, minus anything in lockedUnits. orderIndices carries each
// extra's row index in the full activity list, aligned with extras;
// it may be nil when no ordering context exists.
func AllocateExtras(
	planUnits []string,
	actualUnits []bool,
	extras []activity.Activity,
	orderIndices []int,
	lockedUnits []bool,
	order *RowOrder,
	planLabels map[string]bool,
	step int,
) ExtraAllocation {
	if step <= 0 {
		step = activity.DefaultStepSeconds
	}

	n := len(planUnits)
	alloc := ExtraAllocation{
		ByIndex: make([]string, n),
		ByLabel: make(map[string][]int),
	}

	available := make([]bool, n)
	for u := 0; u < n; u++ {
		if u < len(lockedUnits) && lockedUnits[u] {
			continue
		}
		active := u < len(actualUnits) && actualUnits[u]
		if planUnits[u] == "" || !active {
			available[u] = true
		}
	}

	for i := range extras {
		row := &extras[i]
		label := row.Label
		if label == "" {
			continue
		}
		if planLabels != nil && planLabels[label] {
			// Plan-labeled rows belong to the grid, not the extras.
			continue
		}

		needed := ExtraUnitCount(*row, step)
		if needed == 0 {
			continue
		}

		headFirst := false
		if order != nil && order.FirstGridRow >= 0 && i < len(orderIndices) {
			headFirst = orderIndices[i] < order.FirstGridRow
		}

		if headFirst {
			for u := 0; u < n && needed > 0; u++ {
				if !available[u] {
					continue
				}
				available[u] = false
				alloc.ByIndex[u] = label
				alloc.ByLabel[label] = append(alloc.ByLabel[label], u)
				needed--
			}
		} else {
			for u := n - 1; u >= 0 && needed > 0; u-- {
				if !available[u] {
					continue
				}
				available[u] = false
				alloc.ByIndex[u] = label
				alloc.ByLabel[label] = append(alloc.ByLabel[label], u)
				needed--
			}
		}
	}

	return alloc
}
