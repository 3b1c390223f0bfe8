package grid

import (
	"github.com/tony816/dailyslot/internal/activity"
)

// SecondsByLabel sums step seconds for each active unit, keyed by
// normalized non-empty label.
func SecondsByLabel(planUnits []string, actualUnits []bool, step int, n activity.Normalizer) map[string]int {
	if step <= 0 {
		step = activity.DefaultStepSeconds
	}
	out := make(map[string]int)
	for i, label := range planUnits {
		if i >= len(actualUnits) || !actualUnits[i] {
			continue
		}
		label = n.NormalizeLabel(label)
		if label == "" {
			continue
		}
		out[label] += step
	}
	return out
}

// UnitCountsByLabel counts active units per normalized non-empty label.
func UnitCountsByLabel(planUnits []string, actualUnits []bool, n activity.Normalizer) map[string]int {
	out := make(map[string]int)
	for i, label := range planUnits {
		if i >= len(actualUnits) || !actualUnits[i] {
			continue
		}
		label = n.NormalizeLabel(label)
		if label == "" {
			continue
		}
		out[label]++
	}
	return out
}

// AssignedSecondsByLabel aggregates the assigned seconds of rows by
// normalized label. With aggregateDuplicates, repeated labels sum;
// otherwise the last row wins.
func AssignedSecondsByLabel(acts []activity.Activity, aggregateDuplicates bool, n activity.Normalizer) map[string]int {
	out := make(map[string]int)
	for _, a := range acts {
		label := n.NormalizeLabel(a.Label)
		if label == "" {
			continue
		}
		secs := a.Seconds
		if secs < 0 {
			secs = 0
		}
		if aggregateDuplicates {
			out[label] += secs
		} else {
			out[label] = secs
		}
	}
	return out
}

// SecondsForLabel looks up the normalized label in a lazily resolved
// seconds map. Resolver failures are swallowed and read as 0.
func SecondsForLabel(label string, resolve func() (map[string]int, error), n activity.Normalizer) int {
	if resolve == nil {
		return 0
	}
	m, err := resolve()
	if err != nil || m == nil {
		return 0
	}
	return m[n.NormalizeLabel(label)]
}
