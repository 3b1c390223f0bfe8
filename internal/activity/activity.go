// Package activity defines the core domain types for dailyslot.
package activity

// DefaultStepSeconds is the default size of one time unit (10 minutes).
const DefaultStepSeconds = 600

// Source describes where an activity row's duration comes from.
type Source string

const (
	// SourceNone marks a row with no recorded provenance.
	SourceNone Source = ""
	// SourceGrid marks a row derived from counting active plan units.
	SourceGrid Source = "grid"
	// SourceExtra marks a row whose label is not part of the day plan.
	SourceExtra Source = "extra"
	// SourceLocked marks a placeholder row that owns units without a label.
	SourceLocked Source = "locked"
)

// Activity is one row of the actual-time list for a base. Pointer fields
// are optional: nil means the field was absent in the persisted record.
type Activity struct {
	ID              int64
	Label           string
	Seconds         int
	Source          Source
	RecordedSeconds *int
	Order           *int
	IsAutoLocked    *bool
	LockStart       *int
	LockEnd         *int
	LockUnits       []int
}

// IsLocked returns true if the row is a locked placeholder.
func (a *Activity) IsLocked() bool {
	return a.Source == SourceLocked
}

// IsManualLock returns true if the row is a user-created lock.
// Absence of IsAutoLocked means auto.
func (a *Activity) IsManualLock() bool {
	return a.IsLocked() && a.IsAutoLocked != nil && !*a.IsAutoLocked
}

// Recorded returns the recorded duration, falling back to assigned seconds.
func (a *Activity) Recorded() int {
	if a.RecordedSeconds != nil {
		return *a.RecordedSeconds
	}
	return a.Seconds
}

// OwnedUnits returns the unit indices this locked row owns, filtered to
// [0, unitCount). Explicit LockUnits win; otherwise the inclusive
// LockStart..LockEnd range is used (in either order).
func (a *Activity) OwnedUnits(unitCount int) []int {
	if len(a.LockUnits) > 0 {
		var units []int
		seen := make(map[int]bool)
		for _, u := range a.LockUnits {
			if u < 0 || u >= unitCount || seen[u] {
				continue
			}
			seen[u] = true
			units = append(units, u)
		}
		return units
	}

	if a.LockStart == nil || a.LockEnd == nil {
		return nil
	}
	lo, hi := *a.LockStart, *a.LockEnd
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 {
		lo = 0
	}
	if hi >= unitCount {
		hi = unitCount - 1
	}
	var units []int
	for u := lo; u <= hi; u++ {
		units = append(units, u)
	}
	return units
}

// Clone returns a deep copy of the row.
func (a Activity) Clone() Activity {
	c := a
	c.RecordedSeconds = cloneIntPtr(a.RecordedSeconds)
	c.Order = cloneIntPtr(a.Order)
	c.LockStart = cloneIntPtr(a.LockStart)
	c.LockEnd = cloneIntPtr(a.LockEnd)
	if a.IsAutoLocked != nil {
		b := *a.IsAutoLocked
		c.IsAutoLocked = &b
	}
	if a.LockUnits != nil {
		c.LockUnits = append([]int(nil), a.LockUnits...)
	}
	return c
}

// CloneList returns a deep copy of an activity list.
func CloneList(acts []Activity) []Activity {
	if acts == nil {
		return nil
	}
	out := make([]Activity, len(acts))
	for i, a := range acts {
		out[i] = a.Clone()
	}
	return out
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// IntPtr returns a pointer to v. Convenience for optional fields.
func IntPtr(v int) *int { return &v }

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool { return &v }
