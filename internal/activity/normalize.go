package activity

import (
	"math"
	"strings"
)

// TextNormalizer cleans free-form activity labels.
type TextNormalizer interface {
	NormalizeText(s string) string
}

// DurationNormalizer converts a raw numeric duration to whole seconds.
// The second return value is false when the input is not a finite number.
type DurationNormalizer interface {
	NormalizeSeconds(v float64) (int, bool)
}

// TextFunc adapts a function to the TextNormalizer interface.
type TextFunc func(string) string

// NormalizeText implements TextNormalizer.
func (f TextFunc) NormalizeText(s string) string { return f(s) }

// DurationFunc adapts a function to the DurationNormalizer interface.
type DurationFunc func(float64) (int, bool)

// NormalizeSeconds implements DurationNormalizer.
func (f DurationFunc) NormalizeSeconds(v float64) (int, bool) { return f(v) }

// Normalizer bundles the injectable helpers used while cleaning raw rows.
// Zero value falls back to the package defaults.
type Normalizer struct {
	Text     TextNormalizer
	Duration DurationNormalizer
}

// DefaultNormalizer returns a Normalizer using the package defaults.
func DefaultNormalizer() Normalizer {
	return Normalizer{
		Text:     TextFunc(NormalizeText),
		Duration: DurationFunc(NormalizeSeconds),
	}
}

// NormalizeLabel applies the configured text normalizer, falling back
// to the package default when none is set.
func (n Normalizer) NormalizeLabel(s string) string {
	if n.Text != nil {
		return n.Text.NormalizeText(s)
	}
	return NormalizeText(s)
}

// NormalizeDuration applies the configured duration normalizer, falling
// back to the package default when none is set.
func (n Normalizer) NormalizeDuration(v float64) (int, bool) {
	if n.Duration != nil {
		return n.Duration.NormalizeSeconds(v)
	}
	return NormalizeSeconds(v)
}

// NormalizeText trims a label, strips line breaks and tabs, and collapses
// runs of whitespace to a single space.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeSeconds floors a raw duration to a non-negative whole second
// count. Returns false for NaN or infinite input so callers can tell
// "explicitly zero" from "absent or invalid".
func NormalizeSeconds(v float64) (int, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	n := int(math.Floor(v))
	if n < 0 {
		n = 0
	}
	return n, true
}

// RoundSecondsToStep rounds a raw duration to the nearest multiple of
// step seconds, ties rounding up. Non-finite input yields 0. A step that
// is not a positive number falls back to DefaultStepSeconds.
func RoundSecondsToStep(v float64, step int) int {
	if step <= 0 {
		step = DefaultStepSeconds
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	n := int(math.Floor(v/float64(step)+0.5)) * step
	if n < 0 {
		n = 0
	}
	return n
}

// NormalizeActivities converts raw decoded records (as produced by
// encoding/json into []any) into canonical rows. Entries that are not
// objects are discarded. A row survives only when it has a label, a
// positive duration, or is a locked placeholder.
func NormalizeActivities(raw []any, n Normalizer) []Activity {
	out := make([]Activity, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok || m == nil {
			continue
		}

		a := normalizeRecord(m, n)
		if a.Label == "" && a.Seconds == 0 && a.Source != SourceLocked {
			continue
		}
		out = append(out, a)
	}
	return out
}

// NormalizePlanActivities extracts only label and seconds from raw
// records. Planned rows never carry grid or lock provenance, so all
// other metadata is dropped.
func NormalizePlanActivities(raw []any, n Normalizer) []Activity {
	out := make([]Activity, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok || m == nil {
			continue
		}

		label := n.NormalizeLabel(labelOf(m))
		secs := 0
		if v, ok := numberValue(m["seconds"]); ok {
			if s, ok := n.NormalizeDuration(v); ok {
				secs = s
			}
		}
		if label == "" && secs == 0 {
			continue
		}
		out = append(out, Activity{Label: label, Seconds: secs})
	}
	return out
}

func normalizeRecord(m map[string]any, n Normalizer) Activity {
	a := Activity{Label: n.NormalizeLabel(labelOf(m))}

	if v, ok := numberValue(m["seconds"]); ok {
		if s, ok := n.NormalizeDuration(v); ok {
			a.Seconds = s
		}
	}

	// Source survives only when it is a string.
	if s, ok := m["source"].(string); ok {
		a.Source = Source(s)
	}

	// recordedSeconds is carried only when the source value is finite;
	// explicit null and absence both drop the field.
	if v, ok := numberValue(m["recordedSeconds"]); ok {
		if s, ok := n.NormalizeDuration(v); ok {
			a.RecordedSeconds = &s
		}
	}

	if v, ok := numberValue(m["order"]); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
		o := int(math.Floor(v))
		if o < 0 {
			o = 0
		}
		a.Order = &o
	}

	if b, ok := m["isAutoLocked"].(bool); ok {
		a.IsAutoLocked = &b
	}

	if v, ok := finiteValue(m["lockStart"]); ok {
		s := int(math.Floor(v))
		a.LockStart = &s
	}
	if v, ok := finiteValue(m["lockEnd"]); ok {
		e := int(math.Floor(v))
		a.LockEnd = &e
	}

	if list, ok := m["lockUnits"].([]any); ok {
		var units []int
		for _, u := range list {
			if v, ok := finiteValue(u); ok {
				units = append(units, int(math.Floor(v)))
			}
		}
		a.LockUnits = units
	}

	return a
}

// labelOf resolves the display label, falling back to the legacy title
// field used by older persisted payloads.
func labelOf(m map[string]any) string {
	if s, ok := m["label"].(string); ok && s != "" {
		return s
	}
	if s, ok := m["title"].(string); ok {
		return s
	}
	return ""
}

// numberValue coerces the numeric shapes a decoded JSON payload can
// produce. Returns false for anything else, including nil.
func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func finiteValue(v any) (float64, bool) {
	f, ok := numberValue(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
