package grid

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tony816/dailyslot/internal/activity"
)

func TestSecondsByLabel(t *testing.T) {
	n := activity.DefaultNormalizer()

	got := SecondsByLabel(plan("AAB-B"), units("11011"), 600, n)
	want := map[string]int{"A": 1200, "B": 1200}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	t.Run("short actual grid reads as inactive", func(t *testing.T) {
		got := SecondsByLabel(plan("AAA"), units("1"), 600, n)
		if !reflect.DeepEqual(got, map[string]int{"A": 600}) {
			t.Errorf("got %v, want A:600", got)
		}
	})

	t.Run("active unplanned units contribute nothing", func(t *testing.T) {
		got := SecondsByLabel(plan("-A"), units("11"), 600, n)
		if !reflect.DeepEqual(got, map[string]int{"A": 600}) {
			t.Errorf("got %v, want A:600", got)
		}
	})
}

func TestUnitCountsByLabel(t *testing.T) {
	n := activity.DefaultNormalizer()
	got := UnitCountsByLabel(plan("ABAB"), units("1110"), n)
	want := map[string]int{"A": 2, "B": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAssignedSecondsByLabel(t *testing.T) {
	n := activity.DefaultNormalizer()
	acts := []activity.Activity{
		{Label: "A", Seconds: 600},
		{Label: " A", Seconds: 1200},
		{Label: "B", Seconds: -50},
		{Label: "", Seconds: 900},
	}

	sum := AssignedSecondsByLabel(acts, true, n)
	if !reflect.DeepEqual(sum, map[string]int{"A": 1800, "B": 0}) {
		t.Errorf("aggregated: got %v", sum)
	}

	last := AssignedSecondsByLabel(acts, false, n)
	if !reflect.DeepEqual(last, map[string]int{"A": 1200, "B": 0}) {
		t.Errorf("last wins: got %v", last)
	}
}

func TestSecondsForLabel(t *testing.T) {
	n := activity.DefaultNormalizer()

	resolve := func() (map[string]int, error) {
		return map[string]int{"focus": 3600}, nil
	}
	if got := SecondsForLabel(" focus ", resolve, n); got != 3600 {
		t.Errorf("got %d, want 3600", got)
	}
	if got := SecondsForLabel("other", resolve, n); got != 0 {
		t.Errorf("unknown label: got %d, want 0", got)
	}

	failing := func() (map[string]int, error) {
		return nil, errors.New("store unavailable")
	}
	if got := SecondsForLabel("focus", failing, n); got != 0 {
		t.Errorf("resolver failure must read as 0, got %d", got)
	}
	if got := SecondsForLabel("focus", nil, n); got != 0 {
		t.Errorf("nil resolver must read as 0, got %d", got)
	}
}
