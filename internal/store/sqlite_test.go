package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/tony816/dailyslot/internal/activity"
	"github.com/tony816/dailyslot/internal/timer"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDayRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	n := activity.DefaultNormalizer()

	units := []bool{true, true, false, false}
	acts := []activity.Activity{
		{Label: "집중", Seconds: 1200, Source: activity.SourceGrid},
		{
			Source:          activity.SourceLocked,
			Seconds:         1200,
			RecordedSeconds: activity.IntPtr(1200),
			IsAutoLocked:    activity.BoolPtr(true),
			LockStart:       activity.IntPtr(2),
			LockEnd:         activity.IntPtr(3),
			LockUnits:       []int{2, 3},
		},
	}

	if err := s.SaveDay(ctx, "2026-03-02", 0, units, acts); err != nil {
		t.Fatalf("save: %v", err)
	}

	gotUnits, raw, err := s.LoadDay(ctx, "2026-03-02", 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(gotUnits, units) {
		t.Errorf("units = %v, want %v", gotUnits, units)
	}

	got := activity.NormalizeActivities(raw, n)
	if !reflect.DeepEqual(got, acts) {
		t.Errorf("rows did not survive the round trip:\ngot  %+v\nwant %+v", got, acts)
	}
}

func TestDayLastWriteWins(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveDay(ctx, "2026-03-02", 0, []bool{true}, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveDay(ctx, "2026-03-02", 0, []bool{false}, []activity.Activity{{Label: "x", Seconds: 600}}); err != nil {
		t.Fatal(err)
	}

	units, raw, err := s.LoadDay(ctx, "2026-03-02", 0)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(units, []bool{false}) || len(raw) != 1 {
		t.Errorf("second write must win: units %v, %d rows", units, len(raw))
	}
}

func TestDayMissingReadsEmpty(t *testing.T) {
	s := openTestStore(t)

	units, raw, err := s.LoadDay(context.Background(), "2026-03-02", 0)
	if err != nil || units != nil || raw != nil {
		t.Errorf("got (%v, %v, %v), want all nil", units, raw, err)
	}
}

func TestDayBasesIsolated(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveDay(ctx, "2026-03-02", 0, []bool{true}, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveDay(ctx, "2026-03-02", 1, []bool{false, false}, nil); err != nil {
		t.Fatal(err)
	}

	u0, _, _ := s.LoadDay(ctx, "2026-03-02", 0)
	u1, _, _ := s.LoadDay(ctx, "2026-03-02", 1)
	if len(u0) != 1 || len(u1) != 2 {
		t.Errorf("bases bled into each other: %v / %v", u0, u1)
	}
}

func TestPlanRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	plan := []string{"집중", "집중", "", "휴식"}
	if err := s.SavePlan(ctx, "2026-03-02", 0, plan); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadPlan(ctx, "2026-03-02", 0)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, plan) {
		t.Errorf("got %v, want %v", got, plan)
	}

	missing, err := s.LoadPlan(ctx, "2026-03-03", 0)
	if err != nil || missing != nil {
		t.Errorf("missing plan: got (%v, %v), want (nil, nil)", missing, err)
	}
}

func TestTimerLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, running, err := s.LoadTimer(ctx); err != nil || running {
		t.Fatalf("fresh store: running=%v err=%v", running, err)
	}

	started := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	if err := s.SaveTimer(ctx, timer.Start("집중", 1, started)); err != nil {
		t.Fatal(err)
	}

	got, running, err := s.LoadTimer(ctx)
	if err != nil || !running {
		t.Fatalf("running=%v err=%v", running, err)
	}
	if got.Label != "집중" || got.BaseIndex != 1 || !got.StartedAt.Equal(started) {
		t.Errorf("got %+v", got)
	}

	// A second save replaces the first; there is only ever one timer.
	if err := s.SaveTimer(ctx, timer.Start("휴식", 0, started.Add(time.Hour))); err != nil {
		t.Fatal(err)
	}
	got, _, _ = s.LoadTimer(ctx)
	if got.Label != "휴식" {
		t.Errorf("replacement save: got %q, want 휴식", got.Label)
	}

	if err := s.ClearTimer(ctx); err != nil {
		t.Fatal(err)
	}
	if _, running, _ := s.LoadTimer(ctx); running {
		t.Error("timer survived clear")
	}
}

func TestLoadDayToleratesCorruptPayload(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO day_slots (date, base_index, units, activities, saved_at)
		VALUES ('2026-03-02', 0, 'not json', '{broken', '2026-03-02T10:00:00Z')
	`)
	if err != nil {
		t.Fatal(err)
	}

	units, raw, err := s.LoadDay(ctx, "2026-03-02", 0)
	if err != nil {
		t.Fatalf("corrupt payload must not fail the load: %v", err)
	}
	if units != nil || raw != nil {
		t.Errorf("corrupt payload must read as empty, got %v / %v", units, raw)
	}
}
