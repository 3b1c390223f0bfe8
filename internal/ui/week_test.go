package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/tony816/dailyslot/internal/summary"
)

func TestRenderWeek(t *testing.T) {
	DisableColor()
	defer EnableColor()

	w := &summary.WeekSummary{
		Start: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC),
		Totals: []summary.LabelTotal{
			{Label: "집중", Seconds: 7200},
			{Label: "휴식", Seconds: 1800},
		},
		Days: 3,
	}

	out := RenderWeek(w)

	if !strings.Contains(out, "2026-03-02 ~ 2026-03-08") {
		t.Errorf("header missing:\n%s", out)
	}
	if !strings.Contains(out, "집중") || !strings.Contains(out, "2시간") {
		t.Errorf("top label missing:\n%s", out)
	}
	if !strings.Contains(out, "total 2시간 30분 over 3 days") {
		t.Errorf("total line missing:\n%s", out)
	}

	// Smaller labels still get a visible bar.
	lines := strings.Split(out, "\n")
	var restLine string
	for _, l := range lines {
		if strings.Contains(l, "휴식") {
			restLine = l
		}
	}
	if !strings.Contains(restLine, "█") {
		t.Errorf("small label has no bar: %q", restLine)
	}
}

func TestRenderWeekEmpty(t *testing.T) {
	DisableColor()
	defer EnableColor()

	w := &summary.WeekSummary{
		Start: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC),
	}
	if out := RenderWeek(w); !strings.Contains(out, "no logged time") {
		t.Errorf("got:\n%s", out)
	}
}
