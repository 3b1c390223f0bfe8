package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tony816/dailyslot/internal/activity"
	"github.com/tony816/dailyslot/internal/grid"
)

// Cell styles for the unit grid line. Backgrounds distinguish planned,
// spent, locked and extra units at a glance.
var (
	cellActual  = lipgloss.NewStyle().Background(lipgloss.Color("30")).Foreground(lipgloss.Color("255"))
	cellPlanned = lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("250"))
	cellLocked  = lipgloss.NewStyle().Background(lipgloss.Color("130")).Foreground(lipgloss.Color("230"))
	cellExtra   = lipgloss.NewStyle().Background(lipgloss.Color("54")).Foreground(lipgloss.Color("255"))
	cellEmpty   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// DayView bundles everything needed to render one base.
type DayView struct {
	Date       string
	BaseIndex  int
	PlanUnits  []string
	Units      []bool
	Locked     []bool
	Extras     grid.ExtraAllocation
	Activities []activity.Activity
	Step       int
}

// RenderDay renders the unit grid, the per-label summary and a stats
// line for one base.
func RenderDay(v DayView) string {
	var sb strings.Builder

	sb.WriteString(formatHeader(fmt.Sprintf("%s  base %d", v.Date, v.BaseIndex)))
	sb.WriteString("\n")
	sb.WriteString(renderGridLine(v))
	sb.WriteString("\n")
	sb.WriteString("  " + legend() + "\n")

	if summary := FormatActivitiesSummary(v.Activities); summary != "" {
		sb.WriteString("  " + summary + "\n")
	}

	assigned, locked := totals(v.Activities)
	sb.WriteString("  " + formatStats(fmt.Sprintf("assigned %s", FormatDuration(assigned))))
	if locked > 0 {
		sb.WriteString(formatMuted(fmt.Sprintf("  locked %s", FormatDuration(locked))))
	}
	sb.WriteString("\n")

	return sb.String()
}

func renderGridLine(v DayView) string {
	// Wrap wide grids instead of letting the terminal break cells.
	perLine := termWidth() - 2
	if perLine < 1 {
		perLine = 1
	}

	var sb strings.Builder
	sb.WriteString("  ")
	for u := range v.PlanUnits {
		if u > 0 && u%perLine == 0 {
			sb.WriteString("\n  ")
		}
		sb.WriteString(cellFor(v, u).Render(cellRune(v, u)))
	}
	return sb.String()
}

func legend() string {
	return strings.Join([]string{
		colorActual.Sprint("spent"),
		colorPlanned.Sprint("planned"),
		colorLocked.Sprint("locked"),
	}, "  ")
}

func cellFor(v DayView, u int) lipgloss.Style {
	switch {
	case u < len(v.Locked) && v.Locked[u]:
		return cellLocked
	case u < len(v.Extras.ByIndex) && v.Extras.ByIndex[u] != "":
		return cellExtra
	case u < len(v.Units) && v.Units[u]:
		return cellActual
	case v.PlanUnits[u] != "":
		return cellPlanned
	default:
		return cellEmpty
	}
}

// cellRune picks the glyph for a unit: the first rune of its label, a
// lock marker, or a dot for empty space.
func cellRune(v DayView, u int) string {
	if u < len(v.Locked) && v.Locked[u] {
		return "#"
	}
	if u < len(v.Extras.ByIndex) && v.Extras.ByIndex[u] != "" {
		return firstRune(v.Extras.ByIndex[u])
	}
	if v.PlanUnits[u] != "" {
		return firstRune(v.PlanUnits[u])
	}
	return "·"
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return " "
}

func totals(acts []activity.Activity) (assigned, locked int) {
	for i := range acts {
		a := &acts[i]
		if a.IsLocked() {
			locked += a.Seconds
			continue
		}
		if a.Seconds > 0 {
			assigned += a.Seconds
		}
	}
	return assigned, locked
}
