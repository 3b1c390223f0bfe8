package ui

import (
	"fmt"
	"strings"

	"github.com/tony816/dailyslot/internal/summary"
)

const weekBarWidth = 24

// RenderWeek renders per-label totals for one week, largest first, with
// a proportional bar per label.
func RenderWeek(w *summary.WeekSummary) string {
	var sb strings.Builder

	sb.WriteString(formatHeader(fmt.Sprintf("%s ~ %s",
		w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))))
	sb.WriteString("\n")

	if len(w.Totals) == 0 {
		sb.WriteString("  " + formatMuted("no logged time") + "\n")
		return sb.String()
	}

	max := w.Totals[0].Seconds
	labelWidth := 0
	for _, lt := range w.Totals {
		if n := len([]rune(lt.Label)); n > labelWidth {
			labelWidth = n
		}
	}

	for _, lt := range w.Totals {
		bar := weekBarWidth * lt.Seconds / max
		if bar < 1 {
			bar = 1
		}
		sb.WriteString(fmt.Sprintf("  %-*s %s %s\n",
			labelWidth, lt.Label,
			colorActual.Sprint(strings.Repeat("█", bar)),
			FormatDurationKo(lt.Seconds)))
	}

	sb.WriteString("  " + formatStats(fmt.Sprintf("total %s over %d days",
		FormatDurationKo(w.TotalSeconds()), w.Days)))
	sb.WriteString("\n")
	return sb.String()
}
