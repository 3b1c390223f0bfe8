package ui

import (
	"fmt"
	"strings"

	"github.com/tony816/dailyslot/internal/activity"
)

// FormatDurationKo formats a second count as a Korean duration,
// e.g. 5400 -> "1시간 30분".
func FormatDurationKo(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	mins := (seconds % 3600) / 60

	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%d시간 %d분", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%d시간", hours)
	default:
		return fmt.Sprintf("%d분", mins)
	}
}

// FormatActivitiesSummary renders labeled rows into a one-line summary,
// e.g. "집중 1시간 · 휴식 30분 (총 1시간 30분)". Unlabeled and
// zero-duration rows are skipped; an empty result yields "".
func FormatActivitiesSummary(acts []activity.Activity) string {
	var parts []string
	total := 0
	for i := range acts {
		a := &acts[i]
		if a.Label == "" || a.Seconds <= 0 {
			continue
		}
		parts = append(parts, a.Label+" "+FormatDurationKo(a.Seconds))
		total += a.Seconds
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " · ") + " (총 " + FormatDurationKo(total) + ")"
}

// FormatDuration formats seconds as a compact duration, e.g. "1h30m".
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "0m"
	}
	mins := seconds / 60
	hours := mins / 60
	mins = mins % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}
