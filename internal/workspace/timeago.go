package workspace

import (
	"fmt"
	"time"
)

// FormatTimeAgo renders a timestamp the way the workspace cards display it:
// "Just now" under a minute, then minutes, hours, days. A nil or zero
// timestamp also renders as "Just now" - records written moments ago can
// come back before the store has stamped them, so the blank case reads as
// freshly updated rather than "unknown".
func FormatTimeAgo(t *time.Time, now time.Time) string {
	if t == nil || t.IsZero() {
		return "Just now"
	}

	diff := now.Sub(*t)
	if diff < time.Minute {
		return "Just now"
	}
	if diff < time.Hour {
		return plural(int(diff/time.Minute), "minute")
	}
	if diff < 24*time.Hour {
		return plural(int(diff/time.Hour), "hour")
	}
	return plural(int(diff/(24*time.Hour)), "day")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
