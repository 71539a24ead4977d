package ledger

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// Journey describes how long ago the first scan happened.
func Journey(firstScan, now time.Time) string {
	if firstScan.IsZero() {
		return "Not started yet"
	}
	days := int(now.Sub(firstScan) / day)
	switch {
	case days < 1:
		return "Today!"
	case days < 30:
		return fmt.Sprintf("%d days ago", days)
	default:
		return fmt.Sprintf("%d months ago", days/30)
	}
}
