package output

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration the way run reports expect:
// seconds with two decimals under a minute, coarser units above it
// with sub-second noise rounded away.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}
