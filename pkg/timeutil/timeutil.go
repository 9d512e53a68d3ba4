// Package timeutil provides the compact duration formatting shared by debug
// logging and console output.
package timeutil

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration the way debug tooling displays elapsed
// time: microseconds below 1ms, whole milliseconds below 1s, seconds with one
// decimal below a minute, then minutes and seconds.
func FormatDuration(d time.Duration) string {
	switch {
	case d < 0:
		return "0ms"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) - minutes*60
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}
