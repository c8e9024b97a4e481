package workout

import "fmt"

// FormatClock renders seconds as M:SS. Minutes are unbounded and negative
// input is clamped to zero.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
