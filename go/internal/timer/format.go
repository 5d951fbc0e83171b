package timer

import "fmt"

// FormatClock renders seconds as MM:SS, or HH:MM:SS from one hour up.
func FormatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	h, m, s := secs/3600, secs/60%60, secs%60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatText renders the chat form of the remaining time, for example
// "04:59 (m:s) until round end (paused).".
func FormatText(secs int, paused bool) string {
	unit := " (m:s)"
	if secs >= 3600 {
		unit = " (h:m:s)"
	}
	status := "."
	if paused {
		status = " (paused)."
	}
	return FormatClock(secs) + unit + " until round end" + status
}
