package view

import "time"

// Display styles for show times.
const (
	StyleFull   = "full"   // Monday January, 2, 2006 at 3:04PM
	StyleMedium = "medium" // Mon Jan, 02, 2006 3:04PM
)

// FormatDateTime renders t for display. Unknown styles fall back to medium.
func FormatDateTime(t time.Time, style string) string {
	if style == StyleFull {
		return t.Format("Monday January, 2, 2006 at 3:04PM")
	}
	return t.Format("Mon Jan, 02, 2006 3:04PM")
}
