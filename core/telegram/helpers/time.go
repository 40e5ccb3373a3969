package helpers

import "time"

const (
	dateTimeLayout = "02.01.2006 15:04:05"
	dateLayout     = "02.01.2006"
)

// FormatDateTime renders a timestamp the way operator-facing messages
// expect it: dd.mm.yyyy hh:mm:ss in local time.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateTimeLayout)
}

// FormatDate renders the date part only (dd.mm.yyyy).
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateLayout)
}
