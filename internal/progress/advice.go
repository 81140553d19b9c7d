// ABOUTME: Training advice derived from the trend.
// ABOUTME: Maps trend and session count to a short suggestion.
package progress

// establishedSessions is the session count from which progress is considered established.
const establishedSessions = 6

// adviceTable is searched top to bottom; the first row whose trend matches
// and whose minSessions is met wins.
var adviceTable = []struct {
	trend       Trend
	minSessions int
	text        string
}{
	{Progressing, establishedSessions, "Consistent progress over many sessions. Keep the program and add weight in small steps."},
	{Progressing, 0, "Early progress looks good. Keep logging sessions to confirm the trend."},
	{Stalling, 0, "Progress has levelled off. Try changing the rep range, adding a set, or taking a deload week."},
	{Declining, 0, "Performance is dropping. Check sleep, nutrition and recovery, and consider a lighter week."},
	{InsufficientData, 0, "Not enough finished sessions yet. Log at least four sessions of this exercise to see a trend."},
}

// Advice returns the coaching text for a trend and the number of sessions it
// was computed from.
func Advice(trend Trend, sessionCount int) string {
	for _, row := range adviceTable {
		if row.trend == trend && sessionCount >= row.minSessions {
			return row.text
		}
	}
	return Advice(InsufficientData, 0)
}
