package dates

import "time"

const layout = "2006-01-02"

// Range is an inclusive span of calendar dates, both ends formatted YYYY-MM-DD.
// Start is never after End.
type Range struct {
	Start string
	End   string
}

// Format renders t's calendar date as YYYY-MM-DD in t's location.
func Format(t time.Time) string {
	return t.Format(layout)
}

// PlusDays returns t shifted by n calendar days, formatted YYYY-MM-DD.
// The shift is calendar arithmetic, so it carries across month and year
// boundaries rather than adding n*24h.
func PlusDays(t time.Time, n int) string {
	return t.AddDate(0, 0, n).Format(layout)
}

// WeekAhead returns the range from t's calendar date through seven days later.
func WeekAhead(t time.Time) Range {
	return Range{Start: Format(t), End: PlusDays(t, 7)}
}

// Today returns the current local calendar date as YYYY-MM-DD.
func Today() string {
	return Format(time.Now())
}

// TodayPlusDays returns the local calendar date n days from now as YYYY-MM-DD.
func TodayPlusDays(n int) string {
	return PlusDays(time.Now(), n)
}
