package weather

import "time"

// DayOfWeek returns the long weekday name for a forecast date or timestamp.
// Unparseable input yields the empty string.
func DayOfWeek(value string) string {
	t, ok := parseForecastTime(value)
	if !ok {
		return ""
	}
	return t.Format("Monday")
}

// HourlyLabel renders a timestamp as "Weekday H:MM AM/PM" on a 12-hour clock:
// hour 0 and 12 both show as 12, minutes are zero-padded. Unparseable input
// yields the empty string.
func HourlyLabel(value string) string {
	t, ok := parseForecastTime(value)
	if !ok {
		return ""
	}
	return t.Format("Monday 3:04 PM")
}

func parseForecastTime(value string) (time.Time, bool) {
	for _, layout := range []string{hourlyTimeLayout, dailyTimeLayout, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
