package weather

import "time"

const (
	hourlyTimeLayout = "2006-01-02T15:04"
	dailyTimeLayout  = "2006-01-02"
)

// Indices locates "now" and "today" within a forecast's series. Either index
// is -1 when the corresponding instant is not present; -1 means "nothing to
// render", never an out-of-bounds access.
type Indices struct {
	Hour int
	Day  int
}

// AlignStrategy selects how the current-hour index is derived.
type AlignStrategy int

const (
	// AlignByClock uses the local hour of day (0-23) as a direct offset into
	// the hourly arrays. This leans on the service contract that with
	// timezone=auto the hourly series starts at local midnight of start_date
	// with exactly one entry per hour.
	AlignByClock AlignStrategy = iota

	// AlignByTimestamp searches hourly time entries for the last one at or
	// before now, and does not assume anything about where the series starts.
	AlignByTimestamp
)

// Align computes the hour and day indices for now. The hourly index never
// reaches the series length: a clock hour beyond a short series yields -1.
func Align(f *ForecastResponse, now time.Time, strategy AlignStrategy) Indices {
	return Indices{
		Hour: hourIndex(f.Hourly, now, strategy),
		Day:  dayIndex(f.Daily, now),
	}
}

func hourIndex(h HourlySeries, now time.Time, strategy AlignStrategy) int {
	n := len(h.Time)
	if n == 0 {
		return -1
	}

	if strategy == AlignByTimestamp {
		idx := -1
		for i, raw := range h.Time {
			t, err := time.ParseInLocation(hourlyTimeLayout, raw, now.Location())
			if err != nil {
				continue
			}
			if t.After(now) {
				break
			}
			idx = i
		}
		return idx
	}

	if hour := now.Hour(); hour < n {
		return hour
	}
	return -1
}

// dayIndex is the first daily entry matching now's local calendar date, or -1.
func dayIndex(d DailySeries, now time.Time) int {
	today := now.Format(dailyTimeLayout)
	for i, raw := range d.Time {
		if raw == today {
			return i
		}
	}
	return -1
}
