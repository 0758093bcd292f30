package weather

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxFurtherDays bounds the daily list to today plus six more days.
const maxFurtherDays = 6

// HourlyCard is one entry in the hourly forecast list.
type HourlyCard struct {
	Label       string
	Temperature float64
}

// DailyCard is one entry in the daily forecast list.
type DailyCard struct {
	Label   string
	MaxTemp float64
	MinTemp float64
}

// Model is the fully-buffered output of one pipeline run. It is handed to the
// display surface in one piece, so a failed pipeline never leaves a partial
// render behind.
type Model struct {
	Heading  string
	Location string
	Current  CurrentConditions
	Hourly   []HourlyCard
	Daily    []DailyCard
}

var titleCaser = cases.Title(language.AmericanEnglish)

// BuildModel projects an aligned forecast into display cards: a "Now" card,
// a "Today" card, the remaining hours of the series, and up to six further
// days. An hour index of -1 produces no hourly cards, and a day index of -1
// produces no daily cards.
func BuildModel(f *ForecastResponse, idx Indices, locationLabel string) *Model {
	label := titleCaser.String(locationLabel)
	m := &Model{
		Heading:  fmt.Sprintf("Hourly Forecast for %s", label),
		Location: label,
		Current:  f.Current,
	}

	hourly := f.Hourly
	if idx.Hour >= 0 && idx.Hour < len(hourly.Temperature2m) {
		m.Hourly = append(m.Hourly, HourlyCard{
			Label:       "Now",
			Temperature: hourly.Temperature2m[idx.Hour],
		})
		for i := idx.Hour + 1; i < len(hourly.Time) && i < len(hourly.Temperature2m); i++ {
			m.Hourly = append(m.Hourly, HourlyCard{
				Label:       HourlyLabel(hourly.Time[i]),
				Temperature: hourly.Temperature2m[i],
			})
		}
	}

	daily := f.Daily
	if idx.Day >= 0 && len(daily.Temperature2mMax) > 0 && len(daily.Temperature2mMin) > 0 {
		// Index 0, not idx.Day: the request's start_date is today, so the
		// series is expected to begin at today.
		m.Daily = append(m.Daily, DailyCard{
			Label:   "Today",
			MaxTemp: daily.Temperature2mMax[0],
			MinTemp: daily.Temperature2mMin[0],
		})
		for i := idx.Day + 1; i <= idx.Day+maxFurtherDays && i < len(daily.Time); i++ {
			if i >= len(daily.Temperature2mMax) || i >= len(daily.Temperature2mMin) {
				break
			}
			m.Daily = append(m.Daily, DailyCard{
				Label:   DayOfWeek(daily.Time[i]),
				MaxTemp: daily.Temperature2mMax[i],
				MinTemp: daily.Temperature2mMin[i],
			})
		}
	}

	return m
}
