package weather

import "fmt"

// ForecastResponse mirrors the Open-Meteo forecast payload. Hourly and daily
// members are parallel arrays: index i of every series within a member refers
// to the same instant.
type ForecastResponse struct {
	Current CurrentConditions `json:"current"`
	Hourly  HourlySeries      `json:"hourly"`
	Daily   DailySeries       `json:"daily"`
}

// CurrentConditions holds the service's current-conditions snapshot.
type CurrentConditions struct {
	Time          string  `json:"time"`
	Temperature2m float64 `json:"temperature_2m"`
	IsDay         int     `json:"is_day"`
	Precipitation float64 `json:"precipitation"`
	Rain          float64 `json:"rain"`
	Showers       float64 `json:"showers"`
	Snowfall      float64 `json:"snowfall"`
}

// HourlySeries holds hour-granularity series. Time entries are local
// wall-clock timestamps like "2024-01-15T09:00", non-decreasing.
type HourlySeries struct {
	Time          []string  `json:"time"`
	Temperature2m []float64 `json:"temperature_2m"`
	Visibility    []float64 `json:"visibility"`
}

// DailySeries holds day-granularity series. Time entries are dates like
// "2024-01-15".
type DailySeries struct {
	Time                   []string  `json:"time"`
	Temperature2mMax       []float64 `json:"temperature_2m_max"`
	Temperature2mMin       []float64 `json:"temperature_2m_min"`
	ApparentTemperatureMax []float64 `json:"apparent_temperature_max"`
	ApparentTemperatureMin []float64 `json:"apparent_temperature_min"`
	Sunrise                []string  `json:"sunrise"`
	Sunset                 []string  `json:"sunset"`
	DaylightDuration       []float64 `json:"daylight_duration"`
	SunshineDuration       []float64 `json:"sunshine_duration"`
}

// validate enforces the parallel-array contract before anything indexes into
// the series.
func (f *ForecastResponse) validate() error {
	if len(f.Hourly.Time) == 0 {
		return fmt.Errorf("%w: missing hourly series", ErrMalformedResponse)
	}
	if len(f.Daily.Time) == 0 {
		return fmt.Errorf("%w: missing daily series", ErrMalformedResponse)
	}
	if got, want := len(f.Hourly.Temperature2m), len(f.Hourly.Time); got != want {
		return fmt.Errorf("%w: hourly temperature has %d entries, time has %d", ErrMalformedResponse, got, want)
	}
	if got, want := len(f.Daily.Temperature2mMax), len(f.Daily.Time); got != want {
		return fmt.Errorf("%w: daily max temperature has %d entries, time has %d", ErrMalformedResponse, got, want)
	}
	if got, want := len(f.Daily.Temperature2mMin), len(f.Daily.Time); got != want {
		return fmt.Errorf("%w: daily min temperature has %d entries, time has %d", ErrMalformedResponse, got, want)
	}
	return nil
}
