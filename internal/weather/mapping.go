package weather

import (
	"time"

	"city-explorer/internal/providers/darksky"
	"city-explorer/internal/types"
)

// mapDailyForecast converts every daily point, in order, into a WeatherEntry
func mapDailyForecast(days []darksky.DailyPoint, loc *time.Location) []types.WeatherEntry {
	entries := make([]types.WeatherEntry, 0, len(days))
	for _, day := range days {
		entries = append(entries, types.WeatherEntry{
			Forecast: day.Summary,
			Time:     types.DisplayDate(time.Unix(day.Time, 0).In(loc)),
		})
	}
	return entries
}
