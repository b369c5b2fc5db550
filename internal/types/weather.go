package types

// WeatherEntry is one day of a forecast
type WeatherEntry struct {
	Forecast string `json:"forecast"`
	Time     string `json:"time"`
}
