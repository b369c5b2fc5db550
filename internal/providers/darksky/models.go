package darksky

type ForecastAPIResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Daily     struct {
		Summary string       `json:"summary"`
		Icon    string       `json:"icon"`
		Data    []DailyPoint `json:"data"`
	} `json:"daily"`
}

// DailyPoint is one entry of the daily block. Time is Unix seconds at
// local midnight of the forecast day.
type DailyPoint struct {
	Time              int64   `json:"time"`
	Summary           string  `json:"summary"`
	Icon              string  `json:"icon"`
	PrecipProbability float64 `json:"precipProbability"`
	TemperatureHigh   float64 `json:"temperatureHigh"`
	TemperatureLow    float64 `json:"temperatureLow"`
}
