package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleWeather godoc
// @Summary Daily forecast
// @Description Daily forecast summaries for a previously resolved location
// @Tags weather
// @Produce json
// @Param data[latitude] query number true "Latitude in decimal degrees" example(47.6062095)
// @Param data[longitude] query number true "Longitude in decimal degrees" example(-122.3320708)
// @Success 200 {array} types.WeatherEntry
// @Failure 400 {object} map[string]string
// @Failure 500 {string} string
// @Router /weather [get]
func (app *App) handleWeather(c *gin.Context) {
	data, err := bindLocationData(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	coords, err := data.coords()
	if err != nil {
		badRequest(c, err)
		return
	}

	forecast, err := app.weatherService.Forecast(c.Request.Context(), coords)
	if err != nil {
		app.serverError(c, "weather", err, "coords", coords.String())
		return
	}

	c.JSON(http.StatusOK, forecast)
}
