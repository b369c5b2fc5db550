package main

import (
	"net/http"

	"city-explorer/internal/events"

	"github.com/gin-gonic/gin"
)

// handleEvents godoc
// @Summary Nearby events
// @Description Events near the formatted address of a previously resolved location
// @Tags events
// @Produce json
// @Param data[formatted_query] query string true "Formatted address" example(Seattle, WA, USA)
// @Success 200 {array} types.EventEntry
// @Failure 400 {object} map[string]string
// @Failure 500 {string} string
// @Router /events [get]
func (app *App) handleEvents(c *gin.Context) {
	data, err := bindLocationData(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	if data.FormattedQuery == "" {
		badRequest(c, events.ErrEmptyAddress)
		return
	}

	list, err := app.eventsService.Search(c.Request.Context(), data.FormattedQuery)
	if err != nil {
		app.serverError(c, "events", err, "address", data.FormattedQuery)
		return
	}

	c.JSON(http.StatusOK, list)
}
