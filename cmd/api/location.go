package main

import (
	"net/http"

	_ "city-explorer/internal/types" // imported for swagger type definitions

	"github.com/gin-gonic/gin"
)

// handleLocation godoc
// @Summary Resolve a location
// @Description Resolve free-text search input to a formatted address and coordinates. Results are cached by exact search text.
// @Tags location
// @Produce json
// @Param data query string true "Free-text location" example(Seattle)
// @Success 200 {object} types.LocationRecord
// @Failure 400 {object} map[string]string
// @Failure 500 {string} string
// @Router /location [get]
func (app *App) handleLocation(c *gin.Context) {
	query := c.Query("data")
	if query == "" {
		badRequest(c, errMissingData)
		return
	}

	rec, err := app.locationService.Resolve(c.Request.Context(), query)
	if err != nil {
		app.serverError(c, "location", err, "query", query)
		return
	}

	c.JSON(http.StatusOK, rec)
}
