package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// failureMessage is the only body clients ever see for a failed lookup
const failureMessage = "Status: 500. So sorry, something went wrong"

// serverError logs err and answers with the generic failure response
func (app *App) serverError(c *gin.Context, endpoint string, err error, attrs ...any) {
	app.logger.Error("request failed",
		append([]any{"endpoint", endpoint, "error", err}, attrs...)...,
	)
	c.String(http.StatusInternalServerError, failureMessage)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
