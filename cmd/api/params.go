package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"city-explorer/internal/types"

	"github.com/gin-gonic/gin"
)

var errMissingData = errors.New("missing required query parameter: data")

// locationData is the LocationRecord-like object the front end sends back
// in the data parameter of /weather and /events.
type locationData struct {
	SearchQuery    string      `json:"search_query"`
	FormattedQuery string      `json:"formatted_query"`
	Latitude       json.Number `json:"latitude"`
	Longitude      json.Number `json:"longitude"`
}

// bindLocationData accepts data[latitude]=..&data[longitude]=.. as
// form-encoding clients send it, or the whole object as a JSON string.
func bindLocationData(c *gin.Context) (locationData, error) {
	if m, ok := c.GetQueryMap("data"); ok {
		return locationData{
			SearchQuery:    m["search_query"],
			FormattedQuery: m["formatted_query"],
			Latitude:       json.Number(m["latitude"]),
			Longitude:      json.Number(m["longitude"]),
		}, nil
	}

	raw := c.Query("data")
	if raw == "" {
		return locationData{}, errMissingData
	}

	var d locationData
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return locationData{}, fmt.Errorf("data must be a location object: %w", err)
	}
	return d, nil
}

func (d locationData) coords() (types.Coords, error) {
	return types.ParseCoords(d.Latitude.String(), d.Longitude.String())
}
