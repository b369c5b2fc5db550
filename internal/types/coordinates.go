package types

import (
	"fmt"
	"strconv"
)

type Coords struct {
	Latitude  float64
	Longitude float64
}

func NewCoords(latitude, longitude float64) Coords {
	return Coords{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

// ParseCoords builds Coords from the string form clients send in query parameters
func ParseCoords(latitude, longitude string) (Coords, error) {
	lat, err := strconv.ParseFloat(latitude, 64)
	if err != nil {
		return Coords{}, fmt.Errorf("invalid latitude %q: %w", latitude, err)
	}
	lon, err := strconv.ParseFloat(longitude, 64)
	if err != nil {
		return Coords{}, fmt.Errorf("invalid longitude %q: %w", longitude, err)
	}
	c := NewCoords(lat, lon)
	if err := c.Validate(); err != nil {
		return Coords{}, err
	}
	return c, nil
}

// Validate reports whether the coordinates are within WGS84 bounds.
// NaN fails both checks.
func (c Coords) Validate() error {
	if !(c.Latitude >= -90 && c.Latitude <= 90) {
		return fmt.Errorf("latitude %f out of range", c.Latitude)
	}
	if !(c.Longitude >= -180 && c.Longitude <= 180) {
		return fmt.Errorf("longitude %f out of range", c.Longitude)
	}
	return nil
}

// String renders the coordinates as "lat,lon"
func (c Coords) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}
