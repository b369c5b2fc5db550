package types

import "time"

// LocationRecord is a free-text search resolved to coordinates and a
// formatted address. Rows are never updated once written.
type LocationRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id,omitempty"`
	SearchQuery    string    `gorm:"not null;uniqueIndex:idx_locations_search_query" json:"search_query"`
	FormattedQuery string    `gorm:"not null" json:"formatted_query"`
	Latitude       float64   `gorm:"not null" json:"latitude"`
	Longitude      float64   `gorm:"not null" json:"longitude"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"-"`
}

func (LocationRecord) TableName() string {
	return "locations"
}

// Coords returns the record's position
func (l LocationRecord) Coords() Coords {
	return NewCoords(l.Latitude, l.Longitude)
}
