package types

// EventEntry is a single event happening near a location
type EventEntry struct {
	Event   string `json:"event"`
	URL     string `json:"url"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
}
