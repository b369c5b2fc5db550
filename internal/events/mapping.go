package events

import (
	"time"

	"city-explorer/internal/providers/eventbrite"
	"city-explorer/internal/types"
)

// Eventbrite's start.local carries no offset
const localLayout = "2006-01-02T15:04:05"

func mapEvents(events []eventbrite.Event) []types.EventEntry {
	entries := make([]types.EventEntry, 0, len(events))
	for _, e := range events {
		entries = append(entries, types.EventEntry{
			Event:   eventDate(e.Start.Local),
			URL:     e.URL,
			Name:    e.Name.Text,
			Summary: e.Summary,
		})
	}
	return entries
}

// eventDate renders the venue's wall-clock start date, or "" if it cannot be parsed
func eventDate(local string) string {
	t, err := time.Parse(localLayout, local)
	if err != nil {
		return ""
	}
	return types.DisplayDate(t)
}
