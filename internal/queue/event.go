// Package queue defines message payloads exchanged over the message broker.
package queue

// ListingChangedEvent is published whenever a venue, artist or show is
// created, updated or deleted.  It contains enough information for
// downstream consumers to log, refresh caches or trigger notifications
// without querying the primary database.
type ListingChangedEvent struct {
	Entity    string `json:"entity"` // "venue", "artist" or "show"
	Action    string `json:"action"` // "created", "updated" or "deleted"
	ID        uint64 `json:"id"`
	Name      string `json:"name,omitempty"`       // venue/artist name when known
	StartTime string `json:"start_time,omitempty"` // show start time, RFC 3339
	ChangedAt string `json:"changed_at"`
}
