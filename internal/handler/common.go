// Package handler exposes the HTTP handlers of the listing service.  The
// handlers bind form or JSON input, run basic field validation before any
// transaction is started, delegate to the repositories and translate the
// repository sentinel errors into HTTP statuses.  Successful mutations
// additionally publish a listing.changed event to the broker; a publish
// failure is logged by the publisher and never fails the request.
package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"stagelist/internal/queue"
	queue_publisher "stagelist/internal/service"
)

// startTimeLayouts lists the accepted start_time formats: RFC 3339 from API
// clients and the plain DB-style layout from HTML forms.
var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// parseID parses the numeric :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// parseStartTime parses a show start time in any accepted layout, returning
// the time in UTC.
func parseStartTime(s string) (time.Time, error) {
	var err error
	for _, layout := range startTimeLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

// publishChange emits a listing.changed event for a completed mutation.
// The publish result is ignored here; the publisher logs failures.
func publishChange(ctx context.Context, entity, action string, id uint64, name string) {
	_ = queue_publisher.PublishListingChanged(ctx, queue.ListingChangedEvent{
		Entity: entity,
		Action: action,
		ID:     id,
		Name:   name,
	})
}
