package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/catalogue"
	"github.com/mrlokans/bookshelf/internal/events"
	"github.com/mrlokans/bookshelf/internal/views"
)

// ChangeSource delivers committed catalogue changes.
type ChangeSource interface {
	Subscribe(ctx context.Context) (<-chan events.Change, error)
}

// EventsController streams a watched list view to browsers as server-sent
// events so open list screens can refresh themselves.
type EventsController struct {
	catalogue Catalogue
	source    ChangeSource
	keepAlive time.Duration
}

func NewEventsController(cat Catalogue, source ChangeSource) *EventsController {
	return &EventsController{catalogue: cat, source: source, keepAlive: 30 * time.Second}
}

// Stream handles GET /events?q=&sort=
//
// Every catalogue change re-derives the list for the given query and sends
// it as a "changed" event. The stream ends when the client goes away or the
// change source is closed.
func (ec *EventsController) Stream(c *gin.Context) {
	q, err := catalogue.NewQuery(c.Query("q"), c.Query("sort"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	snapshots, err := views.NewListView(ec.catalogue, q).Watch(c.Request.Context(), ec.source)
	if err != nil {
		respondInternalError(c, err, "watch list")
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	c.SSEvent("ready", "ok")
	c.Writer.Flush()

	ticker := time.NewTicker(ec.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			c.SSEvent("changed", snap)
			c.Writer.Flush()
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			c.Writer.Flush()
		}
	}
}
