package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/workplan/workplan/pkg/eventbus"
)

// EventSubscriber is the slice of the event bus the stream endpoint consumes.
type EventSubscriber interface {
	Subscribe(ctx context.Context, channels ...string) <-chan *eventbus.Event
}

type EventsHandler struct {
	bus    EventSubscriber
	logger *zap.Logger
}

// NewEventsHandler takes a nil bus when redis is not configured; the stream
// endpoint then reports the feature as disabled.
func NewEventsHandler(bus EventSubscriber, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{bus: bus, logger: logger}
}

// Stream relays bus events to the client as server-sent events until the
// client disconnects. Dashboards use it to refresh loads without polling.
func (h *EventsHandler) Stream(c *gin.Context) {
	if h.bus == nil {
		respondError(c, http.StatusServiceUnavailable, "event streaming is not configured")
		return
	}

	events := h.bus.Subscribe(c.Request.Context(), eventbus.Channels...)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Stream(func(w io.Writer) bool {
		event, ok := <-events
		if !ok {
			return false
		}
		c.SSEvent(event.Type, event)
		return true
	})
}
