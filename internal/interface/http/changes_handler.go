package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
	"github.com/oksasatya/courseitda/pkg/helpers"
	"github.com/oksasatya/courseitda/pkg/response"
)

// ChangesHandler streams store change notifications as server-sent events. With a Store,
// each stream only carries changes to records the signed-in user owns.
type ChangesHandler struct {
	Hub       *event.Hub
	Store     repository.Store
	Heartbeat time.Duration
	Logger    *logrus.Logger
}

func NewChangesHandler(hub *event.Hub, store repository.Store, heartbeat time.Duration, logger *logrus.Logger) *ChangesHandler {
	if heartbeat <= 0 {
		heartbeat = 25 * time.Second
	}
	return &ChangesHandler{Hub: hub, Store: store, Heartbeat: heartbeat, Logger: logger}
}

func parseCollections(csv string) ([]event.Collection, bool) {
	names := helpers.SplitCSV(csv)
	if len(names) == 0 {
		return nil, true
	}
	known := make(map[event.Collection]bool, len(event.AllCollections))
	for _, c := range event.AllCollections {
		known[c] = true
	}
	out := make([]event.Collection, 0, len(names))
	for _, n := range names {
		c := event.Collection(n)
		if !known[c] {
			return nil, false
		}
		out = append(out, c)
	}
	return out, true
}

// Stream GET /api/changes?collections=categories,places
func (h *ChangesHandler) Stream(c *gin.Context) {
	collections, ok := parseCollections(c.Query("collections"))
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "unknown collection", gin.H{"known": event.AllCollections})
		return
	}
	ctx := c.Request.Context()
	var scope *changeScope
	if h.Store != nil {
		var err error
		if scope, err = newChangeScope(ctx, h.Store, userID(c)); err != nil {
			fail(c, h.Logger, err)
			return
		}
	}
	ch, cancel := h.Hub.Subscribe(collections...)
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", gin.H{"collections": collections})
	c.Writer.Flush()

	ticker := time.NewTicker(h.Heartbeat)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case change, open := <-ch:
			if !open {
				return false
			}
			if scope != nil {
				var visible bool
				if change, visible = scope.filter(ctx, change); !visible {
					return true
				}
			}
			c.SSEvent("change", change)
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().UTC().Unix())
			return true
		}
	})
}
