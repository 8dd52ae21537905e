package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/yeheskieltame/spend-save-analyze/internal/middleware"
	"github.com/yeheskieltame/spend-save-analyze/internal/notify"
	"github.com/yeheskieltame/spend-save-analyze/internal/util"

	"github.com/gin-gonic/gin"
)

// StreamHandler exposes the change hub as a server-sent event stream. Clients
// re-fetch their records whenever a "changed" event arrives; the stream never
// carries data itself.
type StreamHandler struct {
	Hub *notify.Hub
}

func NewStreamHandler(hub *notify.Hub) *StreamHandler {
	return &StreamHandler{Hub: hub}
}

// StreamChanges 推送 "records changed" 事件（SSE）
func (h *StreamHandler) StreamChanges(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	ch, cancel := h.Hub.Subscribe(user.ID)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	heartbeat := time.NewTicker(25 * time.Second)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-ch:
			c.SSEvent("changed", gin.H{"at": time.Now().Format(time.RFC3339)})
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", "")
			return true
		}
	})
}
