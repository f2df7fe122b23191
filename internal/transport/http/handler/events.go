package handler

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-crud/internal/core/refresh"
)

const (
	EventReady = "ready"
	EventStale = "stale"
	EventPing  = "ping"
)

// Events 把 refresh 的视图过期信号以 SSE 推给浏览器。
// 连接随请求超时结束，EventSource 会自动重连。
type Events struct {
	hub       *refresh.Hub
	log       *zap.Logger
	heartbeat time.Duration
}

func NewEvents(hub *refresh.Hub, log *zap.Logger) *Events {
	return &Events{hub: hub, log: log.Named("events"), heartbeat: 15 * time.Second}
}

func (*Events) Priority() int { return 40 }

func (h *Events) MountAPI(api *gin.RouterGroup) {
	api.GET("/events", h.stream)
}

func (h *Events) stream(c *gin.Context) {
	// 同一视图的多次过期合并成一次推送
	var (
		mu      sync.Mutex
		pending = map[string]struct{}{}
		wake    = make(chan struct{}, 1)
	)
	unsubscribe := h.hub.Subscribe(refresh.ViewAll, func(_ context.Context, view string) {
		mu.Lock()
		pending[view] = struct{}{}
		mu.Unlock()
		select {
		case wake <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent(EventReady, "ok")
	c.Writer.Flush()
	h.log.Debug("sse subscribed", zap.Int("subscribers", h.hub.Len()))

	ctx := c.Request.Context()
	tick := time.NewTicker(h.heartbeat)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			c.SSEvent(EventPing, time.Now().Unix())
			c.Writer.Flush()
		case <-wake:
			mu.Lock()
			views := make([]string, 0, len(pending))
			for v := range pending {
				views = append(views, v)
			}
			clear(pending)
			mu.Unlock()

			slices.Sort(views)
			for _, v := range views {
				c.SSEvent(EventStale, v)
			}
			c.Writer.Flush()
		}
	}
}
