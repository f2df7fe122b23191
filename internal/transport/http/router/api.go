package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-gorm-crud/internal/action"
	"go-gin-gorm-crud/internal/core/config"
	"go-gin-gorm-crud/internal/core/refresh"
	"go-gin-gorm-crud/internal/core/server"
	"go-gin-gorm-crud/internal/transport/http/handler"
	mdw "go-gin-gorm-crud/internal/transport/http/middleware"
)

func NewAPIEngine(l *zap.Logger, acts *action.Actions, hub *refresh.Hub, hc config.HTTP) *gin.Engine {
	r := server.NewRouter(mdw.Recovery(l))

	// 中间件；配置为 0 的限制不启用
	r.Use(middlewares(l, hc)...)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 前缀
	api := r.Group("/api/v1")

	var reg Registry
	reg.Register(
		handler.NewPosts(acts),
		handler.NewUsers(acts),
		handler.NewStats(acts),
		handler.NewEvents(hub, l),
	)
	reg.MountAll(api)

	return r
}

func middlewares(l *zap.Logger, hc config.HTTP) []gin.HandlerFunc {
	mws := []gin.HandlerFunc{
		mdw.RequestID(),
		mdw.Metrics(),
		mdw.AccessLog(l),
	}
	if hc.RateLimitRPS > 0 {
		mws = append(mws, mdw.RateLimit(rate.Limit(hc.RateLimitRPS), hc.RateLimitBurst))
	}
	if hc.PerIPRPS > 0 {
		mws = append(mws, mdw.RateLimitPerIP(rate.Limit(hc.PerIPRPS), hc.PerIPBurst, 10*time.Minute))
	}
	if hc.RequestTimeoutSec > 0 {
		mws = append(mws, mdw.Timeout(time.Duration(hc.RequestTimeoutSec)*time.Second))
	}
	if hc.MaxConcurrent > 0 {
		mws = append(mws, mdw.ConcurrencyLimit(hc.MaxConcurrent))
	}
	if hc.MaxBodyMB > 0 {
		mws = append(mws, mdw.MaxBodyBytes(int64(hc.MaxBodyMB)<<20))
	}
	return mws
}
