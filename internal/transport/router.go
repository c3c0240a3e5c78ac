package transport

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine serving the query API. limiter may be nil.
func NewRouter(handler *Handler, metrics Metrics, limiter *RateLimiter, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	// Clients are keyed by the socket address; forwarding headers are ignored.
	_ = engine.SetTrustedProxies(nil)
	engine.Use(Recovery(logger), RequestLogger(logger.Named("http")), RequestMetrics(metrics))

	engine.GET("/health", handler.Health)

	api := engine.Group("/api")
	if limiter != nil {
		api.Use(limiter.Middleware())
	}
	{
		api.GET("/opreturns", handler.ListOpReturns)
		api.GET("/search", handler.Search)
		api.GET("/stats", handler.Stats)
		api.GET("/blocks/:height", handler.BlockInfo)
	}

	return engine
}
