package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chrisdamba/menuintel/internal/metrics"
	"github.com/chrisdamba/menuintel/internal/optimizer"
)

type Handler struct {
	engine  *optimizer.Engine
	metrics *metrics.Collector
	logger  *zap.Logger
	now     func() time.Time
}

func NewHandler(engine *optimizer.Engine, collector *metrics.Collector, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		engine:  engine,
		metrics: collector,
		logger:  logger.With(zap.String("component", "api")),
		now:     time.Now,
	}
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(
		RequestID(),
		Logging(h.logger, h.metrics),
		Recovery(h.logger),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	v1 := r.Group("/api/v1")
	h.RegisterRoutes(v1)
	return r
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	restaurants := rg.Group("/restaurants/:id")
	restaurants.GET("/suggestions", h.suggestions)
	restaurants.GET("/demand", h.demand)

	menu := rg.Group("/menu")
	menu.POST("/analyze", h.analyzeMenu)
	menu.GET("/seasonal", h.seasonal)
}
