// Package rest — административный HTTP API (gin): список и карточка заказа, смена статуса,
// массовые переходы, выгрузка JSONL и аналитика продаж.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/orders-backoffice/internal/ports"
	"github.com/Gunvolt24/orders-backoffice/pkg/httpx"
	"github.com/Gunvolt24/orders-backoffice/pkg/pager"
)

// Options — параметры обработчиков, приходящие из конфигурации.
type Options struct {
	RequestTimeout    time.Duration
	DefaultPageSize   int
	MaxPageSize       int
	MaxVisiblePages   int
	DefaultPeriodDays int
	MaxBulkIDs        int
}

func (o Options) withDefaults() Options {
	if o.DefaultPageSize <= 0 {
		o.DefaultPageSize = 20
	}
	if o.MaxPageSize <= 0 {
		o.MaxPageSize = 100
	}
	if o.MaxVisiblePages <= 0 {
		o.MaxVisiblePages = pager.DefaultMaxVisible
	}
	if o.DefaultPeriodDays <= 0 {
		o.DefaultPeriodDays = 7
	}
	if o.MaxBulkIDs <= 0 {
		o.MaxBulkIDs = 500
	}
	return o
}

// Handler — HTTP-обработчики поверх прикладных сервисов.
type Handler struct {
	orders    ports.OrderAdminService
	analytics ports.AnalyticsReader
	log       ports.Logger
	opts      Options
}

// NewHandler — конструктор; нулевые поля opts заменяются значениями по умолчанию.
func NewHandler(orders ports.OrderAdminService, analytics ports.AnalyticsReader, log ports.Logger, opts Options) *Handler {
	return &Handler{orders: orders, analytics: analytics, log: log, opts: opts.withDefaults()}
}

// NewRouter — gin-движок с middleware: recovery, otel (если задан serviceName), request id, access log.
func NewRouter(h *Handler, serviceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if serviceName != "" {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log, "/metrics", "/ping"))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := r.Group("/admin")
	{
		admin.GET("/orders", h.listOrders)
		admin.GET("/orders/export", h.exportOrders)
		admin.POST("/orders/bulk-status", h.bulkUpdateStatus)
		admin.GET("/orders/:id", h.getOrder)
		admin.POST("/orders/:id/status", h.updateStatus)
		admin.GET("/analytics", h.getAnalytics)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	return r
}

// requestContext — контекст запроса с таймаутом обработчика (если задан).
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.opts.RequestTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.opts.RequestTimeout)
}
