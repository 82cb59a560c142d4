package httpx

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/orders-backoffice/internal/ports"
)

// RequestLogger — middleware логирования HTTP-запросов. Пути из skip не логируются.
// request_id и trace_id добавляет сам логгер из контекста.
func RequestLogger(log ports.Logger, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if _, ok := skipped[path]; ok {
			return
		}
		if path == "" {
			path = c.Request.URL.Path
		}

		status := c.Writer.Status()
		args := []any{c.Request.Method, path, status, c.ClientIP(), time.Since(start), c.Writer.Size()}
		const format = "request method=%s path=%s status=%d ip=%s duration=%s size=%d"
		switch {
		case status >= 500:
			log.Errorf(c.Request.Context(), format, args...)
		case status >= 400:
			log.Warnf(c.Request.Context(), format, args...)
		default:
			log.Infof(c.Request.Context(), format, args...)
		}
	}
}
