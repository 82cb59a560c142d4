package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/orders-backoffice/internal/analytics"
	"github.com/Gunvolt24/orders-backoffice/pkg/httpx"
)

// analyticsResponse — отчёт; при Stale в Error причина, по которой он не свежий.
type analyticsResponse struct {
	analytics.Report
	Stale bool   `json:"stale"`
	Error string `json:"error,omitempty"`
}

// GET /admin/analytics?period=N
func (h *Handler) getAnalytics(c *gin.Context) {
	period := h.opts.DefaultPeriodDays
	if raw := c.Query("period"); raw != "" {
		period = httpx.ParseIntDefault(c, "period", 0)
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.analytics.Report(ctx, period)
	if err != nil {
		h.writeError(c, "AnalyticsReport", err)
		return
	}

	resp := analyticsResponse{Report: result.Report, Stale: result.Stale}
	if result.Stale && result.Err != nil {
		resp.Error = result.Err.Error()
	}
	c.JSON(http.StatusOK, resp)
}
