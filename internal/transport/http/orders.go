package rest

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/orders-backoffice/internal/domain"
	"github.com/Gunvolt24/orders-backoffice/internal/lifecycle"
	"github.com/Gunvolt24/orders-backoffice/internal/query"
	"github.com/Gunvolt24/orders-backoffice/pkg/httpx"
	"github.com/Gunvolt24/orders-backoffice/pkg/pager"
)

// ordersPageResponse — страница списка заказов и маркеры навигации.
type ordersPageResponse struct {
	Items      []domain.Order `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalItems int            `json:"total_items"`
	TotalPages int            `json:"total_pages"`
	StartIndex int            `json:"start_index"`
	EndIndex   int            `json:"end_index"`
	Pages      []pager.Marker `json:"pages"`
}

// orderResponse — заказ и статусы, в которые его можно перевести.
type orderResponse struct {
	Order          domain.Order    `json:"order"`
	AllowedTargets []domain.Status `json:"allowed_targets"`
}

func newOrderResponse(o domain.Order) orderResponse {
	targets := lifecycle.AllowedTargets(o.Status)
	if targets == nil {
		targets = []domain.Status{}
	}
	return orderResponse{Order: o, AllowedTargets: targets}
}

type statusRequest struct {
	Status string `json:"status"`
}

type bulkStatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

type bulkOutcome struct {
	OrderID      string        `json:"order_id"`
	OK           bool          `json:"ok"`
	Status       domain.Status `json:"status,omitempty"`
	TrackingCode string        `json:"tracking_code,omitempty"`
	Error        string        `json:"error,omitempty"`
}

type bulkStatusResponse struct {
	Target    domain.Status `json:"target"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Outcomes  []bulkOutcome `json:"outcomes"`
}

// specFromQuery — фильтры и сортировка из query-параметров.
func specFromQuery(c *gin.Context) query.Spec {
	return query.Spec{
		SearchText:    c.Query("q"),
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		PaymentMethod: c.Query("payment_method"),
		SortField:     query.SortField(c.Query("sort")),
		SortDirection: query.SortDirection(c.Query("dir")),
	}
}

// GET /admin/orders
func (h *Handler) listOrders(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	page, pageSize := httpx.ParsePage(c, h.opts.DefaultPageSize, h.opts.MaxPageSize)
	result, err := h.orders.ListOrders(ctx, specFromQuery(c), page, pageSize)
	if err != nil {
		h.writeError(c, "ListOrders", err)
		return
	}

	items := result.Items
	if items == nil {
		items = []domain.Order{}
	}
	c.JSON(http.StatusOK, ordersPageResponse{
		Items:      items,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
		StartIndex: result.StartIndex,
		EndIndex:   result.EndIndex,
		Pages:      pager.Sequence(result.Page, result.TotalPages, h.opts.MaxVisiblePages),
	})
}

// GET /admin/orders/:id
func (h *Handler) getOrder(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id := strings.TrimSpace(c.Param("id"))
	order, err := h.orders.GetOrder(ctx, id)
	if err != nil {
		h.writeError(c, "GetOrder", err)
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, errorBody{Error: "order not found"})
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(*order))
}

// POST /admin/orders/:id/status
func (h *Handler) updateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}
	target, err := domain.ParseStatus(req.Status)
	if err != nil {
		h.writeError(c, "UpdateStatus", err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	id := strings.TrimSpace(c.Param("id"))
	updated, err := h.orders.UpdateStatus(ctx, id, target)
	if err != nil {
		h.writeError(c, "UpdateStatus", err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(updated))
}

// POST /admin/orders/bulk-status
func (h *Handler) bulkUpdateStatus(c *gin.Context) {
	var req bulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}
	if len(req.IDs) == 0 {
		badRequest(c, "ids must not be empty")
		return
	}
	if len(req.IDs) > h.opts.MaxBulkIDs {
		badRequest(c, "too many ids")
		return
	}
	target, err := domain.ParseStatus(req.Status)
	if err != nil {
		h.writeError(c, "BulkUpdateStatus", err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.orders.BulkUpdateStatus(ctx, req.IDs, target)
	if err != nil {
		h.writeError(c, "BulkUpdateStatus", err)
		return
	}

	resp := bulkStatusResponse{
		Target:    result.Target,
		Succeeded: result.Succeeded(),
		Failed:    result.Failed(),
		Outcomes:  make([]bulkOutcome, 0, len(result.Outcomes)),
	}
	for _, o := range result.Outcomes {
		out := bulkOutcome{OrderID: o.OrderID, OK: o.OK()}
		if o.OK() {
			out.Status = o.Order.Status
			out.TrackingCode = o.Order.TrackingCode
		} else {
			out.Error = o.Err.Error()
		}
		resp.Outcomes = append(resp.Outcomes, out)
	}
	c.JSON(http.StatusOK, resp)
}

// GET /admin/orders/export — представление целиком, один заказ на строку (JSONL).
func (h *Handler) exportOrders(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	view, err := h.orders.ExportOrders(ctx, specFromQuery(c))
	if err != nil {
		h.writeError(c, "ExportOrders", err)
		return
	}

	filename := "orders-" + time.Now().UTC().Format("20060102-150405") + ".jsonl"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/x-ndjson")
	c.Status(http.StatusOK)

	enc := json.NewEncoder(c.Writer)
	written := 0
	for _, order := range query.Each(view) {
		if err := enc.Encode(order); err != nil {
			// Заголовки уже отправлены: остаётся только оборвать поток.
			h.log.Warnf(c.Request.Context(), "export aborted written=%d err=%v", written, err)
			return
		}
		written++
	}
	h.log.Infof(c.Request.Context(), "orders exported count=%d", written)
}
