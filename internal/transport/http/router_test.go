package rest_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Gunvolt24/orders-backoffice/internal/analytics"
	"github.com/Gunvolt24/orders-backoffice/internal/domain"
	"github.com/Gunvolt24/orders-backoffice/internal/lifecycle"
	"github.com/Gunvolt24/orders-backoffice/internal/ports"
	"github.com/Gunvolt24/orders-backoffice/internal/ports/mocks"
	"github.com/Gunvolt24/orders-backoffice/internal/query"
	rest "github.com/Gunvolt24/orders-backoffice/internal/transport/http"
	"github.com/golang/mock/gomock"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

type fixture struct {
	orders    *mocks.MockOrderAdminService
	analytics *mocks.MockAnalyticsReader
	router    http.Handler
}

func newFixture(t *testing.T, opts rest.Options) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := fixture{
		orders:    mocks.NewMockOrderAdminService(ctrl),
		analytics: mocks.NewMockAnalyticsReader(ctrl),
	}
	h := rest.NewHandler(f.orders, f.analytics, noopLogger{}, opts)
	f.router = rest.NewRouter(h, "")
	return f
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json: %v body=%s", err, w.Body.String())
	}
}

func TestListOrders_PassesFiltersAndPaging(t *testing.T) {
	f := newFixture(t, rest.Options{DefaultPageSize: 10, MaxPageSize: 50})

	wantSpec := query.Spec{
		SearchText:    "anna",
		Status:        "pending",
		PaymentStatus: "paid",
		PaymentMethod: "card",
		SortField:     query.SortTotal,
		SortDirection: query.Desc,
	}
	f.orders.EXPECT().ListOrders(gomock.Any(), wantSpec, 3, 5).Return(query.Page{
		Items:      []domain.Order{{ID: "11"}, {ID: "12"}},
		Page:       3,
		PageSize:   5,
		StartIndex: 10,
		EndIndex:   12,
		TotalItems: 12,
		TotalPages: 3,
	}, nil)

	w := do(f.router, http.MethodGet,
		"/admin/orders?q=anna&status=pending&payment_status=paid&payment_method=card&sort=total&dir=desc&page=3&page_size=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d body=%s", w.Code, w.Body.String())
	}

	var got struct {
		Items      []domain.Order `json:"items"`
		Page       int            `json:"page"`
		TotalPages int            `json:"total_pages"`
		StartIndex int            `json:"start_index"`
		EndIndex   int            `json:"end_index"`
		Pages      []struct {
			Page int `json:"page"`
		} `json:"pages"`
	}
	decode(t, w, &got)
	if len(got.Items) != 2 || got.Items[0].ID != "11" {
		t.Fatalf("items %+v", got.Items)
	}
	if got.Page != 3 || got.TotalPages != 3 || got.StartIndex != 10 || got.EndIndex != 12 {
		t.Fatalf("paging %+v", got)
	}
	if len(got.Pages) != 3 || got.Pages[2].Page != 3 {
		t.Fatalf("navigation markers %+v", got.Pages)
	}
}

func TestListOrders_PageSizeChangeResetsPage(t *testing.T) {
	f := newFixture(t, rest.Options{})

	f.orders.EXPECT().ListOrders(gomock.Any(), query.Spec{}, 1, 50).Return(query.Page{Page: 1, PageSize: 50}, nil)

	w := do(f.router, http.MethodGet, "/admin/orders?page=4&page_size=50&prev_page_size=20", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
}

func TestListOrders_EmptyItemsIsArray(t *testing.T) {
	f := newFixture(t, rest.Options{})

	f.orders.EXPECT().ListOrders(gomock.Any(), gomock.Any(), 1, 20).Return(query.Page{Page: 1, PageSize: 20}, nil)

	w := do(f.router, http.MethodGet, "/admin/orders", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"items":[]`) || !strings.Contains(w.Body.String(), `"pages":[]`) {
		t.Fatalf("empty page must serialize arrays: %s", w.Body.String())
	}
}

func TestListOrders_InvalidSpec(t *testing.T) {
	f := newFixture(t, rest.Options{})

	f.orders.EXPECT().ListOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(query.Page{}, domain.NewValidationError("sort", "rating", "unknown sort field"))

	w := do(f.router, http.MethodGet, "/admin/orders?sort=rating", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
	var body struct {
		Field string `json:"field"`
	}
	decode(t, w, &body)
	if body.Field != "sort" {
		t.Fatalf("error must name the field: %s", w.Body.String())
	}
}

func TestListOrders_BackendUnavailable(t *testing.T) {
	f := newFixture(t, rest.Options{})

	f.orders.EXPECT().ListOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(query.Page{}, domain.NewFetchError("list", errors.New("connection refused")))

	w := do(f.router, http.MethodGet, "/admin/orders", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("want 502, got %d", w.Code)
	}
}

func TestGetOrder(t *testing.T) {
	tests := []struct {
		name     string
		order    *domain.Order
		err      error
		wantCode int
	}{
		{"found", &domain.Order{ID: "order-1", Status: domain.StatusPending}, nil, http.StatusOK},
		{"missing", nil, nil, http.StatusNotFound},
		{"not_found_error", nil, domain.ErrOrderNotFound, http.StatusNotFound},
		{"internal_error", nil, errors.New("boom"), http.StatusInternalServerError},
		{"timeout", nil, context.DeadlineExceeded, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, rest.Options{})
			f.orders.EXPECT().GetOrder(gomock.Any(), "order-1").Return(tt.order, tt.err)

			w := do(f.router, http.MethodGet, "/admin/orders/order-1", "")
			if w.Code != tt.wantCode {
				t.Fatalf("want %d, got %d body=%s", tt.wantCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestGetOrder_AllowedTargets(t *testing.T) {
	f := newFixture(t, rest.Options{})

	f.orders.EXPECT().GetOrder(gomock.Any(), "d1").Return(&domain.Order{ID: "d1", Status: domain.StatusDelivered}, nil)
	f.orders.EXPECT().GetOrder(gomock.Any(), "p1").Return(&domain.Order{ID: "p1", Status: domain.StatusPending}, nil)

	var terminal struct {
		Order          domain.Order    `json:"order"`
		AllowedTargets []domain.Status `json:"allowed_targets"`
	}
	decode(t, do(f.router, http.MethodGet, "/admin/orders/d1", ""), &terminal)
	if terminal.Order.ID != "d1" || terminal.AllowedTargets == nil || len(terminal.AllowedTargets) != 0 {
		t.Fatalf("terminal order must have empty targets: %+v", terminal)
	}

	var pending struct {
		AllowedTargets []domain.Status `json:"allowed_targets"`
	}
	decode(t, do(f.router, http.MethodGet, "/admin/orders/p1", ""), &pending)
	if len(pending.AllowedTargets) != 2 ||
		pending.AllowedTargets[0] != domain.StatusConfirmed || pending.AllowedTargets[1] != domain.StatusCancelled {
		t.Fatalf("pending targets %v", pending.AllowedTargets)
	}
}

func TestUpdateStatus_OK(t *testing.T) {
	f := newFixture(t, rest.Options{})

	f.orders.EXPECT().UpdateStatus(gomock.Any(), "42", domain.StatusConfirmed).
		Return(domain.Order{ID: "42", Status: domain.StatusConfirmed, TrackingCode: "TRK-1"}, nil)

	w := do(f.router, http.MethodPost, "/admin/orders/42/status", `{"status":" Confirmed "}`)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Order domain.Order `json:"order"`
	}
	decode(t, w, &got)
	if got.Order.TrackingCode != "TRK-1" || got.Order.Status != domain.StatusConfirmed {
		t.Fatalf("order %+v", got.Order)
	}
}

func TestUpdateStatus_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svcErr   error
		callSvc  bool
		wantCode int
	}{
		{"bad_json", `{"status":`, nil, false, http.StatusBadRequest},
		{"unknown_status", `{"status":"lost"}`, nil, false, http.StatusBadRequest},
		{"invalid_transition", `{"status":"delivered"}`,
			&domain.TransitionError{OrderID: "42", From: domain.StatusPending, To: domain.StatusDelivered, Reason: "skip"},
			true, http.StatusConflict},
		{"concurrent_change", `{"status":"delivered"}`, ports.ErrStatusConflict, true, http.StatusConflict},
		{"not_found", `{"status":"delivered"}`, domain.ErrOrderNotFound, true, http.StatusNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, rest.Options{})
			if tt.callSvc {
				f.orders.EXPECT().UpdateStatus(gomock.Any(), "42", gomock.Any()).Return(domain.Order{}, tt.svcErr)
			}

			w := do(f.router, http.MethodPost, "/admin/orders/42/status", tt.body)
			if w.Code != tt.wantCode {
				t.Fatalf("want %d, got %d body=%s", tt.wantCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestUpdateStatus_TransitionErrorBody(t *testing.T) {
	f := newFixture(t, rest.Options{})

	f.orders.EXPECT().UpdateStatus(gomock.Any(), "42", domain.StatusDelivered).
		Return(domain.Order{}, &domain.TransitionError{OrderID: "42", From: domain.StatusPending, To: domain.StatusDelivered})

	w := do(f.router, http.MethodPost, "/admin/orders/42/status", `{"status":"delivered"}`)
	var body struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	decode(t, w, &body)
	if body.From != "pending" || body.To != "delivered" {
		t.Fatalf("body %s", w.Body.String())
	}
}

func TestBulkUpdateStatus_MixedOutcomes(t *testing.T) {
	f := newFixture(t, rest.Options{})

	f.orders.EXPECT().BulkUpdateStatus(gomock.Any(), []string{"1", "2", "3"}, domain.StatusConfirmed).
		Return(lifecycle.BulkResult{
			Target: domain.StatusConfirmed,
			Outcomes: []lifecycle.Outcome{
				{OrderID: "1", Order: domain.Order{ID: "1", Status: domain.StatusConfirmed, TrackingCode: "TRK-A"}},
				{OrderID: "2", Err: &domain.TransitionError{OrderID: "2", From: domain.StatusDelivered, To: domain.StatusConfirmed}},
				{OrderID: "3", Err: domain.ErrOrderNotFound},
			},
		}, nil)

	w := do(f.router, http.MethodPost, "/admin/orders/bulk-status", `{"ids":["1","2","3"],"status":"confirmed"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d body=%s", w.Code, w.Body.String())
	}

	var got struct {
		Target    string `json:"target"`
		Succeeded int    `json:"succeeded"`
		Failed    int    `json:"failed"`
		Outcomes  []struct {
			OrderID      string `json:"order_id"`
			OK           bool   `json:"ok"`
			TrackingCode string `json:"tracking_code"`
			Error        string `json:"error"`
		} `json:"outcomes"`
	}
	decode(t, w, &got)
	if got.Target != "confirmed" || got.Succeeded != 1 || got.Failed != 2 || len(got.Outcomes) != 3 {
		t.Fatalf("summary %+v", got)
	}
	if !got.Outcomes[0].OK || got.Outcomes[0].TrackingCode != "TRK-A" {
		t.Fatalf("first outcome %+v", got.Outcomes[0])
	}
	if got.Outcomes[1].OK || got.Outcomes[1].Error == "" || got.Outcomes[2].OrderID != "3" {
		t.Fatalf("failed outcomes %+v", got.Outcomes[1:])
	}
}

func TestBulkUpdateStatus_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad_json", `not json`},
		{"no_ids", `{"ids":[],"status":"confirmed"}`},
		{"too_many_ids", `{"ids":["1","2","3"],"status":"confirmed"}`},
		{"unknown_status", `{"ids":["1"],"status":"teleported"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, rest.Options{MaxBulkIDs: 2})
			w := do(f.router, http.MethodPost, "/admin/orders/bulk-status", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("want 400, got %d body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func TestExportOrders_StreamsJSONLines(t *testing.T) {
	f := newFixture(t, rest.Options{})

	f.orders.EXPECT().ExportOrders(gomock.Any(), query.Spec{PaymentMethod: "cod"}).
		Return([]domain.Order{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil)

	w := do(f.router, http.MethodGet, "/admin/orders/export?payment_method=cod", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/x-ndjson" {
		t.Fatalf("content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment;") {
		t.Fatalf("content disposition %q", cd)
	}

	var ids []string
	sc := bufio.NewScanner(w.Body)
	for sc.Scan() {
		var o domain.Order
		if err := json.Unmarshal(sc.Bytes(), &o); err != nil {
			t.Fatalf("line %q: %v", sc.Text(), err)
		}
		ids = append(ids, o.ID)
	}
	if strings.Join(ids, ",") != "a,b,c" {
		t.Fatalf("exported ids %v", ids)
	}
}

func TestExportOrders_Error(t *testing.T) {
	f := newFixture(t, rest.Options{})

	f.orders.EXPECT().ExportOrders(gomock.Any(), gomock.Any()).
		Return(nil, domain.NewFetchError("export", errors.New("down")))

	w := do(f.router, http.MethodGet, "/admin/orders/export", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("want 502, got %d", w.Code)
	}
	if w.Header().Get("Content-Disposition") != "" {
		t.Fatalf("failed export must not look like a download")
	}
}

func TestAnalytics_DefaultPeriod(t *testing.T) {
	f := newFixture(t, rest.Options{DefaultPeriodDays: 14})

	f.analytics.EXPECT().Report(gomock.Any(), 14).Return(ports.AnalyticsResult{
		Report: analytics.Report{PeriodDays: 14, TotalRevenue: 900, TopProducts: []analytics.ProductRanking{}},
	}, nil)

	w := do(f.router, http.MethodGet, "/admin/analytics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		PeriodDays   int    `json:"period_days"`
		TotalRevenue int64  `json:"total_revenue"`
		Stale        bool   `json:"stale"`
		Error        string `json:"error"`
	}
	decode(t, w, &got)
	if got.PeriodDays != 14 || got.TotalRevenue != 900 || got.Stale || got.Error != "" {
		t.Fatalf("report %+v", got)
	}
}

func TestAnalytics_StaleReport(t *testing.T) {
	f := newFixture(t, rest.Options{})

	f.analytics.EXPECT().Report(gomock.Any(), 30).Return(ports.AnalyticsResult{
		Report: analytics.Report{PeriodDays: 30, GeneratedAt: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)},
		Stale:  true,
		Err:    domain.NewFetchError("list", errors.New("timeout")),
	}, nil)

	w := do(f.router, http.MethodGet, "/admin/analytics?period=30", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	var got struct {
		Stale bool   `json:"stale"`
		Error string `json:"error"`
	}
	decode(t, w, &got)
	if !got.Stale || !strings.Contains(got.Error, "timeout") {
		t.Fatalf("stale marker missing: %s", w.Body.String())
	}
}

func TestAnalytics_InvalidPeriod(t *testing.T) {
	f := newFixture(t, rest.Options{})

	f.analytics.EXPECT().Report(gomock.Any(), 0).
		Return(ports.AnalyticsResult{}, domain.NewValidationError("period", "0", "period length must be at least one day"))

	w := do(f.router, http.MethodGet, "/admin/analytics?period=abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestRouter_PingAndFallbacks(t *testing.T) {
	f := newFixture(t, rest.Options{})

	if w := do(f.router, http.MethodGet, "/ping", ""); w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("ping: %d %q", w.Code, w.Body.String())
	}
	if w := do(f.router, http.MethodGet, "/nope", ""); w.Code != http.StatusNotFound {
		t.Fatalf("unknown route: want 404, got %d", w.Code)
	}
	if w := do(f.router, http.MethodDelete, "/admin/orders", ""); w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("wrong method: want 405, got %d", w.Code)
	}
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	f := newFixture(t, rest.Options{})

	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("request id %q", got)
	}
}
