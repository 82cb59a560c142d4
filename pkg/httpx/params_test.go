package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/orders-backoffice/pkg/httpx"
)

// Утилита для создания *gin.Context с query-строкой
func ctxWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/?"+rawQuery, http.NoBody)
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c
}

func TestClampInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		v, lo, hi int
		want      int
	}{
		{"below_min", 0, 1, 10, 1},
		{"above_max", 11, 1, 10, 10},
		{"inside", 5, 1, 10, 5},
		{"equal_min", 1, 1, 10, 1},
		{"equal_max", 10, 1, 10, 10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := httpx.ClampInt(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Fatalf("ClampInt(%d,%d,%d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestParsePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		rawQuery     string
		defaultSize  int
		maxSize      int
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "", 20, 100, 1, 20},
		{"default_above_max", "", 500, 100, 1, 100},
		{"ok_both", "page=3&page_size=50", 20, 100, 3, 50},
		{"page_zero_is_first", "page=0", 20, 100, 1, 20},
		{"page_negative_is_first", "page=-2", 20, 100, 1, 20},
		{"page_non_int", "page=abc", 20, 100, 1, 20},
		{"size_zero_clamped", "page_size=0", 20, 100, 1, 1},
		{"size_above_max_clamped", "page_size=999", 20, 100, 1, 100},
		{"size_non_int_default", "page_size=x", 20, 100, 1, 20},
		{"prev_size_same_keeps_page", "page=4&page_size=25&prev_page_size=25", 20, 100, 4, 25},
		{"prev_size_changed_resets_page", "page=4&page_size=50&prev_page_size=25", 20, 100, 1, 50},
		{"prev_size_above_max_keeps_page", "page=4&page_size=500&prev_page_size=500", 20, 100, 4, 100},
		{"prev_size_vs_clamped_default", "page=4&prev_page_size=100", 500, 100, 4, 100},
		{"prev_size_garbage_ignored", "page=4&page_size=50&prev_page_size=?", 20, 100, 4, 50},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			page, size := httpx.ParsePage(ctxWithQuery(tt.rawQuery), tt.defaultSize, tt.maxSize)
			if page != tt.wantPage || size != tt.wantPageSize {
				t.Fatalf("got page=%d size=%d, want %d/%d (query=%q)", page, size, tt.wantPage, tt.wantPageSize, tt.rawQuery)
			}
		})
	}
}

func TestParseIntDefault(t *testing.T) {
	t.Parallel()

	if got := httpx.ParseIntDefault(ctxWithQuery("period=30"), "period", 7); got != 30 {
		t.Fatalf("got %d, want 30", got)
	}
	if got := httpx.ParseIntDefault(ctxWithQuery(""), "period", 7); got != 7 {
		t.Fatalf("got %d, want default 7", got)
	}
	if got := httpx.ParseIntDefault(ctxWithQuery("period=week"), "period", 7); got != 7 {
		t.Fatalf("got %d, want default 7", got)
	}
}
