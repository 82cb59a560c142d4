package httpx

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ClampInt — ограничение значения v в диапазоне [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParsePage — читает page/page_size из query с дефолтами и границами.
// Если клиент прислал prev_page_size и он отличается от page_size, страница сбрасывается на 1.
func ParsePage(c *gin.Context, defaultSize, maxSize int) (page, pageSize int) {
	page = 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}

	pageSize = ClampInt(defaultSize, 1, maxSize)
	requested := pageSize
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil {
		requested = v
		pageSize = ClampInt(v, 1, maxSize)
	}

	// Сравнение с тем, что клиент прислал, а не с прижатым значением.
	if prev, err := strconv.Atoi(c.Query("prev_page_size")); err == nil && prev != requested {
		page = 1
	}
	return page, pageSize
}

// ParseIntDefault — целое из query или def, если параметр отсутствует или не число.
func ParseIntDefault(c *gin.Context, key string, def int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return def
}
