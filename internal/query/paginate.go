package query

import "github.com/Gunvolt24/orders-backoffice/internal/domain"

// Page — одна страница представления. StartIndex/EndIndex — полуинтервал [start, end) в представлении.
type Page struct {
	Items      []domain.Order
	Page       int
	PageSize   int
	StartIndex int
	EndIndex   int
	TotalItems int
	TotalPages int
}

// Paginate — нарезать представление на страницы; page считается с 1.
// Страница за пределами диапазона — пустой Items, индексы прижаты к границам коллекции.
// Контракт вызывающего: при смене pageSize текущая страница сбрасывается на 1
// (HTTP-слой делает это по параметру prev_page_size).
func Paginate(view []domain.Order, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}

	total := len(view)
	start := total
	if page-1 <= total/pageSize {
		start = min((page-1)*pageSize, total)
	}
	end := start + min(pageSize, total-start)

	return Page{
		Items:      append([]domain.Order(nil), view[start:end]...),
		Page:       page,
		PageSize:   pageSize,
		StartIndex: start,
		EndIndex:   end,
		TotalItems: total,
		TotalPages: TotalPages(total, pageSize),
	}
}

// TotalPages — количество страниц для total элементов.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 0
	}
	return (total-1)/pageSize + 1
}
