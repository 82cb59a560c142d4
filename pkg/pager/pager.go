// Package pager строит компактный список номеров страниц с многоточиями для постраничной навигации.
package pager

// DefaultMaxVisible — сколько номеров показывается без сокращения.
const DefaultMaxVisible = 7

// Marker — элемент навигации: номер страницы или многоточие (Page == 0).
type Marker struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// Sequence — маркеры для текущей страницы current из total.
// Если total <= maxVisible, возвращаются все страницы. Иначе первая и последняя страницы
// присутствуют всегда, между ними окно из maxVisible-2 страниц вокруг current,
// разрывы заменяются одним многоточием.
func Sequence(current, total, maxVisible int) []Marker {
	if total < 1 {
		return []Marker{}
	}
	if maxVisible < 3 {
		maxVisible = DefaultMaxVisible
	}
	current = min(max(current, 1), total)

	if total <= maxVisible {
		out := make([]Marker, 0, total)
		for p := 1; p <= total; p++ {
			out = append(out, Marker{Page: p})
		}
		return out
	}

	window := maxVisible - 2
	start := max(current-window/2, 2)
	end := start + window - 1
	if end > total-1 {
		end = total - 1
		start = end - window + 1
	}

	out := make([]Marker, 0, window+4)
	out = append(out, Marker{Page: 1})
	if start > 2 {
		out = append(out, Marker{Ellipsis: true})
	}
	for p := start; p <= end; p++ {
		out = append(out, Marker{Page: p})
	}
	if end < total-1 {
		out = append(out, Marker{Ellipsis: true})
	}
	return append(out, Marker{Page: total})
}
