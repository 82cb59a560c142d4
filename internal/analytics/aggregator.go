// Package analytics — агрегация снимка заказов в дневной ряд продаж, топ товаров и темп роста.
// Отчёт пересчитывается на каждый вызов; кэширование — забота вызывающего слоя.
package analytics

import (
	"slices"
	"time"

	"github.com/Gunvolt24/orders-backoffice/internal/domain"
)

// DefaultTopN — размер топа товаров по умолчанию.
const DefaultTopN = 10

// SalesBucket — выручка и количество заказов за один календарный день.
type SalesBucket struct {
	Date       time.Time `json:"date"`
	Revenue    int64     `json:"revenue"`
	OrderCount int       `json:"order_count"`
}

// ProductRanking — накопленные продажи товара.
type ProductRanking struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
	UnitsSold int    `json:"units_sold"`
	Revenue   int64  `json:"revenue"`
}

// Report — аналитический отчёт за период.
type Report struct {
	PeriodDays        int              `json:"period_days"`
	From              time.Time        `json:"from"`
	To                time.Time        `json:"to"`
	Buckets           []SalesBucket    `json:"buckets"`
	TopProducts       []ProductRanking `json:"top_products"`
	TotalRevenue      int64            `json:"total_revenue"`
	TotalOrders       int              `json:"total_orders"`
	AverageOrderValue float64          `json:"average_order_value"`
	PreviousRevenue   int64            `json:"previous_revenue"`
	GrowthRate        float64          `json:"growth_rate"`
	GeneratedAt       time.Time        `json:"generated_at"`
}

// Aggregator — параметры агрегации. Нулевое значение пригодно: TopN=10, локальная зона, time.Now.
type Aggregator struct {
	TopN     int
	Location *time.Location
	Now      func() time.Time
}

// Window — полуинтервал [from, to) из periodDays календарных дней, заканчивающийся сегодня включительно.
func (a Aggregator) Window(periodDays int) (from, to time.Time) {
	today := a.today()
	return today.AddDate(0, 0, -(periodDays - 1)), today.AddDate(0, 0, 1)
}

// PreviousWindow — окно той же длины, непосредственно предшествующее текущему.
func (a Aggregator) PreviousWindow(periodDays int) (from, to time.Time) {
	curFrom, _ := a.Window(periodDays)
	return curFrom.AddDate(0, 0, -periodDays), curFrom
}

// Aggregate — построить отчёт за periodDays дней.
// Учитываются только доставленные заказы; заказы вне окна игнорируются.
func (a Aggregator) Aggregate(orders []domain.Order, periodDays int) (Report, error) {
	if periodDays < 1 {
		return Report{}, domain.NewValidationError("period", "", "period length must be at least one day")
	}

	from, to := a.Window(periodDays)
	buckets, index := a.emptyBuckets(from, periodDays)
	ranking := newRanker()

	for i := range orders {
		o := &orders[i]
		if o.Status != domain.StatusDelivered {
			continue
		}
		pos, ok := index[dayKey(a.dayOf(o.PlacedAt))]
		if !ok {
			continue
		}
		buckets[pos].Revenue += o.Total
		buckets[pos].OrderCount++
		for _, line := range o.Lines {
			ranking.add(line)
		}
	}

	report := Report{
		PeriodDays:  periodDays,
		From:        from,
		To:          to,
		Buckets:     buckets,
		TopProducts: ranking.top(a.topN()),
		GeneratedAt: a.now(),
	}
	for _, b := range buckets {
		report.TotalRevenue += b.Revenue
		report.TotalOrders += b.OrderCount
	}
	if report.TotalOrders > 0 {
		report.AverageOrderValue = float64(report.TotalRevenue) / float64(report.TotalOrders)
	}

	report.PreviousRevenue = a.previousRevenue(orders, periodDays)
	report.GrowthRate = GrowthRate(report.TotalRevenue, report.PreviousRevenue)
	return report, nil
}

// GrowthRate — процент изменения выручки; 0, если предыдущая выручка не положительна.
func GrowthRate(current, previous int64) float64 {
	if previous <= 0 {
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

// previousRevenue — выручка доставленных заказов в предыдущем окне той же длины.
func (a Aggregator) previousRevenue(orders []domain.Order, periodDays int) int64 {
	from, to := a.PreviousWindow(periodDays)
	var sum int64
	for i := range orders {
		o := &orders[i]
		if o.Status != domain.StatusDelivered {
			continue
		}
		day := a.dayOf(o.PlacedAt)
		if day.Before(from) || !day.Before(to) {
			continue
		}
		sum += o.Total
	}
	return sum
}

func (a Aggregator) emptyBuckets(from time.Time, periodDays int) ([]SalesBucket, map[string]int) {
	buckets := make([]SalesBucket, periodDays)
	index := make(map[string]int, periodDays)
	for i := range buckets {
		day := from.AddDate(0, 0, i)
		buckets[i] = SalesBucket{Date: day}
		index[dayKey(day)] = i
	}
	return buckets, index
}

func dayKey(day time.Time) string { return day.Format(time.DateOnly) }

// dayOf — полночь локальной календарной даты момента t.
func (a Aggregator) dayOf(t time.Time) time.Time {
	local := t.In(a.location())
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, a.location())
}

func (a Aggregator) today() time.Time { return a.dayOf(a.now()) }

func (a Aggregator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a Aggregator) location() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}

func (a Aggregator) topN() int {
	if a.TopN > 0 {
		return a.TopN
	}
	return DefaultTopN
}

// ranker — накопитель продаж по товарам с запоминанием порядка первого появления.
type ranker struct {
	entries []ProductRanking
	index   map[string]int
}

func newRanker() *ranker {
	return &ranker{index: make(map[string]int)}
}

func (r *ranker) add(line domain.OrderLine) {
	pos, ok := r.index[line.ProductID]
	if !ok {
		pos = len(r.entries)
		r.index[line.ProductID] = pos
		r.entries = append(r.entries, ProductRanking{ProductID: line.ProductID, Name: line.Name, Category: line.Category})
	}
	r.entries[pos].UnitsSold += line.Quantity
	r.entries[pos].Revenue += line.LineTotal()
}

// top — n лидеров по UnitsSold; при равенстве раньше тот, кто встретился первым.
func (r *ranker) top(n int) []ProductRanking {
	ranked := slices.Clone(r.entries)
	slices.SortStableFunc(ranked, func(a, b ProductRanking) int {
		return b.UnitsSold - a.UnitsSold
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	if ranked == nil {
		ranked = []ProductRanking{}
	}
	return ranked
}
