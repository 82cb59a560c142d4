package analytics_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Gunvolt24/orders-backoffice/internal/analytics"
	"github.com/Gunvolt24/orders-backoffice/internal/domain"
)

var (
	moscow = time.FixedZone("MSK", 3*60*60)
	// 2026-10-17 15:30 по местному времени.
	now = time.Date(2026, 10, 17, 15, 30, 0, 0, moscow)
)

func newAggregator(topN int) analytics.Aggregator {
	return analytics.Aggregator{TopN: topN, Location: moscow, Now: func() time.Time { return now }}
}

func delivered(id string, placed time.Time, total int64, lines ...domain.OrderLine) domain.Order {
	return domain.Order{ID: id, Status: domain.StatusDelivered, Subtotal: total, Total: total, PlacedAt: placed, Lines: lines}
}

func line(product string, qty int, price int64) domain.OrderLine {
	return domain.OrderLine{ProductID: product, Name: "name-" + product, Category: "cat", UnitPrice: price, Quantity: qty}
}

func daysAgo(n int) time.Time { return now.AddDate(0, 0, -n) }

func TestAggregate_ThreeOrdersToday(t *testing.T) {
	t.Parallel()

	orders := []domain.Order{
		delivered("1", now.Add(-time.Hour), 100),
		delivered("2", now.Add(-2*time.Hour), 200),
		delivered("3", now.Add(-3*time.Hour), 150),
	}

	r, err := newAggregator(10).Aggregate(orders, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Buckets) != 7 {
		t.Fatalf("want 7 buckets, got %d", len(r.Buckets))
	}

	last := r.Buckets[6]
	if last.Revenue != 450 || last.OrderCount != 3 {
		t.Fatalf("today's bucket = %+v, want {450, 3}", last)
	}
	for i, b := range r.Buckets[:6] {
		if b.Revenue != 0 || b.OrderCount != 0 {
			t.Fatalf("bucket %d must be empty, got %+v", i, b)
		}
	}
	if r.TotalRevenue != 450 || r.TotalOrders != 3 || r.AverageOrderValue != 150 {
		t.Fatalf("totals wrong: %+v", r)
	}
}

func TestAggregate_WindowIsAscendingLocalDays(t *testing.T) {
	t.Parallel()

	r, err := newAggregator(10).Aggregate(nil, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"2026-10-13", "2026-10-14", "2026-10-15", "2026-10-16", "2026-10-17"}
	for i, b := range r.Buckets {
		if got := b.Date.Format(time.DateOnly); got != want[i] {
			t.Fatalf("bucket %d date %s, want %s", i, got, want[i])
		}
		if b.Date.Hour() != 0 || b.Date.Location() != moscow {
			t.Fatalf("bucket %d must be local midnight, got %v", i, b.Date)
		}
	}
}

func TestAggregate_UsesLocalCalendarDate(t *testing.T) {
	t.Parallel()

	// 2026-10-16 22:30 UTC — это уже 17 октября по MSK.
	lateUTC := time.Date(2026, 10, 16, 22, 30, 0, 0, time.UTC)
	r, err := newAggregator(10).Aggregate([]domain.Order{delivered("1", lateUTC, 70)}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Buckets[1].Revenue != 70 || r.Buckets[0].Revenue != 0 {
		t.Fatalf("order must land in today's local bucket: %+v", r.Buckets)
	}
}

func TestAggregate_OnlyDeliveredCounts(t *testing.T) {
	t.Parallel()

	orders := []domain.Order{
		delivered("1", now, 100, line("p1", 1, 100)),
		{ID: "2", Status: domain.StatusCancelled, Total: 1000, PlacedAt: now, Lines: []domain.OrderLine{line("p2", 9, 100)}},
		{ID: "3", Status: domain.StatusPending, Total: 1000, PlacedAt: now, Lines: []domain.OrderLine{line("p2", 9, 100)}},
		{ID: "4", Status: domain.StatusShipping, Total: 1000, PlacedAt: now},
		{ID: "5", Status: domain.StatusConfirmed, Total: 1000, PlacedAt: now},
	}

	r, err := newAggregator(10).Aggregate(orders, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TotalRevenue != 100 || r.TotalOrders != 1 {
		t.Fatalf("only delivered revenue counts, got revenue=%d orders=%d", r.TotalRevenue, r.TotalOrders)
	}
	if len(r.TopProducts) != 1 || r.TopProducts[0].ProductID != "p1" {
		t.Fatalf("non-delivered lines must not be ranked: %+v", r.TopProducts)
	}
}

func TestAggregate_OutOfWindowIgnored(t *testing.T) {
	t.Parallel()

	orders := []domain.Order{
		delivered("old", daysAgo(30), 999, line("old", 50, 1)),
		delivered("future", now.AddDate(0, 0, 2), 999),
		delivered("edge", daysAgo(6), 10),
	}
	r, err := newAggregator(10).Aggregate(orders, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TotalRevenue != 10 || r.Buckets[0].Revenue != 10 {
		t.Fatalf("only the in-window order counts: %+v", r)
	}
	if len(r.TopProducts) != 0 {
		t.Fatalf("out-of-window lines must not be ranked: %+v", r.TopProducts)
	}
}

func TestAggregate_BucketSumEqualsFilteredTotals(t *testing.T) {
	t.Parallel()

	var orders []domain.Order
	var want int64
	for i := 0; i < 40; i++ {
		total := int64(i*37 + 1)
		o := delivered("d", daysAgo(i%10), total)
		if i%3 == 0 {
			o.Status = domain.StatusCancelled
		} else if i%10 < 7 {
			want += total
		}
		orders = append(orders, o)
	}

	r, err := newAggregator(10).Aggregate(orders, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sum int64
	for _, b := range r.Buckets {
		sum += b.Revenue
	}
	if sum != want || r.TotalRevenue != want {
		t.Fatalf("bucket sum=%d total=%d, want %d", sum, r.TotalRevenue, want)
	}
}

func TestAggregate_TopProductsRankingAndTies(t *testing.T) {
	t.Parallel()

	orders := []domain.Order{
		delivered("1", now, 0, line("a", 2, 10), line("b", 5, 1)),
		delivered("2", now, 0, line("c", 3, 7), line("a", 1, 10)),
		delivered("3", daysAgo(1), 0, line("d", 5, 2), line("e", 1, 1)),
	}

	r, err := newAggregator(3).Aggregate(orders, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// b и d по 5 штук — b встретился раньше; a и c по 3 — a раньше, но в топ-3 попадает только a.
	want := []struct {
		id      string
		units   int
		revenue int64
	}{{"b", 5, 5}, {"d", 5, 10}, {"a", 3, 30}}

	if len(r.TopProducts) != len(want) {
		t.Fatalf("want %d products, got %+v", len(want), r.TopProducts)
	}
	for i, w := range want {
		got := r.TopProducts[i]
		if got.ProductID != w.id || got.UnitsSold != w.units || got.Revenue != w.revenue {
			t.Fatalf("rank %d = %+v, want %+v", i, got, w)
		}
	}
	if r.TopProducts[0].Name != "name-b" || r.TopProducts[0].Category != "cat" {
		t.Fatalf("ranking must carry product name and category: %+v", r.TopProducts[0])
	}
}

func TestAggregate_DefaultTopN(t *testing.T) {
	t.Parallel()

	var lines []domain.OrderLine
	for i := 0; i < 15; i++ {
		lines = append(lines, line(string(rune('a'+i)), 15-i, 1))
	}
	r, err := analytics.Aggregator{Location: moscow, Now: func() time.Time { return now }}.
		Aggregate([]domain.Order{delivered("1", now, 0, lines...)}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.TopProducts) != analytics.DefaultTopN {
		t.Fatalf("want %d products, got %d", analytics.DefaultTopN, len(r.TopProducts))
	}
	for i := 1; i < len(r.TopProducts); i++ {
		if r.TopProducts[i-1].UnitsSold < r.TopProducts[i].UnitsSold {
			t.Fatalf("ranking must be descending by units sold: %+v", r.TopProducts)
		}
	}
}

func TestAggregate_NoOrders_ZeroAverage(t *testing.T) {
	t.Parallel()

	r, err := newAggregator(10).Aggregate(nil, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.AverageOrderValue != 0 || math.IsNaN(r.AverageOrderValue) || math.IsInf(r.AverageOrderValue, 0) {
		t.Fatalf("average must be 0, got %v", r.AverageOrderValue)
	}
	if r.GrowthRate != 0 || r.TopProducts == nil || len(r.TopProducts) != 0 {
		t.Fatalf("empty report wrong: %+v", r)
	}
}

func TestAggregate_GrowthRate(t *testing.T) {
	t.Parallel()

	orders := []domain.Order{
		// текущее окно (7 дней: 11..17 октября)
		delivered("c1", now, 300),
		delivered("c2", daysAgo(6), 300),
		// предыдущее окно (4..10 октября)
		delivered("p1", daysAgo(7), 200),
		delivered("p2", daysAgo(13), 200),
		// до предыдущего окна — не учитывается
		delivered("old", daysAgo(14), 5000),
		// отменённый в предыдущем окне — не учитывается
		{ID: "px", Status: domain.StatusCancelled, Total: 5000, PlacedAt: daysAgo(8)},
	}

	r, err := newAggregator(10).Aggregate(orders, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.PreviousRevenue != 400 {
		t.Fatalf("previous revenue %d, want 400", r.PreviousRevenue)
	}
	if r.GrowthRate != 50 {
		t.Fatalf("growth rate %v, want 50", r.GrowthRate)
	}
}

func TestGrowthRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cur, prev int64
		want      float64
	}{
		{150, 100, 50},
		{50, 100, -50},
		{100, 0, 0},
		{0, 0, 0},
		{0, 200, -100},
	}
	for _, tt := range tests {
		if got := analytics.GrowthRate(tt.cur, tt.prev); got != tt.want {
			t.Fatalf("GrowthRate(%d,%d) = %v, want %v", tt.cur, tt.prev, got, tt.want)
		}
	}
}

func TestAggregate_InvalidPeriod(t *testing.T) {
	t.Parallel()

	for _, p := range []int{0, -3} {
		if _, err := newAggregator(10).Aggregate(nil, p); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("period %d: want ErrValidation, got %v", p, err)
		}
	}
}

func TestWindows_AreAdjacent(t *testing.T) {
	t.Parallel()

	a := newAggregator(10)
	from, to := a.Window(7)
	prevFrom, prevTo := a.PreviousWindow(7)

	if !prevTo.Equal(from) {
		t.Fatalf("previous window must end where current starts: %v vs %v", prevTo, from)
	}
	if got := to.Sub(from); got != 7*24*time.Hour {
		t.Fatalf("current window length %v", got)
	}
	if got := prevTo.Sub(prevFrom); got != 7*24*time.Hour {
		t.Fatalf("previous window length %v", got)
	}
	if to.Format(time.DateOnly) != "2026-10-18" {
		t.Fatalf("window must end after today, got %v", to)
	}
}
