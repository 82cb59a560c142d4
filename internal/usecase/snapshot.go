package usecase

import (
	"context"
	"time"

	"github.com/Gunvolt24/orders-backoffice/internal/domain"
	"github.com/Gunvolt24/orders-backoffice/internal/ports"
)

// DefaultFetchLimit — размер страницы при выгрузке снимка из хранилища.
const DefaultFetchLimit = 500

// snapshotLoader — выгрузка полного снимка заказов постранично через ports.OrderRepository.
// Каждый заказ проверяется валидатором; битые записи пропускаются с предупреждением.
type snapshotLoader struct {
	repo      ports.OrderRepository
	validator ports.OrderValidator
	log       ports.Logger
	limit     int
}

func newSnapshotLoader(repo ports.OrderRepository, validator ports.OrderValidator, log ports.Logger, limit int) *snapshotLoader {
	if limit <= 0 {
		limit = DefaultFetchLimit
	}
	return &snapshotLoader{repo: repo, validator: validator, log: log, limit: limit}
}

// load — все заказы с placed_at в [from, to); nil-границы означают «без ограничения».
// Ошибка хранилища возвращается как *domain.FetchError.
func (l *snapshotLoader) load(ctx context.Context, from, to *time.Time) ([]domain.Order, error) {
	var out []domain.Order
	seen := 0
	for page := 1; ; page++ {
		res, err := l.repo.ListOrders(ctx, ports.ListFilter{From: from, To: to, Page: page, Limit: l.limit})
		if err != nil {
			l.log.Errorf(ctx, "repo.ListOrders failed page=%d err=%v", page, err)
			return nil, domain.NewFetchError("list orders", err)
		}
		seen += len(res.Orders)
		for i := range res.Orders {
			o := &res.Orders[i]
			if vErr := l.validator.Validate(ctx, o); vErr != nil {
				l.log.Warnf(ctx, "skip invalid order id=%s err=%v", o.ID, vErr)
				continue
			}
			out = append(out, *o)
		}
		if len(res.Orders) == 0 || seen >= res.Pagination.Total {
			return out, nil
		}
	}
}
