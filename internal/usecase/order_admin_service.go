package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/orders-backoffice/internal/domain"
	"github.com/Gunvolt24/orders-backoffice/internal/lifecycle"
	"github.com/Gunvolt24/orders-backoffice/internal/ports"
	"github.com/Gunvolt24/orders-backoffice/internal/query"
	"github.com/Gunvolt24/orders-backoffice/pkg/metrics"
)

// Проверка, что OrderAdminService удовлетворяет порту транспорта.
var _ ports.OrderAdminService = (*OrderAdminService)(nil)

// OrderAdminService — прикладная логика back-office над заказами (без знаний о транспорте).
// Списки и выгрузка каждый раз строятся по свежему снимку из хранилища,
// поэтому после успешной смены статуса устаревшее представление не переиспользуется.
type OrderAdminService struct {
	repo      ports.OrderRepository
	publisher ports.StatusEventPublisher // может быть nil: события не публикуются
	machine   *lifecycle.Machine
	snapshot  *snapshotLoader
	log       ports.Logger
}

// NewOrderAdminService — DI-конструктор. fetchLimit — размер страницы выгрузки снимка.
func NewOrderAdminService(
	repo ports.OrderRepository,
	publisher ports.StatusEventPublisher,
	validator ports.OrderValidator,
	machine *lifecycle.Machine,
	log ports.Logger,
	fetchLimit int,
) *OrderAdminService {
	return &OrderAdminService{
		repo:      repo,
		publisher: publisher,
		machine:   machine,
		snapshot:  newSnapshotLoader(repo, validator, log, fetchLimit),
		log:       log,
	}
}

// ListOrders — отфильтрованная и отсортированная страница заказов.
// Некорректная спецификация отклоняется до обращения к хранилищу.
func (s *OrderAdminService) ListOrders(ctx context.Context, spec query.Spec, page, pageSize int) (query.Page, error) {
	view, err := s.view(ctx, spec)
	if err != nil {
		return query.Page{}, err
	}
	return query.Paginate(view, page, pageSize), nil
}

// ExportOrders — полное представление (после фильтра и сортировки) для построчной выгрузки.
func (s *OrderAdminService) ExportOrders(ctx context.Context, spec query.Spec) ([]domain.Order, error) {
	return s.view(ctx, spec)
}

func (s *OrderAdminService) view(ctx context.Context, spec query.Spec) ([]domain.Order, error) {
	spec = spec.Normalize()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	orders, err := s.snapshot.load(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	return query.Apply(orders, spec)
}

// GetOrder — заказ по ID. Возвращает (*Order, nil) или (nil, nil), если записи нет.
func (s *OrderAdminService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetByID failed order_id=%s err=%v", id, err)
		return nil, domain.NewFetchError("get order", err)
	}
	return order, nil
}

// UpdateStatus — перевести один заказ в target через машину состояний и сохранить переход.
func (s *OrderAdminService) UpdateStatus(ctx context.Context, id string, target domain.Status) (domain.Order, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetByID failed order_id=%s err=%v", id, err)
		return domain.Order{}, domain.NewFetchError("get order", err)
	}
	if current == nil {
		return domain.Order{}, fmt.Errorf("%w: id=%s", domain.ErrOrderNotFound, id)
	}

	next, err := s.machine.Apply(*current, target)
	if err != nil {
		metrics.StatusTransitions.WithLabelValues("rejected").Inc()
		s.log.Warnf(ctx, "transition rejected order_id=%s from=%s to=%s err=%v", id, current.Status, target, err)
		return domain.Order{}, err
	}

	if err := s.persist(ctx, current.Status, next); err != nil {
		return domain.Order{}, err
	}
	return next, nil
}

// BulkUpdateStatus — применить target к каждому заказу независимо.
// Всегда возвращает ровно len(ids) исходов в порядке ids; ошибка одного заказа не прерывает остальные.
func (s *OrderAdminService) BulkUpdateStatus(ctx context.Context, ids []string, target domain.Status) (lifecycle.BulkResult, error) {
	result := lifecycle.BulkResult{Target: target, Outcomes: make([]lifecycle.Outcome, len(ids))}

	loaded := make([]domain.Order, 0, len(ids))
	positions := make([]int, 0, len(ids))
	for i, id := range ids {
		order, err := s.repo.GetByID(ctx, id)
		switch {
		case err != nil:
			s.log.Errorf(ctx, "repo.GetByID failed order_id=%s err=%v", id, err)
			result.Outcomes[i] = lifecycle.Outcome{OrderID: id, Err: domain.NewFetchError("get order", err)}
		case order == nil:
			result.Outcomes[i] = lifecycle.Outcome{OrderID: id, Err: fmt.Errorf("%w: id=%s", domain.ErrOrderNotFound, id)}
		default:
			loaded = append(loaded, *order)
			positions = append(positions, i)
		}
	}

	applied := s.machine.ApplyBulk(loaded, target)
	for k, outcome := range applied.Outcomes {
		if outcome.OK() {
			if err := s.persist(ctx, loaded[k].Status, outcome.Order); err != nil {
				outcome = lifecycle.Outcome{OrderID: outcome.OrderID, Order: loaded[k], Err: err}
			}
		} else {
			metrics.StatusTransitions.WithLabelValues("rejected").Inc()
		}
		result.Outcomes[positions[k]] = outcome
	}

	s.log.Infof(ctx, "bulk status update target=%s total=%d succeeded=%d failed=%d",
		target, len(ids), result.Succeeded(), result.Failed())
	return result, nil
}

// persist — записать переход (один вызов на заказ) и опубликовать событие.
// Публикация best-effort: её ошибка логируется и не отменяет сохранённый переход.
func (s *OrderAdminService) persist(ctx context.Context, from domain.Status, next domain.Order) error {
	change := ports.StatusChange{
		OrderID:      next.ID,
		From:         from,
		To:           next.Status,
		TrackingCode: next.TrackingCode,
		UpdatedAt:    next.UpdatedAt,
	}
	if err := s.repo.SetStatus(ctx, change); err != nil {
		if errors.Is(err, ports.ErrStatusConflict) || errors.Is(err, domain.ErrOrderNotFound) {
			metrics.StatusTransitions.WithLabelValues("conflict").Inc()
			s.log.Warnf(ctx, "status not persisted order_id=%s from=%s to=%s err=%v", next.ID, from, next.Status, err)
			return err
		}
		metrics.StatusTransitions.WithLabelValues("failed").Inc()
		s.log.Errorf(ctx, "repo.SetStatus failed order_id=%s err=%v", next.ID, err)
		return domain.NewFetchError("set status", err)
	}
	metrics.StatusTransitions.WithLabelValues("applied").Inc()
	s.log.Infof(ctx, "order status changed order_id=%s from=%s to=%s", next.ID, from, next.Status)

	if s.publisher == nil {
		return nil
	}
	event := ports.StatusChangedEvent{
		OrderID:      next.ID,
		From:         from,
		To:           next.Status,
		TrackingCode: next.TrackingCode,
		ChangedAt:    next.UpdatedAt,
	}
	if err := s.publisher.PublishStatusChanged(ctx, event); err != nil {
		s.log.Warnf(ctx, "publish status event failed order_id=%s err=%v", next.ID, err)
	}
	return nil
}
