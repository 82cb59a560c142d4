package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/orders-backoffice/internal/domain"
	"github.com/Gunvolt24/orders-backoffice/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// DefaultListLimit — размер страницы ListOrders, если лимит не задан.
	DefaultListLimit = 500
	// MaxListLimit — верхняя граница размера страницы ListOrders.
	MaxListLimit = 1000
)

// parkedPaymentTTL — сколько хранится статус оплаты заказа, который так и не пришёл.
const parkedPaymentTTL = 7 * 24 * time.Hour

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository — реализация репозитория заказов на Postgres (pgxpool).
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository - конструктор OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository { return &OrderRepository{pool: pool} }

const orderColumns = `
	id, tracking_code, customer_name, customer_phone, customer_email, customer_address,
	subtotal, shipping_fee, discount, total, status, payment_status, payment_method,
	notes, placed_at, updated_at`

// Save — транзакционно сохраняет новый заказ витрины (insert-only).
// Повторная доставка того же заказа ничего не меняет: статус, трек-код, оплата,
// покупатель и позиции остаются такими, какими их оставили переходы статуса.
// Статус оплаты, пришедший раньше заказа, применяется в той же транзакции.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	if order == nil || order.ID == "" {
		return errors.New("order is empty or id is required")
	}

	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// При уже завершённой транзакции Rollback вернёт ErrTxClosed — игнорируем.
		if rbErr := transaction.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	if err = lockOrder(ctx, transaction, order.ID); err != nil {
		return err
	}

	tag, err := transaction.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO NOTHING
	`,
		order.ID, order.TrackingCode,
		order.Customer.Name, order.Customer.Phone, order.Customer.Email, order.Customer.Address,
		order.Subtotal, order.ShippingFee, order.Discount, order.Total,
		string(order.Status), string(order.PaymentStatus), string(order.PaymentMethod),
		order.Notes, order.PlacedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Заказ уже сохранён.
		return nil
	}

	if len(order.Lines) > 0 {
		if err = copyLines(ctx, transaction, order.ID, order.Lines); err != nil {
			return err
		}
	}

	if _, err = transaction.Exec(ctx, `
		WITH parked AS (
			DELETE FROM parked_payments WHERE order_id = $1
			RETURNING payment_status, updated_at
		)
		UPDATE orders o
		SET payment_status = parked.payment_status,
			updated_at = GREATEST(o.updated_at, parked.updated_at)
		FROM parked
		WHERE o.id = $1
	`, order.ID); err != nil {
		return fmt.Errorf("apply parked payment: %w", err)
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetByID — получить заказ по идентификатору. Если не нашли, возвращает (nil, nil).
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}

	lines, err := r.linesByOrder(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	order.Lines = lines[id]
	return &order, nil
}

// ListOrders — страница заказов по фильтру, упорядоченная по (placed_at, id).
// Два запроса на страницу: базовые заказы + позиции для всех ID страницы; склейка в памяти.
func (r *OrderRepository) ListOrders(ctx context.Context, filter ports.ListFilter) (ports.ListResult, error) {
	page, limit := normalizePage(filter.Page, filter.Limit)
	from, to := timeBound(filter.From), timeBound(filter.To)

	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM orders
		WHERE ($1::timestamptz IS NULL OR placed_at >= $1)
		  AND ($2::timestamptz IS NULL OR placed_at < $2)
	`, from, to).Scan(&total); err != nil {
		return ports.ListResult{}, fmt.Errorf("count orders: %w", err)
	}

	result := ports.ListResult{
		Orders:     []domain.Order{},
		Pagination: ports.Pagination{Page: page, Limit: limit, Total: total},
	}
	offset := (page - 1) * limit
	if offset >= total {
		return result, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE ($1::timestamptz IS NULL OR placed_at >= $1)
		  AND ($2::timestamptz IS NULL OR placed_at < $2)
		ORDER BY placed_at, id
		LIMIT $3 OFFSET $4
	`, from, to, limit, offset)
	if err != nil {
		return ports.ListResult{}, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0, limit)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return ports.ListResult{}, fmt.Errorf("scan order: %w", err)
		}
		result.Orders = append(result.Orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return ports.ListResult{}, fmt.Errorf("orders rows: %w", err)
	}
	if len(ids) == 0 {
		return result, nil
	}

	lines, err := r.linesByOrder(ctx, ids)
	if err != nil {
		return ports.ListResult{}, err
	}
	for i := range result.Orders {
		result.Orders[i].Lines = lines[result.Orders[i].ID]
	}
	return result, nil
}

// SetStatus — переход статуса с проверкой ожидаемого текущего статуса.
// Пустой TrackingCode не затирает уже назначенный.
func (r *OrderRepository) SetStatus(ctx context.Context, change ports.StatusChange) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders
		SET status = $3,
			tracking_code = COALESCE(NULLIF($4, ''), tracking_code),
			updated_at = $5
		WHERE id = $1 AND status = $2
	`, change.OrderID, string(change.From), string(change.To), change.TrackingCode, change.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	exists, err := r.exists(ctx, change.OrderID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, change.OrderID)
	}
	return fmt.Errorf("%w: %s expected %s", ports.ErrStatusConflict, change.OrderID, change.From)
}

// SetPaymentStatus — обновить статус оплаты заказа. Если заказа ещё нет, статус
// откладывается до его сохранения (applied=false). Среди отложенных побеждает
// более поздний updated_at; записи старше parkedPaymentTTL удаляются.
func (r *OrderRepository) SetPaymentStatus(
	ctx context.Context, id string, status domain.PaymentStatus, at time.Time,
) (applied bool, err error) {
	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		if rbErr := transaction.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	if err = lockOrder(ctx, transaction, id); err != nil {
		return false, err
	}

	tag, err := transaction.Exec(ctx, `
		UPDATE orders SET payment_status = $2, updated_at = GREATEST(updated_at, $3)
		WHERE id = $1
	`, id, string(status), at)
	if err != nil {
		return false, fmt.Errorf("update payment status: %w", err)
	}
	applied = tag.RowsAffected() == 1

	if !applied {
		if _, err = transaction.Exec(ctx, `
			INSERT INTO parked_payments (order_id, payment_status, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (order_id) DO UPDATE SET
				payment_status = EXCLUDED.payment_status,
				updated_at = EXCLUDED.updated_at,
				parked_at = now()
			WHERE parked_payments.updated_at <= EXCLUDED.updated_at
		`, id, string(status), at); err != nil {
			return false, fmt.Errorf("park payment status: %w", err)
		}
		if _, err = transaction.Exec(ctx,
			`DELETE FROM parked_payments WHERE parked_at < now() - make_interval(secs => $1)`,
			parkedPaymentTTL.Seconds(),
		); err != nil {
			return false, fmt.Errorf("purge parked payments: %w", err)
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return applied, nil
}

// lockOrder — транзакционная advisory-блокировка по ID заказа: сохранение заказа
// и отложенная оплата для него не пересекаются.
func lockOrder(ctx context.Context, tx pgx.Tx, id string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, id); err != nil {
		return fmt.Errorf("lock order: %w", err)
	}
	return nil
}

func (r *OrderRepository) exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("check order: %w", err)
	}
	return ok, nil
}

// linesByOrder — позиции для набора заказов одним запросом, в порядке вставки.
func (r *OrderRepository) linesByOrder(ctx context.Context, ids []string) (map[string][]domain.OrderLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT order_id, product_id, name, category, unit_price, quantity, image_url
		FROM order_lines
		WHERE order_id = ANY($1::text[])
		ORDER BY order_id, position
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("select lines: %w", err)
	}
	defer rows.Close()

	byOrder := make(map[string][]domain.OrderLine, len(ids))
	for rows.Next() {
		var orderID string
		var line domain.OrderLine
		if err := rows.Scan(
			&orderID, &line.ProductID, &line.Name, &line.Category, &line.UnitPrice, &line.Quantity, &line.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		byOrder[orderID] = append(byOrder[orderID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lines rows: %w", err)
	}
	return byOrder, nil
}

// copyLines — вставка позиций через COPY (CopyFromRows); быстрее, чем INSERT в цикле.
func copyLines(ctx context.Context, tx pgx.Tx, orderID string, lines []domain.OrderLine) error {
	rows := make([][]any, 0, len(lines))
	for i, line := range lines {
		rows = append(rows, []any{
			orderID, i, line.ProductID, line.Name, line.Category, line.UnitPrice, line.Quantity, line.ImageURL,
		})
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"order_lines"},
		[]string{"order_id", "position", "product_id", "name", "category", "unit_price", "quantity", "image_url"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy lines: %w", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		order                          domain.Order
		tracking                       *string
		status, payment, paymentMethod string
	)
	err := row.Scan(
		&order.ID, &tracking,
		&order.Customer.Name, &order.Customer.Phone, &order.Customer.Email, &order.Customer.Address,
		&order.Subtotal, &order.ShippingFee, &order.Discount, &order.Total,
		&status, &payment, &paymentMethod,
		&order.Notes, &order.PlacedAt, &order.UpdatedAt,
	)
	if err != nil {
		return domain.Order{}, err
	}
	if tracking != nil {
		order.TrackingCode = *tracking
	}
	order.Status = domain.Status(status)
	order.PaymentStatus = domain.PaymentStatus(payment)
	order.PaymentMethod = domain.PaymentMethod(paymentMethod)
	return order, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return page, min(limit, MaxListLimit)
}

func timeBound(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
