package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type unitOfWork struct {
	db *sql.DB
}

// NewUnitOfWork создаёт транзакционную обёртку над PostgreSQL.
func NewUnitOfWork(store *Store) domain.UnitOfWork {
	return &unitOfWork{db: store.DB()}
}

func (u *unitOfWork) Within(ctx context.Context, fn func(tx domain.Tx) error) error {
	sqlTx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(&txRepos{tx: sqlTx}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

type txRepos struct {
	tx *sql.Tx
}

func (t *txRepos) Users() domain.UserRepository         { return &txUsers{tx: t.tx} }
func (t *txRepos) Products() domain.ProductTx           { return &txProducts{tx: t.tx} }
func (t *txRepos) Orders() domain.OrderTx               { return &txOrders{tx: t.tx} }
func (t *txRepos) StatusChanges() domain.StatusChangeTx { return &txStatusChanges{tx: t.tx} }

type txUsers struct {
	tx *sql.Tx
}

func (r *txUsers) Get(ctx context.Context, id string) (domain.User, error) {
	return selectUser(ctx, r.tx, id)
}

type txProducts struct {
	tx *sql.Tx
}

func (r *txProducts) GetForUpdate(ctx context.Context, id string) (domain.Product, error) {
	return selectProduct(ctx, r.tx, id, true)
}

func (r *txProducts) DecrementStock(ctx context.Context, id string, quantity int32) error {
	// Условный апдейт не позволяет остатку уйти ниже нуля даже без
	// предварительной блокировки строки.
	res, err := r.tx.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
	`, quantity, id)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		product, err := selectProduct(ctx, r.tx, id, false)
		if err != nil {
			return err
		}
		return &domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   quantity,
			Available:   product.Stock,
		}
	}

	return nil
}

type txOrders struct {
	tx *sql.Tx
}

func (r *txOrders) Get(ctx context.Context, id string) (domain.Order, error) {
	return selectOrder(ctx, r.tx, id)
}

func (r *txOrders) Create(ctx context.Context, order domain.Order) error {
	var approvedBy sql.NullString
	if order.ApprovedBy != "" {
		approvedBy = sql.NullString{String: order.ApprovedBy, Valid: true}
	}
	var approvedAt sql.NullTime
	if order.ApprovedAt != nil {
		approvedAt = sql.NullTime{Time: *order.ApprovedAt, Valid: true}
	}

	_, err := r.tx.ExecContext(ctx, `
		INSERT INTO orders (id, order_number, user_id, status, shipping_address,
		                    amount_minor, approved_by, approved_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, order.ID, order.Number, order.UserID, string(order.Status), order.ShippingAddress,
		order.AmountMinor, approvedBy, approvedAt, order.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOrderNumberTaken
		}
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func (r *txOrders) AddItem(ctx context.Context, item domain.OrderItem) error {
	_, err := r.tx.ExecContext(ctx, `
		INSERT INTO order_items (id, order_id, product_id, quantity, price_minor)
		VALUES ($1, $2, $3, $4, $5)
	`, item.ID, item.OrderID, item.ProductID, item.Quantity, item.PriceMinor)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}

	return nil
}

func (r *txOrders) SetAmount(ctx context.Context, orderID string, amountMinor int64) error {
	res, err := r.tx.ExecContext(ctx, `
		UPDATE orders SET amount_minor = $1 WHERE id = $2
	`, amountMinor, orderID)
	if err != nil {
		return fmt.Errorf("set order amount: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

func (r *txOrders) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, approvedBy string, approvedAt time.Time) error {
	res, err := r.tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, approved_by = $2, approved_at = $3
		WHERE id = $4
	`, string(status), approvedBy, approvedAt, orderID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

type txStatusChanges struct {
	tx *sql.Tx
}

func (r *txStatusChanges) Append(ctx context.Context, change domain.StatusChange) error {
	_, err := r.tx.ExecContext(ctx, `
		INSERT INTO order_status_changes (id, order_id, from_status, to_status, changed_by, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, change.ID, change.OrderID, string(change.From), string(change.To),
		change.ChangedBy, change.Occurred)
	if err != nil {
		return fmt.Errorf("insert status change: %w", err)
	}

	return nil
}

var (
	_ domain.UnitOfWork = (*unitOfWork)(nil)
	_ domain.Tx         = (*txRepos)(nil)
)
