package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository создаёт PostgreSQL-реализацию CartRepository.
func NewCartRepository(store *Store) domain.CartRepository {
	return &cartRepository{db: store.DB()}
}

func (r *cartRepository) GetByUser(ctx context.Context, userID string) (domain.Cart, []domain.CartItem, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var cart domain.Cart
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at
		FROM carts
		WHERE user_id = $1
	`, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Cart{}, nil, domain.ErrCartNotFound
		}
		return domain.Cart{}, nil, fmt.Errorf("select cart: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, cart_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at ASC, id ASC
	`, cart.ID)
	if err != nil {
		return domain.Cart{}, nil, fmt.Errorf("select cart items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.CartItem, 0)
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return domain.Cart{}, nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.Cart{}, nil, fmt.Errorf("iterate cart items: %w", err)
	}

	return cart, items, nil
}

func (r *cartRepository) Ensure(ctx context.Context, userID string) (domain.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	// Уникальный индекс по user_id гарантирует одну корзину на пользователя
	// даже при конкурентных первых добавлениях.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO carts (id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING
	`, uuid.NewString(), userID, time.Now().UTC())
	if err != nil {
		return domain.Cart{}, fmt.Errorf("insert cart: %w", err)
	}

	var cart domain.Cart
	err = r.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at
		FROM carts
		WHERE user_id = $1
	`, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("select ensured cart: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) UpsertItem(ctx context.Context, cartID, productID string, quantity int32) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
		              updated_at = EXCLUDED.updated_at
	`, uuid.NewString(), cartID, productID, quantity, now)
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, userID, itemID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	// Принадлежность проверяется в том же запросе: чужая позиция удаляет
	// ноль строк и снаружи неотличима от отсутствующей.
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		USING carts
		WHERE cart_items.id = $1
		  AND carts.id = cart_items.cart_id
		  AND carts.user_id = $2
	`, itemID, userID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCartItemNotFound
	}

	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		USING carts
		WHERE carts.id = cart_items.cart_id
		  AND carts.user_id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return nil
}

var _ domain.CartRepository = (*cartRepository)(nil)
