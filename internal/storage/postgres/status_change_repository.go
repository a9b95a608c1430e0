package postgres

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type statusChangeRepository struct {
	db dbtx
}

// NewStatusChangeRepository создаёт PostgreSQL-реализацию истории статусов.
func NewStatusChangeRepository(store *Store) domain.StatusChangeRepository {
	return &statusChangeRepository{db: store.DB()}
}

func (r *statusChangeRepository) List(ctx context.Context, orderID string) ([]domain.StatusChange, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, from_status, to_status, changed_by, occurred_at
		FROM order_status_changes
		WHERE order_id = $1
		ORDER BY occurred_at ASC, id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list status changes: %w", err)
	}
	defer rows.Close()

	changes := make([]domain.StatusChange, 0)
	for rows.Next() {
		var change domain.StatusChange
		var from, to string
		if err := rows.Scan(&change.ID, &change.OrderID, &from, &to,
			&change.ChangedBy, &change.Occurred); err != nil {
			return nil, fmt.Errorf("scan status change: %w", err)
		}
		change.From = domain.OrderStatus(from)
		change.To = domain.OrderStatus(to)
		changes = append(changes, change)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status changes: %w", err)
	}

	return changes, nil
}

var _ domain.StatusChangeRepository = (*statusChangeRepository)(nil)
