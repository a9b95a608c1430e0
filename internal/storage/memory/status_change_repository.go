package memory

import (
	"context"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// statusChangeRepositoryInMemory — история переходов статуса поверх Store.
type statusChangeRepositoryInMemory struct {
	store *Store
}

// NewStatusChangeRepository возвращает in-memory реализацию StatusChangeRepository.
func NewStatusChangeRepository(store *Store) domain.StatusChangeRepository {
	return &statusChangeRepositoryInMemory{store: store}
}

// List возвращает историю переходов заказа в хронологическом порядке.
func (r *statusChangeRepositoryInMemory) List(_ context.Context, orderID string) ([]domain.StatusChange, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	changes := r.store.statusChanges[orderID]
	result := make([]domain.StatusChange, len(changes))
	copy(result, changes)
	return result, nil
}

var _ domain.StatusChangeRepository = (*statusChangeRepositoryInMemory)(nil)
