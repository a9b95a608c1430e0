package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// orderRepositoryInMemory — read-доступ к заказам поверх Store.
type orderRepositoryInMemory struct {
	store *Store
}

// NewOrderRepository возвращает in-memory реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepositoryInMemory{store: store}
}

// Get возвращает копию заказа или ErrOrderNotFound.
func (r *orderRepositoryInMemory) Get(_ context.Context, id string) (domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	order, ok := r.store.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	// Возвращаем копию, чтобы избежать непредсказуемых мутаций извне.
	return cloneOrder(order), nil
}

// List возвращает страницу заказов по фильтру и общее количество подходящих.
func (r *orderRepositoryInMemory) List(_ context.Context, filter domain.OrderFilter, page, pageSize int) ([]domain.Order, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := make([]domain.Order, 0, len(r.store.orders))
	for _, order := range r.store.orders {
		if filter.UserID != "" && order.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		matched = append(matched, cloneOrder(order))
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		return []domain.Order{}, total, nil
	}

	offset := (page - 1) * pageSize
	if offset >= total {
		return []domain.Order{}, total, nil
	}
	end := offset + pageSize
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
