package memory

import (
	"context"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// productRepositoryInMemory — read-only представление каталога поверх Store.
type productRepositoryInMemory struct {
	store *Store
}

// NewProductRepository возвращает in-memory реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepositoryInMemory{store: store}
}

// Get возвращает товар или ErrProductNotFound.
func (r *productRepositoryInMemory) Get(_ context.Context, id string) (domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
