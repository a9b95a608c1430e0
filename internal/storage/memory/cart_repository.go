package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// cartRepositoryInMemory — реализация CartRepository поверх Store.
type cartRepositoryInMemory struct {
	store *Store
}

// NewCartRepository возвращает in-memory реализацию CartRepository.
func NewCartRepository(store *Store) domain.CartRepository {
	return &cartRepositoryInMemory{store: store}
}

// GetByUser возвращает корзину пользователя с позициями или ErrCartNotFound.
func (r *cartRepositoryInMemory) GetByUser(_ context.Context, userID string) (domain.Cart, []domain.CartItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	cartID, ok := r.store.cartByUser[userID]
	if !ok {
		return domain.Cart{}, nil, domain.ErrCartNotFound
	}
	cart := r.store.carts[cartID]

	items := make([]domain.CartItem, 0)
	for _, item := range r.store.cartItems {
		if item.CartID == cartID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})

	return cart, items, nil
}

// Ensure возвращает корзину пользователя, создавая её при отсутствии.
func (r *cartRepositoryInMemory) Ensure(_ context.Context, userID string) (domain.Cart, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if cartID, ok := r.store.cartByUser[userID]; ok {
		return r.store.carts[cartID], nil
	}

	cart := domain.Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	r.store.carts[cart.ID] = cart
	r.store.cartByUser[userID] = cart.ID
	return cart, nil
}

// UpsertItem добавляет позицию либо увеличивает количество существующей.
func (r *cartRepositoryInMemory) UpsertItem(_ context.Context, cartID, productID string, quantity int32) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now().UTC()
	for id, item := range r.store.cartItems {
		if item.CartID == cartID && item.ProductID == productID {
			item.Quantity += quantity
			item.UpdatedAt = now
			r.store.cartItems[id] = item
			return nil
		}
	}

	item := domain.CartItem{
		ID:        uuid.NewString(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.store.cartItems[item.ID] = item
	return nil
}

// DeleteItem удаляет позицию, если она принадлежит корзине userID.
// Чужая позиция неотличима от отсутствующей.
func (r *cartRepositoryInMemory) DeleteItem(_ context.Context, userID, itemID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.cartItems[itemID]
	if !ok {
		return domain.ErrCartItemNotFound
	}
	cart, ok := r.store.carts[item.CartID]
	if !ok || cart.UserID != userID {
		return domain.ErrCartItemNotFound
	}

	delete(r.store.cartItems, itemID)
	return nil
}

// Clear удаляет все позиции корзины пользователя; отсутствие корзины — не ошибка.
func (r *cartRepositoryInMemory) Clear(_ context.Context, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cartID, ok := r.store.cartByUser[userID]
	if !ok {
		return nil
	}
	for id, item := range r.store.cartItems {
		if item.CartID == cartID {
			delete(r.store.cartItems, id)
		}
	}
	return nil
}

var _ domain.CartRepository = (*cartRepositoryInMemory)(nil)
