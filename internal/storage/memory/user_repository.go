package memory

import (
	"context"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// userRepositoryInMemory — представление учётных записей поверх Store.
type userRepositoryInMemory struct {
	store *Store
}

// NewUserRepository возвращает in-memory реализацию UserRepository.
func NewUserRepository(store *Store) domain.UserRepository {
	return &userRepositoryInMemory{store: store}
}

// Get возвращает пользователя или ErrUserNotFound.
func (r *userRepositoryInMemory) Get(_ context.Context, id string) (domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

var _ domain.UserRepository = (*userRepositoryInMemory)(nil)
