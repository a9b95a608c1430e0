package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type userRepository struct {
	db dbtx
}

// NewUserRepository создаёт PostgreSQL-реализацию UserRepository.
func NewUserRepository(store *Store) domain.UserRepository {
	return &userRepository{db: store.DB()}
}

func (r *userRepository) Get(ctx context.Context, id string) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return selectUser(ctx, r.db, id)
}

func selectUser(ctx context.Context, db dbtx, id string) (domain.User, error) {
	var user domain.User
	err := db.QueryRowContext(ctx, `
		SELECT id, email, name, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("select user: %w", err)
	}

	return user, nil
}

var _ domain.UserRepository = (*userRepository)(nil)
