package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type productRepository struct {
	db dbtx
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Get(ctx context.Context, id string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return selectProduct(ctx, r.db, id, false)
}

// selectProduct читает товар; forUpdate добавляет блокировку строки до конца
// транзакции (используется только внутри unit of work).
func selectProduct(ctx context.Context, db dbtx, id string, forUpdate bool) (domain.Product, error) {
	query := `
		SELECT id, name, image_url, price_minor, stock, active, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var product domain.Product
	err := db.QueryRowContext(ctx, query, id).Scan(
		&product.ID, &product.Name, &product.ImageURL, &product.PriceMinor,
		&product.Stock, &product.Active, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}

	return product, nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
