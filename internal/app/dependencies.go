package app

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
)

// Dependencies содержит хранилище и репозитории приложения.
type Dependencies struct {
	Users         domain.UserRepository
	Products      domain.ProductRepository
	Carts         domain.CartRepository
	Orders        domain.OrderRepository
	StatusChanges domain.StatusChangeRepository
	UnitOfWork    domain.UnitOfWork

	// Ping проверяет доступность хранилища (для health-проверок).
	Ping func(ctx context.Context) error
	// Close освобождает ресурсы хранилища.
	Close func() error

	Logger *log.Entry
}

// NewDependencies собирает зависимости согласно выбранному драйверу хранилища.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		return newPostgresDependencies(ctx, cfg, logger)
	case StorageDriverMemory, "":
		return newMemoryDependencies(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func newMemoryDependencies(cfg Config, logger *log.Entry) *Dependencies {
	store := memory.NewStore()
	if cfg.SeedDemoData {
		seedDemoData(store)
		logger.Info("memory store seeded with demo data")
	}

	return &Dependencies{
		Users:         memory.NewUserRepository(store),
		Products:      memory.NewProductRepository(store),
		Carts:         memory.NewCartRepository(store),
		Orders:        memory.NewOrderRepository(store),
		StatusChanges: memory.NewStatusChangeRepository(store),
		UnitOfWork:    memory.NewUnitOfWork(store),
		Ping:          func(context.Context) error { return nil },
		Close:         func() error { return nil },
		Logger:        logger,
	}
}

func newPostgresDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if cfg.PostgresAutoMigrate {
		if err := store.MigrateUp(ctx, 0); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("postgres migrations applied")
	}

	return &Dependencies{
		Users:         postgres.NewUserRepository(store),
		Products:      postgres.NewProductRepository(store),
		Carts:         postgres.NewCartRepository(store),
		Orders:        postgres.NewOrderRepository(store),
		StatusChanges: postgres.NewStatusChangeRepository(store),
		UnitOfWork:    postgres.NewUnitOfWork(store),
		Ping:          store.Ping,
		Close:         store.Close,
		Logger:        logger,
	}, nil
}

// seedDemoData наполняет memory-хранилище небольшим каталогом, чтобы шлюз
// можно было пощупать сразу после запуска.
func seedDemoData(store *memory.Store) {
	now := time.Now().UTC()

	store.SeedUser(domain.User{
		ID:        "11111111-1111-1111-1111-111111111111",
		Email:     "demo@example.com",
		Name:      "Demo User",
		CreatedAt: now,
	})

	products := []domain.Product{
		{ID: "aaaaaaaa-0000-0000-0000-000000000001", Name: "Mechanical Keyboard", PriceMinor: 129900, Stock: 25, Active: true},
		{ID: "aaaaaaaa-0000-0000-0000-000000000002", Name: "Wireless Mouse", PriceMinor: 49900, Stock: 40, Active: true},
		{ID: "aaaaaaaa-0000-0000-0000-000000000003", Name: "USB-C Dock", PriceMinor: 199900, Stock: 3, Active: true},
		{ID: "aaaaaaaa-0000-0000-0000-000000000004", Name: "Legacy Adapter", PriceMinor: 9900, Stock: 100, Active: false},
	}
	for _, product := range products {
		product.CreatedAt = now
		product.UpdatedAt = now
		store.SeedProduct(product)
	}
}
