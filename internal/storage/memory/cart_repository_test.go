package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newStoreWithUser(t *testing.T) (*memory.Store, domain.CartRepository) {
	t.Helper()
	store := memory.NewStore()
	store.SeedUser(domain.User{ID: "user-1", Email: "u1@example.com", CreatedAt: time.Now().UTC()})
	return store, memory.NewCartRepository(store)
}

func TestCartRepository_EnsureIsLazyAndStable(t *testing.T) {
	_, repo := newStoreWithUser(t)
	ctx := context.Background()

	if _, _, err := repo.GetByUser(ctx, "user-1"); !errors.Is(err, domain.ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound before first add, got %v", err)
	}

	first, err := repo.Ensure(ctx, "user-1")
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	second, err := repo.Ensure(ctx, "user-1")
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected one cart per user, got %s and %s", first.ID, second.ID)
	}
}

func TestCartRepository_UpsertMergesQuantity(t *testing.T) {
	_, repo := newStoreWithUser(t)
	ctx := context.Background()

	cart, err := repo.Ensure(ctx, "user-1")
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}

	if err := repo.UpsertItem(ctx, cart.ID, "product-1", 3); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := repo.UpsertItem(ctx, cart.ID, "product-1", 2); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	_, items, err := repo.GetByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected single merged item, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
}

func TestCartRepository_DeleteItemChecksOwnership(t *testing.T) {
	store, repo := newStoreWithUser(t)
	store.SeedUser(domain.User{ID: "user-2"})
	ctx := context.Background()

	cart, err := repo.Ensure(ctx, "user-1")
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if err := repo.UpsertItem(ctx, cart.ID, "product-1", 1); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	_, items, err := repo.GetByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	// Чужой пользователь не должен видеть разницы между чужой и отсутствующей позицией.
	if err := repo.DeleteItem(ctx, "user-2", items[0].ID); !errors.Is(err, domain.ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound for foreign item, got %v", err)
	}

	if err := repo.DeleteItem(ctx, "user-1", items[0].ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := repo.DeleteItem(ctx, "user-1", items[0].ID); !errors.Is(err, domain.ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound after delete, got %v", err)
	}
}

func TestCartRepository_ClearIsIdempotent(t *testing.T) {
	_, repo := newStoreWithUser(t)
	ctx := context.Background()

	// Очистка без корзины — не ошибка.
	if err := repo.Clear(ctx, "user-1"); err != nil {
		t.Fatalf("clear of absent cart failed: %v", err)
	}

	cart, err := repo.Ensure(ctx, "user-1")
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if err := repo.UpsertItem(ctx, cart.ID, "product-1", 2); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if err := repo.Clear(ctx, "user-1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if err := repo.Clear(ctx, "user-1"); err != nil {
		t.Fatalf("repeated clear failed: %v", err)
	}

	_, items, err := repo.GetByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(items))
	}
}
