package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func seedCatalog(store *memory.Store) {
	now := time.Now().UTC()
	store.SeedUser(domain.User{ID: "user-1", CreatedAt: now})
	store.SeedProduct(domain.Product{
		ID:         "product-1",
		Name:       "Teapot",
		PriceMinor: 10000,
		Stock:      10,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func pendingOrder(id, number string) domain.Order {
	return domain.Order{
		ID:              id,
		Number:          number,
		UserID:          "user-1",
		Status:          domain.OrderStatusPending,
		ShippingAddress: "Some Street 1",
		CreatedAt:       time.Now().UTC(),
	}
}

func TestUnitOfWork_CommitAppliesAllWrites(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(store)
	uow := memory.NewUnitOfWork(store)
	ctx := context.Background()

	err := uow.Within(ctx, func(tx domain.Tx) error {
		if err := tx.Orders().Create(ctx, pendingOrder("order-1", "ORD-1")); err != nil {
			return err
		}
		if err := tx.Products().DecrementStock(ctx, "product-1", 4); err != nil {
			return err
		}
		return tx.Orders().SetAmount(ctx, "order-1", 40000)
	})
	if err != nil {
		t.Fatalf("within failed: %v", err)
	}

	if stock, _ := store.ProductStock("product-1"); stock != 6 {
		t.Fatalf("expected stock 6, got %d", stock)
	}
	order, err := memory.NewOrderRepository(store).Get(ctx, "order-1")
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if order.AmountMinor != 40000 {
		t.Fatalf("expected amount 40000, got %d", order.AmountMinor)
	}
}

func TestUnitOfWork_ErrorRollsBackEverything(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(store)
	uow := memory.NewUnitOfWork(store)
	ctx := context.Background()

	boom := errors.New("boom")
	err := uow.Within(ctx, func(tx domain.Tx) error {
		if err := tx.Orders().Create(ctx, pendingOrder("order-1", "ORD-1")); err != nil {
			return err
		}
		if err := tx.Products().DecrementStock(ctx, "product-1", 4); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	// Ни заказ, ни декремент остатка не должны быть видны.
	if _, err := memory.NewOrderRepository(store).Get(ctx, "order-1"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound after rollback, got %v", err)
	}
	if stock, _ := store.ProductStock("product-1"); stock != 10 {
		t.Fatalf("expected stock restored to 10, got %d", stock)
	}
}

func TestUnitOfWork_DecrementGuardsStock(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(store)
	uow := memory.NewUnitOfWork(store)
	ctx := context.Background()

	err := uow.Within(ctx, func(tx domain.Tx) error {
		return tx.Products().DecrementStock(ctx, "product-1", 11)
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	var stockErr *domain.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected typed stock error, got %v", err)
	}
	if stockErr.Available != 10 || stockErr.Requested != 11 {
		t.Fatalf("unexpected stock error details: %+v", stockErr)
	}
}

func TestUnitOfWork_DuplicateOrderNumber(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(store)
	uow := memory.NewUnitOfWork(store)
	ctx := context.Background()

	err := uow.Within(ctx, func(tx domain.Tx) error {
		return tx.Orders().Create(ctx, pendingOrder("order-1", "ORD-1"))
	})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	err = uow.Within(ctx, func(tx domain.Tx) error {
		return tx.Orders().Create(ctx, pendingOrder("order-2", "ORD-1"))
	})
	if !errors.Is(err, domain.ErrOrderNumberTaken) {
		t.Fatalf("expected ErrOrderNumberTaken, got %v", err)
	}
}

func TestUnitOfWork_CanceledContext(t *testing.T) {
	store := memory.NewStore()
	uow := memory.NewUnitOfWork(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := uow.Within(ctx, func(domain.Tx) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
