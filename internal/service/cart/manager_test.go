package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newManagerForTest(t *testing.T) (*Manager, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	store.SeedUser(domain.User{ID: "user-1", Email: "u1@example.com", CreatedAt: time.Now()})
	store.SeedUser(domain.User{ID: "user-2", Email: "u2@example.com", CreatedAt: time.Now()})
	store.SeedProduct(domain.Product{
		ID: "prod-1", Name: "Keyboard", PriceMinor: 10000, Stock: 10, Active: true,
	})
	store.SeedProduct(domain.Product{
		ID: "prod-2", Name: "Mouse", PriceMinor: 2500, Stock: 2, Active: true,
	})
	store.SeedProduct(domain.Product{
		ID: "prod-retired", Name: "Retired", PriceMinor: 500, Stock: 5, Active: false,
	})

	manager := NewManagerWithoutMetrics(
		memory.NewCartRepository(store),
		memory.NewProductRepository(store),
		nil,
	)
	return manager, store
}

func TestManager_AddItemMergesSameProduct(t *testing.T) {
	manager, _ := newManagerForTest(t)
	ctx := context.Background()

	_, err := manager.AddItem(ctx, "user-1", "prod-1", 3)
	require.NoError(t, err)

	view, err := manager.AddItem(ctx, "user-1", "prod-1", 2)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, int32(5), view.Items[0].Quantity)
	assert.Equal(t, int32(5), view.TotalItems)
	assert.Equal(t, int64(50000), view.TotalMinor)
}

func TestManager_AddItemValidation(t *testing.T) {
	manager, _ := newManagerForTest(t)
	ctx := context.Background()

	_, err := manager.AddItem(ctx, "user-1", "prod-1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = manager.AddItem(ctx, "user-1", "prod-1", -2)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = manager.AddItem(ctx, "", "prod-1", 1)
	assert.ErrorIs(t, err, domain.ErrUserIDRequired)

	_, err = manager.AddItem(ctx, "user-1", "missing", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	// Неактивный товар выглядит как отсутствующий.
	_, err = manager.AddItem(ctx, "user-1", "prod-retired", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestManager_AddItemAdvisoryStockCheck(t *testing.T) {
	manager, _ := newManagerForTest(t)
	ctx := context.Background()

	_, err := manager.AddItem(ctx, "user-1", "prod-2", 2)
	require.NoError(t, err)

	_, err = manager.AddItem(ctx, "user-1", "prod-2", 1)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "prod-2", stockErr.ProductID)
	assert.Equal(t, int32(3), stockErr.Requested)
	assert.Equal(t, int32(2), stockErr.Available)
}

func TestManager_RemoveItemOwnership(t *testing.T) {
	manager, _ := newManagerForTest(t)
	ctx := context.Background()

	view, err := manager.AddItem(ctx, "user-1", "prod-1", 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	itemID := view.Items[0].ItemID

	// Чужая позиция неотличима от отсутствующей.
	_, err = manager.RemoveItem(ctx, "user-2", itemID)
	assert.ErrorIs(t, err, domain.ErrCartItemNotFound)

	after, err := manager.RemoveItem(ctx, "user-1", itemID)
	require.NoError(t, err)
	assert.Empty(t, after.Items)

	_, err = manager.RemoveItem(ctx, "user-1", itemID)
	assert.ErrorIs(t, err, domain.ErrCartItemNotFound)
}

func TestManager_ClearCartIdempotent(t *testing.T) {
	manager, _ := newManagerForTest(t)
	ctx := context.Background()

	// Очистка несуществующей корзины не является ошибкой.
	require.NoError(t, manager.ClearCart(ctx, "user-1"))

	_, err := manager.AddItem(ctx, "user-1", "prod-1", 2)
	require.NoError(t, err)

	require.NoError(t, manager.ClearCart(ctx, "user-1"))
	require.NoError(t, manager.ClearCart(ctx, "user-1"))

	view, err := manager.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.TotalMinor)
}

func TestManager_GetCartEmptyView(t *testing.T) {
	manager, _ := newManagerForTest(t)

	view, err := manager.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, view.Items)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.TotalMinor)
	assert.Zero(t, view.TotalItems)
}

func TestManager_GetCartJoinsLiveProductData(t *testing.T) {
	manager, _ := newManagerForTest(t)
	ctx := context.Background()

	_, err := manager.AddItem(ctx, "user-1", "prod-1", 2)
	require.NoError(t, err)
	_, err = manager.AddItem(ctx, "user-1", "prod-2", 1)
	require.NoError(t, err)

	view, err := manager.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, view.Items, 2)

	assert.Equal(t, "Keyboard", view.Items[0].Name)
	assert.Equal(t, int64(20000), view.Items[0].SubtotalMinor)
	assert.Equal(t, int32(10), view.Items[0].Stock)
	assert.Equal(t, "Mouse", view.Items[1].Name)
	assert.Equal(t, int64(22500), view.TotalMinor)
	assert.Equal(t, int32(3), view.TotalItems)
}
