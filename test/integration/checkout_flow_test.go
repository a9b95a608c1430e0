package integration

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vladislavdragonenkov/storefront/internal/app"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/cart"
	"github.com/vladislavdragonenkov/storefront/internal/service/order"
	"github.com/vladislavdragonenkov/storefront/internal/service/storefront"
)

const (
	demoUserID     = "11111111-1111-1111-1111-111111111111"
	keyboardID     = "aaaaaaaa-0000-0000-0000-000000000001"
	mouseID        = "aaaaaaaa-0000-0000-0000-000000000002"
	dockID         = "aaaaaaaa-0000-0000-0000-000000000003"
	keyboardPrice  = int64(129900)
	mousePrice     = int64(49900)
	keyboardStock  = int32(25)
	dockStock      = int32(3)
	demoAddress    = "12 Market Street, Springfield"
	demoApproverID = "manager-42"
)

// CheckoutFlowTestSuite прогоняет полный путь покупателя через фасад витрины:
// корзина, оформление заказа, переводы статусов и выборки.
type CheckoutFlowTestSuite struct {
	suite.Suite
	deps    *app.Dependencies
	service *storefront.Service
}

func (s *CheckoutFlowTestSuite) SetupTest() {
	baseLogger := log.New()
	baseLogger.SetLevel(log.WarnLevel) // Уменьшаем шум в тестах
	logger := baseLogger.WithField("component", "integration-test")

	deps, err := app.NewDependencies(context.Background(), app.DefaultConfig(), logger)
	require.NoError(s.T(), err)
	s.deps = deps

	manager := cart.NewManagerWithoutMetrics(deps.Carts, deps.Products, logger)
	assembler := order.NewAssemblerWithoutMetrics(deps.UnitOfWork, nil, logger)
	lifecycle := order.NewLifecycleWithoutMetrics(deps.UnitOfWork, deps.Orders, deps.StatusChanges, nil, logger)
	s.service = storefront.NewService(manager, assembler, lifecycle, logger)
}

func (s *CheckoutFlowTestSuite) TearDownTest() {
	require.NoError(s.T(), s.deps.Close())
}

func (s *CheckoutFlowTestSuite) TestFullCheckoutFlow() {
	ctx := context.Background()

	// 1. Наполняем корзину
	addResp := s.service.AddToCart(ctx, demoUserID, keyboardID, 2)
	require.True(s.T(), addResp.Success, addResp.Message)

	addResp = s.service.AddToCart(ctx, demoUserID, mouseID, 1)
	require.True(s.T(), addResp.Success, addResp.Message)
	require.Len(s.T(), addResp.Data.Items, 2)
	require.Equal(s.T(), 2*keyboardPrice+mousePrice, addResp.Data.TotalMinor)
	require.Equal(s.T(), int32(3), addResp.Data.TotalItems)

	// 2. Оформляем заказ по содержимому корзины
	createResp := s.service.CreateOrder(ctx, demoUserID, demoAddress, []order.Line{
		{ProductID: keyboardID, Quantity: 2},
		{ProductID: mouseID, Quantity: 1},
	})
	require.True(s.T(), createResp.Success, createResp.Message)
	created := createResp.Data
	require.Equal(s.T(), domain.OrderStatusPending, created.Status)
	require.Equal(s.T(), 2*keyboardPrice+mousePrice, created.AmountMinor)
	require.Len(s.T(), created.Items, 2)
	require.NotEmpty(s.T(), created.Number)

	// 3. Остаток списан атомарно при оформлении
	product, err := s.deps.Products.Get(ctx, keyboardID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), keyboardStock-2, product.Stock)

	// 4. Корзина очищается после оформления
	clearResp := s.service.ClearCart(ctx, demoUserID)
	require.True(s.T(), clearResp.Success, clearResp.Message)
	cartResp := s.service.GetCart(ctx, demoUserID)
	require.True(s.T(), cartResp.Success)
	require.Empty(s.T(), cartResp.Data.Items)

	// 5. Переводим заказ по статусам
	statusResp := s.service.UpdateOrderStatus(ctx, created.ID, string(domain.OrderStatusConfirmed), demoApproverID)
	require.True(s.T(), statusResp.Success, statusResp.Message)
	require.Equal(s.T(), domain.OrderStatusConfirmed, statusResp.Data.Status)
	require.Equal(s.T(), demoApproverID, statusResp.Data.ApprovedBy)

	statusResp = s.service.UpdateOrderStatus(ctx, created.ID, string(domain.OrderStatusShipped), demoApproverID)
	require.True(s.T(), statusResp.Success, statusResp.Message)

	// 6. Деталка содержит историю всех переходов
	getResp := s.service.GetOrderById(ctx, created.ID)
	require.True(s.T(), getResp.Success, getResp.Message)
	require.Equal(s.T(), domain.OrderStatusShipped, getResp.Data.Order.Status)
	require.Len(s.T(), getResp.Data.History, 3)
	require.Equal(s.T(), domain.OrderStatusPending, getResp.Data.History[0].To)
	require.Equal(s.T(), domain.OrderStatusShipped, getResp.Data.History[2].To)

	// 7. Заказ виден в списке пользователя с фильтром по статусу
	shipped := domain.OrderStatusShipped
	listResp := s.service.ListOrders(ctx, domain.OrderFilter{UserID: demoUserID, Status: &shipped}, 1, 10)
	require.True(s.T(), listResp.Success, listResp.Message)
	require.Equal(s.T(), 1, listResp.Data.Total)
	require.Equal(s.T(), created.ID, listResp.Data.Orders[0].ID)
}

func (s *CheckoutFlowTestSuite) TestCheckoutRejectedOnInsufficientStock() {
	ctx := context.Background()

	createResp := s.service.CreateOrder(ctx, demoUserID, demoAddress, []order.Line{
		{ProductID: dockID, Quantity: 5},
	})
	require.False(s.T(), createResp.Success)
	require.Contains(s.T(), createResp.Message, "USB-C Dock")

	// Остаток не изменился, заказов нет
	product, err := s.deps.Products.Get(ctx, dockID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), dockStock, product.Stock)

	listResp := s.service.ListOrders(ctx, domain.OrderFilter{UserID: demoUserID}, 1, 10)
	require.True(s.T(), listResp.Success)
	require.Equal(s.T(), 0, listResp.Data.Total)
}

func (s *CheckoutFlowTestSuite) TestForeignCartItemLooksMissing() {
	ctx := context.Background()

	addResp := s.service.AddToCart(ctx, demoUserID, keyboardID, 1)
	require.True(s.T(), addResp.Success, addResp.Message)
	itemID := addResp.Data.Items[0].ItemID

	// Чужой пользователь получает тот же ответ, что и для несуществующей позиции
	foreignResp := s.service.RemoveFromCart(ctx, "22222222-2222-2222-2222-222222222222", itemID)
	require.False(s.T(), foreignResp.Success)

	missingResp := s.service.RemoveFromCart(ctx, demoUserID, "deadbeef-0000-0000-0000-000000000000")
	require.False(s.T(), missingResp.Success)
	require.Equal(s.T(), missingResp.Message, foreignResp.Message)

	// Позиция владельца цела
	cartResp := s.service.GetCart(ctx, demoUserID)
	require.True(s.T(), cartResp.Success)
	require.Len(s.T(), cartResp.Data.Items, 1)
}

func (s *CheckoutFlowTestSuite) TestInvalidStatusRejected() {
	ctx := context.Background()

	createResp := s.service.CreateOrder(ctx, demoUserID, demoAddress, []order.Line{
		{ProductID: mouseID, Quantity: 1},
	})
	require.True(s.T(), createResp.Success, createResp.Message)

	statusResp := s.service.UpdateOrderStatus(ctx, createResp.Data.ID, "NotARealStatus", demoApproverID)
	require.False(s.T(), statusResp.Success)
	require.Equal(s.T(), "unknown order status", statusResp.Message)

	// Статус заказа не изменился
	getResp := s.service.GetOrderById(ctx, createResp.Data.ID)
	require.True(s.T(), getResp.Success)
	require.Equal(s.T(), domain.OrderStatusPending, getResp.Data.Order.Status)
}

func TestCheckoutFlow(t *testing.T) {
	suite.Run(t, new(CheckoutFlowTestSuite))
}
