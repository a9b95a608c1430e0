package storefront

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/cart"
	"github.com/vladislavdragonenkov/storefront/internal/service/order"
)

// Service — фасад ядра витрины. Каждая операция возвращает единый конверт
// Result: транспортный слой отображает его на ответы один к одному, ничего не
// зная о доменных ошибках.
type Service struct {
	cart      *cart.Manager
	assembler *order.Assembler
	lifecycle *order.Lifecycle
	logger    *log.Entry
}

// NewService создаёт фасад поверх собранных компонентов ядра.
func NewService(cartManager *cart.Manager, assembler *order.Assembler, lifecycle *order.Lifecycle, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "storefront")
	}
	return &Service{
		cart:      cartManager,
		assembler: assembler,
		lifecycle: lifecycle,
		logger:    logger,
	}
}

// GetCart возвращает представление корзины пользователя.
func (s *Service) GetCart(ctx context.Context, userID string) domain.Result[domain.CartView] {
	view, err := s.cart.GetCart(ctx, userID)
	if err != nil {
		return failEnvelope[domain.CartView](s, "get cart", err)
	}
	return domain.OK("cart retrieved", view)
}

// AddToCart добавляет товар в корзину и возвращает её обновлённое представление.
func (s *Service) AddToCart(ctx context.Context, userID, productID string, quantity int32) domain.Result[domain.CartView] {
	view, err := s.cart.AddItem(ctx, userID, productID, quantity)
	if err != nil {
		return failEnvelope[domain.CartView](s, "add to cart", err)
	}
	return domain.OK("item added to cart", view)
}

// RemoveFromCart удаляет позицию корзины. Чужая позиция выглядит как
// отсутствующая.
func (s *Service) RemoveFromCart(ctx context.Context, userID, itemID string) domain.Result[domain.CartView] {
	view, err := s.cart.RemoveItem(ctx, userID, itemID)
	if err != nil {
		return failEnvelope[domain.CartView](s, "remove from cart", err)
	}
	return domain.OK("item removed from cart", view)
}

// ClearCart опустошает корзину пользователя. Операция идемпотентна.
func (s *Service) ClearCart(ctx context.Context, userID string) domain.Result[struct{}] {
	if err := s.cart.ClearCart(ctx, userID); err != nil {
		return failEnvelope[struct{}](s, "clear cart", err)
	}
	return domain.OK("cart cleared", struct{}{})
}

// CreateOrder оформляет заказ из запрошенных позиций.
func (s *Service) CreateOrder(ctx context.Context, userID, shippingAddress string, lines []order.Line) domain.Result[domain.Order] {
	created, err := s.assembler.CreateOrder(ctx, userID, shippingAddress, lines)
	if err != nil {
		return failEnvelope[domain.Order](s, "create order", err)
	}
	return domain.OK("order created", created)
}

// GetOrderById возвращает заказ с позициями и историей статусов.
func (s *Service) GetOrderById(ctx context.Context, orderID string) domain.Result[order.OrderDetails] {
	details, err := s.lifecycle.GetOrder(ctx, orderID)
	if err != nil {
		return failEnvelope[order.OrderDetails](s, "get order", err)
	}
	return domain.OK("order retrieved", details)
}

// ListOrders возвращает страницу заказов по фильтру.
func (s *Service) ListOrders(ctx context.Context, filter domain.OrderFilter, page, pageSize int) domain.Result[order.OrderPage] {
	result, err := s.lifecycle.ListOrders(ctx, filter, page, pageSize)
	if err != nil {
		return failEnvelope[order.OrderPage](s, "list orders", err)
	}
	return domain.OK("orders retrieved", result)
}

// UpdateOrderStatus переводит заказ в новый статус от имени утверждающего.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID, status, approverID string) domain.Result[domain.Order] {
	updated, err := s.lifecycle.UpdateStatus(ctx, orderID, status, approverID)
	if err != nil {
		return failEnvelope[domain.Order](s, "update order status", err)
	}
	return domain.OK("order status updated", updated)
}

// failMessage отображает доменную ошибку на сообщение конверта. Ожидаемые
// ошибки получают говорящее сообщение, всё остальное скрывается за общим
// текстом "internal error".
func failMessage(err error) (string, bool) {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return stockErr.Error(), true
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "user not found", true
	case errors.Is(err, domain.ErrProductNotFound):
		return "product not found", true
	case errors.Is(err, domain.ErrCartNotFound):
		return "cart not found", true
	case errors.Is(err, domain.ErrCartItemNotFound):
		return "cart item not found", true
	case errors.Is(err, domain.ErrOrderNotFound):
		return "order not found", true
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "quantity must be greater than zero", true
	case errors.Is(err, domain.ErrInvalidStatus):
		return "unknown order status", true
	case errors.Is(err, domain.ErrUserIDRequired):
		return "user id is required", true
	case errors.Is(err, domain.ErrShippingAddressRequired):
		return "shipping address is required", true
	case errors.Is(err, domain.ErrItemsRequired):
		return "order must contain at least one item", true
	case errors.Is(err, domain.ErrItemQtyInvalid):
		return "item quantity must be greater than zero", true
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient stock", true
	case errors.Is(err, domain.ErrOrderNumberTaken):
		return "could not allocate order number, try again", true
	default:
		return "internal error", false
	}
}

func failEnvelope[T any](s *Service, op string, err error) domain.Result[T] {
	message, expected := failMessage(err)
	entry := s.logger.WithError(err).WithField("operation", op)
	if expected {
		entry.Info(fmt.Sprintf("%s rejected", op))
	} else {
		entry.Error(fmt.Sprintf("%s failed", op))
	}
	return domain.Fail[T](message)
}
