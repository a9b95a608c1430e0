package cart

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// Manager управляет единственной активной корзиной пользователя.
type Manager struct {
	carts    domain.CartRepository
	products domain.ProductRepository
	logger   *log.Entry
	metrics  *metrics.CommerceMetrics
}

// NewManager создаёт рабочий экземпляр менеджера корзины.
func NewManager(carts domain.CartRepository, products domain.ProductRepository, logger *log.Entry) *Manager {
	if logger == nil {
		logger = log.New().WithField("component", "cart")
	}
	return &Manager{
		carts:    carts,
		products: products,
		logger:   logger,
		metrics:  metrics.NewCommerceMetrics(),
	}
}

// NewManagerWithoutMetrics создаёт менеджер без метрик (для тестов).
func NewManagerWithoutMetrics(carts domain.CartRepository, products domain.ProductRepository, logger *log.Entry) *Manager {
	m := NewManager(carts, products, logger)
	m.metrics = nil
	return m
}

// AddItem добавляет товар в корзину пользователя, создавая корзину при первом
// добавлении. Повторное добавление того же товара увеличивает количество
// существующей позиции. Проверка остатка здесь рекомендательная: решающая
// проверка выполняется при оформлении заказа.
func (m *Manager) AddItem(ctx context.Context, userID, productID string, quantity int32) (domain.CartView, error) {
	if userID == "" {
		return domain.CartView{}, domain.ErrUserIDRequired
	}
	if quantity <= 0 {
		m.recordCartOp("add_item", "rejected")
		return domain.CartView{}, domain.ErrInvalidQuantity
	}

	product, err := m.products.Get(ctx, productID)
	if err != nil {
		m.recordCartOp("add_item", "rejected")
		return domain.CartView{}, err
	}
	// Неактивный товар снаружи неотличим от отсутствующего.
	if !product.Active {
		m.recordCartOp("add_item", "rejected")
		return domain.CartView{}, domain.ErrProductNotFound
	}

	var existing int32
	_, items, err := m.carts.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrCartNotFound) {
		return domain.CartView{}, fmt.Errorf("read cart: %w", err)
	}
	for _, item := range items {
		if item.ProductID == productID {
			existing = item.Quantity
			break
		}
	}

	if existing+quantity > product.Stock {
		m.recordCartOp("add_item", "insufficient_stock")
		return domain.CartView{}, &domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   existing + quantity,
			Available:   product.Stock,
		}
	}

	cart, err := m.carts.Ensure(ctx, userID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("ensure cart: %w", err)
	}
	if err := m.carts.UpsertItem(ctx, cart.ID, productID, quantity); err != nil {
		return domain.CartView{}, fmt.Errorf("upsert cart item: %w", err)
	}

	m.logger.WithFields(log.Fields{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	}).Info("item added to cart")
	m.recordCartOp("add_item", "ok")

	return m.GetCart(ctx, userID)
}

// RemoveItem удаляет позицию из корзины пользователя. Позиция чужой корзины
// неотличима от отсутствующей.
func (m *Manager) RemoveItem(ctx context.Context, userID, itemID string) (domain.CartView, error) {
	if userID == "" {
		return domain.CartView{}, domain.ErrUserIDRequired
	}

	if err := m.carts.DeleteItem(ctx, userID, itemID); err != nil {
		m.recordCartOp("remove_item", "rejected")
		return domain.CartView{}, err
	}

	m.logger.WithFields(log.Fields{
		"user_id": userID,
		"item_id": itemID,
	}).Info("item removed from cart")
	m.recordCartOp("remove_item", "ok")

	return m.GetCart(ctx, userID)
}

// ClearCart удаляет все позиции корзины. Отсутствие корзины ошибкой не является.
func (m *Manager) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrUserIDRequired
	}

	if err := m.carts.Clear(ctx, userID); err != nil {
		m.recordCartOp("clear", "failed")
		return fmt.Errorf("clear cart: %w", err)
	}

	m.logger.WithField("user_id", userID).Info("cart cleared")
	m.recordCartOp("clear", "ok")

	return nil
}

// GetCart возвращает представление корзины с живыми данными каталога и
// подсчитанными итогами. Для отсутствующей корзины возвращается пустое
// представление, а не ошибка.
func (m *Manager) GetCart(ctx context.Context, userID string) (domain.CartView, error) {
	if userID == "" {
		return domain.CartView{}, domain.ErrUserIDRequired
	}

	_, items, err := m.carts.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return domain.EmptyCartView(), nil
		}
		return domain.CartView{}, fmt.Errorf("read cart: %w", err)
	}

	view := domain.EmptyCartView()
	for _, item := range items {
		product, err := m.products.Get(ctx, item.ProductID)
		if err != nil {
			// Товар мог быть снят с продажи после добавления в корзину.
			// Позиция остаётся видимой, но с нулевыми данными каталога.
			if errors.Is(err, domain.ErrProductNotFound) {
				m.logger.WithField("product_id", item.ProductID).Warn("cart references missing product")
				continue
			}
			return domain.CartView{}, fmt.Errorf("read product: %w", err)
		}

		subtotal := product.PriceMinor * int64(item.Quantity)
		view.Items = append(view.Items, domain.CartViewItem{
			ItemID:        item.ID,
			ProductID:     product.ID,
			Name:          product.Name,
			ImageURL:      product.ImageURL,
			PriceMinor:    product.PriceMinor,
			Quantity:      item.Quantity,
			Stock:         product.Stock,
			SubtotalMinor: subtotal,
		})
		view.TotalMinor += subtotal
		view.TotalItems += item.Quantity
	}

	return view, nil
}

func (m *Manager) recordCartOp(operation, outcome string) {
	if m.metrics != nil {
		m.metrics.RecordCartOperation(operation, outcome)
	}
}
