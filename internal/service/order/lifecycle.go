package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// OrderDetails — заказ вместе с историей переходов статуса.
type OrderDetails struct {
	Order   domain.Order          `json:"order"`
	History []domain.StatusChange `json:"history"`
}

// OrderPage — страница списка заказов с общим числом подходящих записей.
type OrderPage struct {
	Orders   []domain.Order `json:"orders"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// Lifecycle управляет статусом заказа после создания и отвечает за чтение
// заказов. Проверяется допустимость значения статуса; порядок переходов не
// ограничен, каждый успешный переход фиксирует утвердившего и время.
type Lifecycle struct {
	uow      domain.UnitOfWork
	orders   domain.OrderRepository
	history  domain.StatusChangeRepository
	notifier domain.NotificationSink
	logger   *log.Entry
	metrics  *metrics.CommerceMetrics
	now      func() time.Time
}

// NewLifecycle создаёт контроллер жизненного цикла заказа.
func NewLifecycle(
	uow domain.UnitOfWork,
	orders domain.OrderRepository,
	history domain.StatusChangeRepository,
	notifier domain.NotificationSink,
	logger *log.Entry,
) *Lifecycle {
	if logger == nil {
		logger = log.New().WithField("component", "order-lifecycle")
	}
	if notifier == nil {
		notifier = noopSink{}
	}
	return &Lifecycle{
		uow:      uow,
		orders:   orders,
		history:  history,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics.NewCommerceMetrics(),
		now:      time.Now,
	}
}

// NewLifecycleWithoutMetrics создаёт контроллер без метрик (для тестов).
func NewLifecycleWithoutMetrics(
	uow domain.UnitOfWork,
	orders domain.OrderRepository,
	history domain.StatusChangeRepository,
	notifier domain.NotificationSink,
	logger *log.Entry,
) *Lifecycle {
	l := NewLifecycle(uow, orders, history, notifier, logger)
	l.metrics = nil
	return l
}

// UpdateStatus переводит заказ в новый статус. Повторная установка того же
// статуса не ошибка: обновляется отметка утверждения.
func (l *Lifecycle) UpdateStatus(ctx context.Context, orderID, rawStatus, approverID string) (domain.Order, error) {
	status, err := domain.ParseOrderStatus(rawStatus)
	if err != nil {
		return domain.Order{}, err
	}

	var updated domain.Order
	var previous domain.OrderStatus
	approvedAt := l.now().UTC()

	err = l.uow.Within(ctx, func(tx domain.Tx) error {
		current, err := tx.Orders().Get(ctx, orderID)
		if err != nil {
			return err
		}
		previous = current.Status

		if err := tx.Orders().UpdateStatus(ctx, orderID, status, approverID, approvedAt); err != nil {
			return err
		}

		if err := tx.StatusChanges().Append(ctx, domain.StatusChange{
			ID:        uuid.NewString(),
			OrderID:   orderID,
			From:      previous,
			To:        status,
			ChangedBy: approverID,
			Occurred:  approvedAt,
		}); err != nil {
			return err
		}

		updated = current
		updated.Status = status
		updated.ApprovedBy = approverID
		updated.ApprovedAt = &approvedAt
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	l.logger.WithFields(log.Fields{
		"order_id": orderID,
		"from":     string(previous),
		"to":       string(status),
		"approver": approverID,
	}).Info("order status updated")
	if l.metrics != nil {
		l.metrics.RecordStatusTransition(string(status))
	}

	if err := l.notifier.OrderStatusChanged(ctx, updated, previous); err != nil {
		l.logger.WithError(err).WithField("order_id", orderID).Warn("status change notification failed")
	}

	return updated, nil
}

// GetOrder возвращает заказ с позициями и историей переходов статуса.
func (l *Lifecycle) GetOrder(ctx context.Context, orderID string) (OrderDetails, error) {
	order, err := l.orders.Get(ctx, orderID)
	if err != nil {
		return OrderDetails{}, err
	}

	history, err := l.history.List(ctx, orderID)
	if err != nil {
		return OrderDetails{}, fmt.Errorf("load status history: %w", err)
	}

	return OrderDetails{Order: order, History: history}, nil
}

// ListOrders возвращает страницу заказов по фильтру, новые первыми, вместе с
// общим количеством подходящих заказов.
func (l *Lifecycle) ListOrders(ctx context.Context, filter domain.OrderFilter, page, pageSize int) (OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	orders, total, err := l.orders.List(ctx, filter, page, pageSize)
	if err != nil {
		return OrderPage{}, fmt.Errorf("list orders: %w", err)
	}

	return OrderPage{
		Orders:   orders,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
