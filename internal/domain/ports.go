package domain

import "context"

// NotificationSink публикует уведомления о событиях заказа после коммита
// транзакции. Доставка best-effort: ошибка публикации логируется вызывающей
// стороной и не влияет на результат операции.
type NotificationSink interface {
	// OrderCreated сообщает о создании заказа.
	OrderCreated(ctx context.Context, order Order) error
	// OrderStatusChanged сообщает о переходе заказа в новый статус.
	OrderStatusChanged(ctx context.Context, order Order, from OrderStatus) error
}
