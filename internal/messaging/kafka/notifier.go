package kafka

import (
	"context"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Notifier публикует события заказа в Kafka. Реализует domain.NotificationSink.
type Notifier struct {
	producer *Producer
}

// NewNotifier создает notifier поверх готового producer.
func NewNotifier(producer *Producer) *Notifier {
	return &Notifier{producer: producer}
}

// OrderCreated публикует событие order.created.
func (n *Notifier) OrderCreated(ctx context.Context, order domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return n.producer.PublishOrderEvent(NewOrderCreatedEvent(order))
}

// OrderStatusChanged публикует событие order.status_changed.
func (n *Notifier) OrderStatusChanged(ctx context.Context, order domain.Order, from domain.OrderStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return n.producer.PublishOrderEvent(NewOrderStatusChangedEvent(order, from))
}

// NoopNotifier игнорирует события. Используется, когда Kafka не сконфигурирована.
type NoopNotifier struct{}

func (NoopNotifier) OrderCreated(context.Context, domain.Order) error { return nil }

func (NoopNotifier) OrderStatusChanged(context.Context, domain.Order, domain.OrderStatus) error {
	return nil
}

var (
	_ domain.NotificationSink = (*Notifier)(nil)
	_ domain.NotificationSink = NoopNotifier{}
)
