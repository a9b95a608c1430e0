package kafka

import (
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// EventType определяет тип события
type EventType string

const (
	// Order события
	EventTypeOrderCreated       EventType = "order.created"
	EventTypeOrderStatusChanged EventType = "order.status_changed"
)

// Topics для Kafka
const (
	TopicOrderEvents = "storefront.order.events"
)

// OrderEvent представляет событие жизненного цикла заказа
type OrderEvent struct {
	EventType   EventType `json:"event_type"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
	Status      string    `json:"status"`
	FromStatus  string    `json:"from_status,omitempty"`
	AmountMinor int64     `json:"amount_minor"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewOrderCreatedEvent создает событие о создании заказа
func NewOrderCreatedEvent(order domain.Order) *OrderEvent {
	return &OrderEvent{
		EventType:   EventTypeOrderCreated,
		OrderID:     order.ID,
		OrderNumber: order.Number,
		UserID:      order.UserID,
		Status:      string(order.Status),
		AmountMinor: order.AmountMinor,
		Timestamp:   time.Now(),
	}
}

// NewOrderStatusChangedEvent создает событие о смене статуса заказа
func NewOrderStatusChangedEvent(order domain.Order, from domain.OrderStatus) *OrderEvent {
	return &OrderEvent{
		EventType:   EventTypeOrderStatusChanged,
		OrderID:     order.ID,
		OrderNumber: order.Number,
		UserID:      order.UserID,
		Status:      string(order.Status),
		FromStatus:  string(from),
		AmountMinor: order.AmountMinor,
		Timestamp:   time.Now(),
	}
}
