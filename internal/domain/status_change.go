package domain

import "time"

// StatusChange — одно событие в истории переходов статуса заказа.
type StatusChange struct {
	ID      string
	OrderID string
	// From пуст для записи о создании заказа.
	From OrderStatus
	To   OrderStatus
	// ChangedBy — идентификатор утвердившего переход.
	ChangedBy string
	Occurred  time.Time
}
