package domain

import "time"

// OrderStatus описывает жизненный цикл заказа на витрине.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан, ожидает подтверждения.
	OrderStatusPending OrderStatus = "Pending"
	// OrderStatusConfirmed — заказ подтверждён оператором.
	OrderStatusConfirmed OrderStatus = "Confirmed"
	// OrderStatusShipped — заказ передан в доставку.
	OrderStatusShipped OrderStatus = "Shipped"
	// OrderStatusDelivered — заказ доставлен покупателю (терминальный статус).
	OrderStatusDelivered OrderStatus = "Delivered"
	// OrderStatusCancelled — заказ отменён (терминальный статус).
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// ParseOrderStatus проверяет, что значение входит в фиксированное перечисление.
// Произвольные строки отклоняются с ErrInvalidStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	switch OrderStatus(value) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(value), nil
	default:
		return "", ErrInvalidStatus
	}
}

// IsTerminal сообщает, является ли статус конечным.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// OrderItem — замороженная позиция заказа. PriceMinor фиксируется в момент
// покупки и больше никогда не перечитывается из каталога.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int32
	// PriceMinor — цена за единицу на момент оформления заказа.
	PriceMinor int64
}

// Order агрегирует заголовок заказа и его позиции.
type Order struct {
	ID string
	// Number — человекочитаемый уникальный номер заказа (не путать с ID).
	Number          string
	UserID          string
	Status          OrderStatus
	ShippingAddress string
	// AmountMinor всегда равен сумме Quantity×PriceMinor по позициям заказа.
	AmountMinor int64
	Items       []OrderItem
	// ApprovedBy/ApprovedAt фиксируют, кто и когда утвердил последний переход статуса.
	ApprovedBy string
	ApprovedAt *time.Time
	CreatedAt  time.Time
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.UserID == "" {
		errs = append(errs, ErrUserIDRequired)
	}
	if o.ShippingAddress == "" {
		errs = append(errs, ErrShippingAddressRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	if o.AmountMinor < 0 {
		errs = append(errs, ErrAmountNegative)
	}

	// Сверяем сумму заказа с суммой позиций: quantity * price.
	var calc int64
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.PriceMinor < 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
		calc += int64(item.Quantity) * item.PriceMinor
	}
	if calc != o.AmountMinor {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}

// OrderFilter задаёт критерии выборки заказов.
type OrderFilter struct {
	// UserID ограничивает выборку заказами одного владельца (пусто — все).
	UserID string
	// Status ограничивает выборку одним статусом (nil — все).
	Status *OrderStatus
}
