package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound возвращается, если учётная запись не найдена.
	ErrUserNotFound = errors.New("user not found")
	// ErrProductNotFound возвращается, если товар отсутствует в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductInactive — товар существует, но снят с продажи.
	ErrProductInactive = errors.New("product is not available for purchase")
	// ErrCartNotFound возвращается, если у пользователя нет корзины.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartItemNotFound — позиция корзины не найдена либо принадлежит чужой
	// корзине; эти случаи снаружи неразличимы.
	ErrCartItemNotFound = errors.New("cart item not found")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// Ошибка некорректного количества товара (<= 0).
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	// Ошибка нераспознанного статуса заказа.
	ErrInvalidStatus = errors.New("unknown order status")
	// Ошибка отсутствующего идентификатора пользователя.
	ErrUserIDRequired = errors.New("user_id is required")
	// Ошибка отсутствующего адреса доставки.
	ErrShippingAddressRequired = errors.New("shipping address is required")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка отрицательной суммы заказа.
	ErrAmountNegative = errors.New("amount_minor must be non-negative")
	// Ошибка при некорректном количестве в позиции (<= 0).
	ErrItemQtyInvalid = errors.New("item quantity must be greater than zero")
	// Ошибка, если зафиксированная цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// Ошибка несоответствия суммы заказа и сумм позиций.
	ErrAmountMismatch = errors.New("order amount does not match items sum")
	// ErrInsufficientStock — запрошенное количество превышает остаток.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrOrderNumberTaken — сгенерированный номер заказа уже занят; сборщик
	// заказов генерирует новый номер и повторяет попытку.
	ErrOrderNumberTaken = errors.New("order number already taken")
)

// InsufficientStockError уточняет, какой товар и в каком объёме недоступен.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int32
	Available   int32
}

// Error возвращает человекочитаемое описание нехватки остатка.
func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID
	}
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		name, e.Requested, e.Available)
}

// Is позволяет сопоставлять ошибку с ErrInsufficientStock через errors.Is.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// IsNotFound проверяет, относится ли ошибка к классу "ресурс не найден".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrCartNotFound) ||
		errors.Is(err, ErrCartItemNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}
