package domain

import (
	"context"
	"time"
)

// ProductRepository описывает read-only доступ к снимку каталога.
type ProductRepository interface {
	// Get возвращает товар по идентификатору или ErrProductNotFound.
	Get(ctx context.Context, id string) (Product, error)
}

// UserRepository позволяет проверять существование учётной записи.
type UserRepository interface {
	// Get возвращает пользователя или ErrUserNotFound.
	Get(ctx context.Context, id string) (User, error)
}

// CartRepository описывает требования к хранилищу корзин.
type CartRepository interface {
	// GetByUser возвращает корзину пользователя с позициями или ErrCartNotFound.
	GetByUser(ctx context.Context, userID string) (Cart, []CartItem, error)
	// Ensure возвращает корзину пользователя, создавая её при отсутствии.
	Ensure(ctx context.Context, userID string) (Cart, error)
	// UpsertItem добавляет позицию либо увеличивает количество существующей
	// позиции того же товара.
	UpsertItem(ctx context.Context, cartID, productID string, quantity int32) error
	// DeleteItem удаляет позицию, проверяя принадлежность корзине userID.
	// Чужая или отсутствующая позиция — ErrCartItemNotFound.
	DeleteItem(ctx context.Context, userID, itemID string) error
	// Clear удаляет все позиции корзины пользователя. Отсутствие корзины или
	// позиций ошибкой не является.
	Clear(ctx context.Context, userID string) error
}

// OrderRepository описывает read-доступ к заказам вне транзакции сборки.
type OrderRepository interface {
	// Get возвращает заказ с позициями или ErrOrderNotFound.
	Get(ctx context.Context, id string) (Order, error)
	// List возвращает страницу заказов по фильтру (created_at по убыванию)
	// и общее количество подходящих заказов.
	List(ctx context.Context, filter OrderFilter, page, pageSize int) ([]Order, int, error)
}

// StatusChangeRepository хранит историю переходов статуса заказа.
type StatusChangeRepository interface {
	List(ctx context.Context, orderID string) ([]StatusChange, error)
}

// UnitOfWork открывает транзакционную область: все операции внутри fn либо
// фиксируются одним коммитом, либо полностью откатываются.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(tx Tx) error) error
}

// Tx предоставляет репозитории, привязанные к открытой транзакции.
type Tx interface {
	Users() UserRepository
	Products() ProductTx
	Orders() OrderTx
	StatusChanges() StatusChangeTx
}

// ProductTx — операции над каталогом внутри транзакции.
type ProductTx interface {
	// GetForUpdate читает товар, удерживая блокировку строки до конца транзакции.
	GetForUpdate(ctx context.Context, id string) (Product, error)
	// DecrementStock уменьшает остаток на quantity. Если остатка не хватает,
	// возвращает *InsufficientStockError; остаток никогда не уходит в минус.
	DecrementStock(ctx context.Context, id string, quantity int32) error
}

// OrderTx — операции над заказами внутри транзакции.
type OrderTx interface {
	// Get возвращает заказ с позициями или ErrOrderNotFound.
	Get(ctx context.Context, id string) (Order, error)
	// Create вставляет заголовок заказа. Коллизия номера — ErrOrderNumberTaken.
	Create(ctx context.Context, order Order) error
	// AddItem вставляет замороженную позицию заказа.
	AddItem(ctx context.Context, item OrderItem) error
	// SetAmount записывает итоговую сумму в заголовок заказа.
	SetAmount(ctx context.Context, orderID string, amountMinor int64) error
	// UpdateStatus переводит заказ в новый статус и обновляет отметку утверждения.
	UpdateStatus(ctx context.Context, orderID string, status OrderStatus, approvedBy string, approvedAt time.Time) error
}

// StatusChangeTx — запись истории переходов внутри транзакции.
type StatusChangeTx interface {
	Append(ctx context.Context, change StatusChange) error
}
