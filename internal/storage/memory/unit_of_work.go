package memory

import (
	"context"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// unitOfWorkInMemory исполняет транзакцию под эксклюзивной блокировкой Store.
// Перед вызовом fn изменяемые таблицы снимаются в snapshot; ошибка fn
// восстанавливает их, давая семантику "всё или ничего". Эксклюзивная
// блокировка также сериализует конкурентные оформления заказов.
type unitOfWorkInMemory struct {
	store *Store
}

// NewUnitOfWork возвращает in-memory реализацию UnitOfWork.
func NewUnitOfWork(store *Store) domain.UnitOfWork {
	return &unitOfWorkInMemory{store: store}
}

// Within выполняет fn атомарно относительно остальных операций Store.
func (u *unitOfWorkInMemory) Within(ctx context.Context, fn func(tx domain.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	products := cloneProducts(u.store.products)
	orders := cloneOrders(u.store.orders)
	numbers := cloneNumbers(u.store.orderNumbers)
	changes := cloneStatusChanges(u.store.statusChanges)

	if err := fn(&txInMemory{store: u.store}); err != nil {
		u.store.products = products
		u.store.orders = orders
		u.store.orderNumbers = numbers
		u.store.statusChanges = changes
		return err
	}
	return nil
}

// txInMemory предоставляет репозитории, работающие без собственных блокировок:
// мьютекс Store уже удержан в Within.
type txInMemory struct {
	store *Store
}

func (t *txInMemory) Users() domain.UserRepository { return &txUsers{store: t.store} }
func (t *txInMemory) Products() domain.ProductTx   { return &txProducts{store: t.store} }
func (t *txInMemory) Orders() domain.OrderTx       { return &txOrders{store: t.store} }
func (t *txInMemory) StatusChanges() domain.StatusChangeTx {
	return &txStatusChanges{store: t.store}
}

type txUsers struct {
	store *Store
}

func (r *txUsers) Get(_ context.Context, id string) (domain.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

type txProducts struct {
	store *Store
}

func (r *txProducts) GetForUpdate(_ context.Context, id string) (domain.Product, error) {
	product, ok := r.store.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

func (r *txProducts) DecrementStock(_ context.Context, id string, quantity int32) error {
	product, ok := r.store.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if product.Stock < quantity {
		return &domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   quantity,
			Available:   product.Stock,
		}
	}
	product.Stock -= quantity
	product.UpdatedAt = time.Now().UTC()
	r.store.products[id] = product
	return nil
}

type txOrders struct {
	store *Store
}

func (r *txOrders) Get(_ context.Context, id string) (domain.Order, error) {
	order, ok := r.store.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *txOrders) Create(_ context.Context, order domain.Order) error {
	if _, taken := r.store.orderNumbers[order.Number]; taken {
		return domain.ErrOrderNumberTaken
	}
	r.store.orders[order.ID] = cloneOrder(order)
	r.store.orderNumbers[order.Number] = order.ID
	return nil
}

func (r *txOrders) AddItem(_ context.Context, item domain.OrderItem) error {
	order, ok := r.store.orders[item.OrderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Items = append(order.Items, item)
	r.store.orders[item.OrderID] = order
	return nil
}

func (r *txOrders) SetAmount(_ context.Context, orderID string, amountMinor int64) error {
	order, ok := r.store.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.AmountMinor = amountMinor
	r.store.orders[orderID] = order
	return nil
}

func (r *txOrders) UpdateStatus(_ context.Context, orderID string, status domain.OrderStatus, approvedBy string, approvedAt time.Time) error {
	order, ok := r.store.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Status = status
	order.ApprovedBy = approvedBy
	order.ApprovedAt = &approvedAt
	r.store.orders[orderID] = order
	return nil
}

type txStatusChanges struct {
	store *Store
}

func (r *txStatusChanges) Append(_ context.Context, change domain.StatusChange) error {
	r.store.statusChanges[change.OrderID] = append(r.store.statusChanges[change.OrderID], change)
	return nil
}

var (
	_ domain.UnitOfWork = (*unitOfWorkInMemory)(nil)
	_ domain.Tx         = (*txInMemory)(nil)
)
