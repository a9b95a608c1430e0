package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Store хранит все таблицы витрины в памяти под одним мьютексом.
// Используется для локальной разработки и тестов; репозитории и unit of work
// этого пакета являются представлениями поверх одного Store.
type Store struct {
	mu sync.RWMutex

	users      map[string]domain.User
	products   map[string]domain.Product
	carts      map[string]domain.Cart
	cartByUser map[string]string
	cartItems  map[string]domain.CartItem
	orders     map[string]domain.Order
	// orderNumbers обеспечивает уникальность человекочитаемых номеров заказов.
	orderNumbers  map[string]string
	statusChanges map[string][]domain.StatusChange
}

// NewStore создаёт пустое in-memory хранилище.
func NewStore() *Store {
	return &Store{
		users:         make(map[string]domain.User),
		products:      make(map[string]domain.Product),
		carts:         make(map[string]domain.Cart),
		cartByUser:    make(map[string]string),
		cartItems:     make(map[string]domain.CartItem),
		orders:        make(map[string]domain.Order),
		orderNumbers:  make(map[string]string),
		statusChanges: make(map[string][]domain.StatusChange),
	}
}

// SeedUser добавляет или перезаписывает учётную запись.
func (s *Store) SeedUser(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
}

// SeedProduct добавляет или перезаписывает товар каталога.
func (s *Store) SeedProduct(product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = product
}

// ProductStock возвращает текущий остаток товара (для тестов и инструментов).
func (s *Store) ProductStock(id string) (int32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[id]
	if !ok {
		return 0, false
	}
	return product.Stock, true
}

func cloneOrder(order domain.Order) domain.Order {
	items := make([]domain.OrderItem, len(order.Items))
	copy(items, order.Items)
	order.Items = items
	if order.ApprovedAt != nil {
		at := *order.ApprovedAt
		order.ApprovedAt = &at
	}
	return order
}

func cloneOrders(src map[string]domain.Order) map[string]domain.Order {
	dst := make(map[string]domain.Order, len(src))
	for id, order := range src {
		dst[id] = cloneOrder(order)
	}
	return dst
}

func cloneProducts(src map[string]domain.Product) map[string]domain.Product {
	dst := make(map[string]domain.Product, len(src))
	for id, product := range src {
		dst[id] = product
	}
	return dst
}

func cloneNumbers(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for number, id := range src {
		dst[number] = id
	}
	return dst
}

func cloneStatusChanges(src map[string][]domain.StatusChange) map[string][]domain.StatusChange {
	dst := make(map[string][]domain.StatusChange, len(src))
	for orderID, changes := range src {
		copied := make([]domain.StatusChange, len(changes))
		copy(copied, changes)
		dst[orderID] = copied
	}
	return dst
}
