package domain

import "time"

// Cart — активная корзина пользователя. У пользователя не более одной корзины,
// она создаётся лениво при первом добавлении товара.
type Cart struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}

// CartItem — одна позиция корзины. Для пары (корзина, товар) существует не
// более одной строки; повторное добавление увеличивает Quantity.
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartView — материализованное представление корзины с актуальными данными
// каталога. Возвращается и для отсутствующей корзины (пустой список позиций).
type CartView struct {
	Items []CartViewItem `json:"items"`
	// TotalMinor — сумма цена×количество по всем позициям.
	TotalMinor int64 `json:"total_minor"`
	// TotalItems — суммарное количество единиц товара.
	TotalItems int32 `json:"total_items"`
}

// CartViewItem — позиция корзины, дополненная живыми данными товара.
type CartViewItem struct {
	ItemID        string `json:"item_id"`
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	ImageURL      string `json:"image_url,omitempty"`
	PriceMinor    int64  `json:"price_minor"`
	Quantity      int32  `json:"quantity"`
	Stock         int32  `json:"stock"`
	SubtotalMinor int64  `json:"subtotal_minor"`
}

// EmptyCartView возвращает явное "пустое" представление корзины.
func EmptyCartView() CartView {
	return CartView{Items: []CartViewItem{}}
}
