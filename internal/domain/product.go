package domain

import "time"

// Product — снимок товара из каталога. Ядро читает каталог, а изменяет
// только счётчик остатка (stock) при сборке заказа.
type Product struct {
	ID string
	// Name — отображаемое название товара.
	Name string
	// ImageURL — ссылка на изображение для витрины.
	ImageURL string
	// PriceMinor — цена за единицу в минимальных денежных единицах (копейки/центы).
	PriceMinor int64
	// Stock — количество доступных единиц; никогда не опускается ниже нуля.
	Stock int32
	// Active указывает, доступен ли товар для покупки.
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
