package domain

import "time"

// User — учётная запись покупателя. Управление учётными записями живёт во
// внешнем identity-сервисе; ядру нужна только проверка существования.
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}
