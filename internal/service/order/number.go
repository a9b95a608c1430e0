package order

import (
	"crypto/rand"
	"fmt"
	"time"
)

// NumberGenerator выдаёт человекочитаемый номер заказа. Уникальность номера
// гарантирует хранилище; генератор лишь делает коллизии маловероятными.
type NumberGenerator func() string

const numberAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// DefaultNumberGenerator формирует номер вида ORD-20260830-x7k2mq:
// дата для человека, случайный суффикс против коллизий.
func DefaultNumberGenerator() string {
	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand не отказывает на поддерживаемых платформах; запасной
		// вариант оставляет номер валидным, коллизию разрешит хранилище.
		for i := range suffix {
			suffix[i] = byte(time.Now().UnixNano() >> (i * 8))
		}
	}
	for i, b := range suffix {
		suffix[i] = numberAlphabet[int(b)%len(numberAlphabet)]
	}

	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
