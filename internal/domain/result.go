package domain

// Result — единый конверт ответа командных и запросных контрактов ядра.
// Вызывающий транспортный слой отображает его на свои ответы один к одному.
type Result[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

// OK собирает успешный результат с данными.
func OK[T any](message string, data T) Result[T] {
	return Result[T]{Success: true, Message: message, Data: data}
}

// Fail собирает неуспешный результат с человекочитаемым сообщением.
func Fail[T any](message string) Result[T] {
	return Result[T]{Success: false, Message: message}
}
