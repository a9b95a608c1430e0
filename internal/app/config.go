package app

// StorageDriver выбирает реализацию хранилища.
type StorageDriver string

const (
	// StorageDriverMemory — встроенное хранилище для разработки и тестов.
	StorageDriverMemory StorageDriver = "memory"
	// StorageDriverPostgres — основное хранилище.
	StorageDriverPostgres StorageDriver = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	// HTTPAddr — адрес JSON-шлюза витрины.
	HTTPAddr string
	// GRPCAddr — адрес gRPC-сервера (health-проверки и reflection).
	GRPCAddr string
	// MetricsAddr — адрес HTTP-сервера метрик и health-проверок.
	MetricsAddr string

	StorageDriver StorageDriver
	// PostgresDSN используется при StorageDriver == postgres.
	PostgresDSN string
	// PostgresAutoMigrate применяет миграции при старте.
	PostgresAutoMigrate bool

	// KafkaBrokers — список брокеров через запятую; пусто — уведомления
	// отключены.
	KafkaBrokers string

	// SeedDemoData наполняет memory-хранилище демо-каталогом.
	SeedDemoData bool
}

// DefaultConfig возвращает базовую конфигурацию для локального запуска.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:            ":8080",
		GRPCAddr:            ":50051",
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		SeedDemoData:        true,
	}
}
