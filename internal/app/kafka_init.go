package app

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
)

// initNotifications собирает sink уведомлений. Пустой список брокеров или
// ошибка подключения дают noop-sink: уведомления best-effort и не должны
// мешать запуску ядра.
func initNotifications(brokers string, logger *log.Entry) (domain.NotificationSink, *kafka.Producer) {
	if brokers == "" {
		logger.Info("kafka brokers not configured, order notifications disabled")
		return kafka.NoopNotifier{}, nil
	}

	brokerList := strings.Split(brokers, ",")
	producer, err := kafka.NewProducer(brokerList)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without notifications")
		return kafka.NoopNotifier{}, nil
	}

	logger.WithField("brokers", brokerList).Info("kafka producer initialized")
	return kafka.NewNotifier(producer), producer
}

// closeKafka закрывает Kafka producer если он не nil.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}
