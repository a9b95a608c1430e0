package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CommerceMetrics содержит метрики операций витрины.
type CommerceMetrics struct {
	// Счётчики операций с корзиной
	cartOps *prometheus.CounterVec

	// Счётчики оформления заказов
	ordersCreated      prometheus.Counter
	ordersFailed       prometheus.Counter
	insufficientStock  prometheus.Counter
	orderNumberRetries prometheus.Counter

	// Гистограмма времени оформления заказа
	checkoutDuration prometheus.Histogram

	// Переходы статусов
	statusTransitions *prometheus.CounterVec

	// Gauge для оформлений в полёте
	activeCheckouts prometheus.Gauge
}

// NewCommerceMetrics создаёт экземпляр метрик витрины.
func NewCommerceMetrics() *CommerceMetrics {
	return newCommerceMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newCommerceMetricsWithRegisterer(registerer prometheus.Registerer) *CommerceMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CommerceMetrics{
		cartOps: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_cart_operations_total",
			Help: "Total number of cart operations by kind and outcome",
		}, []string{"operation", "outcome"}),
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_orders_created_total",
			Help: "Total number of orders created successfully",
		}),
		ordersFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_orders_failed_total",
			Help: "Total number of checkout attempts that failed",
		}),
		insufficientStock: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_insufficient_stock_total",
			Help: "Total number of checkouts rejected due to insufficient stock",
		}),
		orderNumberRetries: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_order_number_retries_total",
			Help: "Total number of order number collisions retried",
		}),
		checkoutDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "storefront_checkout_duration_seconds",
			Help:    "Duration of order checkout in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}),
		statusTransitions: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_order_status_transitions_total",
			Help: "Total number of order status transitions by target status",
		}, []string{"to"}),
		activeCheckouts: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "storefront_active_checkouts",
			Help: "Number of checkouts currently in flight",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordCartOperation увеличивает счётчик операции с корзиной.
func (m *CommerceMetrics) RecordCartOperation(operation, outcome string) {
	m.cartOps.WithLabelValues(operation, outcome).Inc()
}

// RecordOrderCreated увеличивает счётчик успешно оформленных заказов.
func (m *CommerceMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

// RecordOrderFailed увеличивает счётчик неудачных оформлений.
func (m *CommerceMetrics) RecordOrderFailed() {
	m.ordersFailed.Inc()
}

// RecordInsufficientStock увеличивает счётчик отказов из-за нехватки остатка.
func (m *CommerceMetrics) RecordInsufficientStock() {
	m.insufficientStock.Inc()
}

// RecordOrderNumberRetry увеличивает счётчик коллизий номера заказа.
func (m *CommerceMetrics) RecordOrderNumberRetry() {
	m.orderNumberRetries.Inc()
}

// RecordCheckoutDuration записывает время оформления заказа.
func (m *CommerceMetrics) RecordCheckoutDuration(duration time.Duration) {
	m.checkoutDuration.Observe(duration.Seconds())
}

// RecordStatusTransition увеличивает счётчик переходов в указанный статус.
func (m *CommerceMetrics) RecordStatusTransition(to string) {
	m.statusTransitions.WithLabelValues(to).Inc()
}

// RecordCheckoutStarted увеличивает количество оформлений в полёте.
func (m *CommerceMetrics) RecordCheckoutStarted() {
	m.activeCheckouts.Inc()
}

// RecordCheckoutFinished уменьшает количество оформлений в полёте.
func (m *CommerceMetrics) RecordCheckoutFinished() {
	m.activeCheckouts.Dec()
}
