package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// maxNumberAttempts ограничивает число перегенераций номера заказа при
// коллизии уникальности.
const maxNumberAttempts = 5

// Line — одна запрошенная позиция оформления: товар и количество.
type Line struct {
	ProductID string
	Quantity  int32
}

// Assembler собирает заказ из набора запрошенных позиций в одной транзакции:
// проверка покупателя, заморозка цен, списание остатков и запись итога либо
// выполняются целиком, либо не оставляют следов.
type Assembler struct {
	uow      domain.UnitOfWork
	notifier domain.NotificationSink
	number   NumberGenerator
	logger   *log.Entry
	metrics  *metrics.CommerceMetrics
	now      func() time.Time
}

// NewAssembler создаёт рабочий экземпляр сборщика заказов.
func NewAssembler(uow domain.UnitOfWork, notifier domain.NotificationSink, logger *log.Entry) *Assembler {
	if logger == nil {
		logger = log.New().WithField("component", "order-assembler")
	}
	if notifier == nil {
		notifier = noopSink{}
	}
	return &Assembler{
		uow:      uow,
		notifier: notifier,
		number:   DefaultNumberGenerator,
		logger:   logger,
		metrics:  metrics.NewCommerceMetrics(),
		now:      time.Now,
	}
}

// NewAssemblerWithoutMetrics создаёт сборщик без метрик (для тестов).
func NewAssemblerWithoutMetrics(uow domain.UnitOfWork, notifier domain.NotificationSink, logger *log.Entry) *Assembler {
	a := NewAssembler(uow, notifier, logger)
	a.metrics = nil
	return a
}

// WithNumberGenerator подменяет генератор номера заказа (для тестов).
func (a *Assembler) WithNumberGenerator(gen NumberGenerator) *Assembler {
	a.number = gen
	return a
}

// CreateOrder оформляет заказ. Остатки проверяются по живым данным каталога
// под блокировкой строки, цены замораживаются на момент покупки. Любая ошибка
// после создания заголовка откатывает и заголовок, и уже применённые списания.
func (a *Assembler) CreateOrder(ctx context.Context, userID, shippingAddress string, lines []Line) (domain.Order, error) {
	start := a.now()
	if a.metrics != nil {
		a.metrics.RecordCheckoutStarted()
		defer func() {
			a.metrics.RecordCheckoutFinished()
			a.metrics.RecordCheckoutDuration(time.Since(start))
		}()
	}

	if err := validateCreateRequest(userID, shippingAddress, lines); err != nil {
		a.recordFailure(err)
		return domain.Order{}, err
	}

	var created domain.Order
	var err error
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		created, err = a.tryCreate(ctx, userID, shippingAddress, lines)
		if !errors.Is(err, domain.ErrOrderNumberTaken) {
			break
		}
		if a.metrics != nil {
			a.metrics.RecordOrderNumberRetry()
		}
		a.logger.WithField("attempt", attempt).Warn("order number collision, regenerating")
	}
	if err != nil {
		a.recordFailure(err)
		return domain.Order{}, err
	}

	a.logger.WithFields(log.Fields{
		"order_id":     created.ID,
		"order_number": created.Number,
		"user_id":      created.UserID,
		"amount_minor": created.AmountMinor,
	}).Info("order created")
	if a.metrics != nil {
		a.metrics.RecordOrderCreated()
	}

	// Уведомление best-effort: заказ уже зафиксирован, сбой публикации
	// не меняет результат операции.
	if err := a.notifier.OrderCreated(ctx, created); err != nil {
		a.logger.WithError(err).WithField("order_id", created.ID).Warn("order created notification failed")
	}

	return created, nil
}

func (a *Assembler) tryCreate(ctx context.Context, userID, shippingAddress string, lines []Line) (domain.Order, error) {
	order := domain.Order{
		ID:              uuid.NewString(),
		Number:          a.number(),
		UserID:          userID,
		Status:          domain.OrderStatusPending,
		ShippingAddress: shippingAddress,
		CreatedAt:       a.now().UTC(),
	}

	err := a.uow.Within(ctx, func(tx domain.Tx) error {
		if _, err := tx.Users().Get(ctx, userID); err != nil {
			return err
		}

		// Заголовок создаётся первым с нулевым итогом: позиции ссылаются
		// на его идентификатор.
		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}

		var total int64
		for _, line := range lines {
			product, err := tx.Products().GetForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if !product.Active {
				return domain.ErrProductNotFound
			}

			if err := tx.Products().DecrementStock(ctx, product.ID, line.Quantity); err != nil {
				return err
			}

			item := domain.OrderItem{
				ID:         uuid.NewString(),
				OrderID:    order.ID,
				ProductID:  product.ID,
				Quantity:   line.Quantity,
				PriceMinor: product.PriceMinor,
			}
			if err := tx.Orders().AddItem(ctx, item); err != nil {
				return err
			}

			total += product.PriceMinor * int64(line.Quantity)
			order.Items = append(order.Items, item)
		}

		if err := tx.Orders().SetAmount(ctx, order.ID, total); err != nil {
			return err
		}
		order.AmountMinor = total

		return tx.StatusChanges().Append(ctx, domain.StatusChange{
			ID:       uuid.NewString(),
			OrderID:  order.ID,
			To:       domain.OrderStatusPending,
			Occurred: order.CreatedAt,
		})
	})
	if err != nil {
		order.Items = nil
		return domain.Order{}, err
	}

	return order, nil
}

func validateCreateRequest(userID, shippingAddress string, lines []Line) error {
	if userID == "" {
		return domain.ErrUserIDRequired
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return domain.ErrShippingAddressRequired
	}
	if len(lines) == 0 {
		return domain.ErrItemsRequired
	}
	for _, line := range lines {
		if line.ProductID == "" {
			return domain.ErrProductNotFound
		}
		if line.Quantity <= 0 {
			return domain.ErrItemQtyInvalid
		}
	}
	return nil
}

func (a *Assembler) recordFailure(err error) {
	if a.metrics == nil {
		return
	}
	a.metrics.RecordOrderFailed()
	if errors.Is(err, domain.ErrInsufficientStock) {
		a.metrics.RecordInsufficientStock()
	}
}

type noopSink struct{}

func (noopSink) OrderCreated(context.Context, domain.Order) error { return nil }

func (noopSink) OrderStatusChanged(context.Context, domain.Order, domain.OrderStatus) error {
	return nil
}
