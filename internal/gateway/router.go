package gateway

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/service/storefront"
)

const requestTimeout = 30 * time.Second

// NewRouter собирает HTTP-маршруты витрины. Аутентификация выполняется выше
// по стеку: сюда приходит только заголовок X-User-ID с идентификатором
// проверенного пользователя.
func NewRouter(service *storefront.Service, logger *log.Entry) http.Handler {
	if logger == nil {
		logger = log.New().WithField("component", "gateway")
	}

	h := &handler{service: service, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.getCart)
			r.Delete("/", h.clearCart)
			r.Post("/items", h.addToCart)
			r.Delete("/items/{itemID}", h.removeFromCart)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.createOrder)
			r.Get("/", h.listOrders)
			r.Get("/{orderID}", h.getOrder)
			r.Patch("/{orderID}/status", h.updateOrderStatus)
		})
	})

	return r
}
