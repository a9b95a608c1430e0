package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/order"
	"github.com/vladislavdragonenkov/storefront/internal/service/storefront"
)

// userIDHeader несёт идентификатор аутентифицированного пользователя,
// проставленный внешним слоем авторизации.
const userIDHeader = "X-User-ID"

type handler struct {
	service *storefront.Service
	logger  *log.Entry
}

type addToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

type createOrderRequest struct {
	ShippingAddress string `json:"shipping_address"`
	Items           []struct {
		ProductID string `json:"product_id"`
		Quantity  int32  `json:"quantity"`
	} `json:"items"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *handler) getCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	writeResult(w, h.logger, h.service.GetCart(r.Context(), userID))
}

func (h *handler) addToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req addToCartRequest
	if !decodeBody(w, h.logger, r, &req) {
		return
	}

	writeResult(w, h.logger, h.service.AddToCart(r.Context(), userID, req.ProductID, req.Quantity))
}

func (h *handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	itemID := chi.URLParam(r, "itemID")
	writeResult(w, h.logger, h.service.RemoveFromCart(r.Context(), userID, itemID))
}

func (h *handler) clearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	writeResult(w, h.logger, h.service.ClearCart(r.Context(), userID))
}

func (h *handler) createOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req createOrderRequest
	if !decodeBody(w, h.logger, r, &req) {
		return
	}

	lines := make([]order.Line, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, order.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	writeResult(w, h.logger, h.service.CreateOrder(r.Context(), userID, req.ShippingAddress, lines))
}

func (h *handler) getOrder(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.userID(w, r); !ok {
		return
	}
	orderID := chi.URLParam(r, "orderID")
	writeResult(w, h.logger, h.service.GetOrderById(r.Context(), orderID))
}

func (h *handler) listOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	filter := domain.OrderFilter{UserID: userID}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := domain.ParseOrderStatus(raw)
		if err != nil {
			writeResult(w, h.logger, domain.Fail[struct{}]("unknown order status"))
			return
		}
		filter.Status = &status
	}

	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 0)

	writeResult(w, h.logger, h.service.ListOrders(r.Context(), filter, page, pageSize))
}

func (h *handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	approverID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if !decodeBody(w, h.logger, r, &req) {
		return
	}

	orderID := chi.URLParam(r, "orderID")
	writeResult(w, h.logger, h.service.UpdateOrderStatus(r.Context(), orderID, req.Status, approverID))
}

func (h *handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(domain.Fail[struct{}]("missing user identity"))
		return "", false
	}
	return userID, true
}

func decodeBody(w http.ResponseWriter, logger *log.Entry, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.WithError(err).Debug("malformed request body")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(domain.Fail[struct{}]("invalid JSON body"))
		return false
	}
	return true
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// writeResult сериализует конверт ответа. HTTP-статус всегда 200: успех или
// отказ операции выражается полем success, как того требует контракт ядра.
func writeResult[T any](w http.ResponseWriter, logger *log.Entry, result domain.Result[T]) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.WithError(err).Error("encode response failed")
	}
}
