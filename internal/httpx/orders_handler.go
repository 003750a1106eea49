package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/shopflow/checkout/internal/catalog"
	"github.com/shopflow/checkout/internal/orders"
	"github.com/shopflow/checkout/internal/redisx"
)

// OrderService is the slice of the order workflow the HTTP layer consumes.
type OrderService interface {
	CreateOrder(ctx context.Context, req orders.CreateOrderRequest) (string, error)
	GetByOrderNumber(ctx context.Context, number string) (*orders.Order, error)
}

// CatalogLister serves the storefront's product listing.
type CatalogLister interface {
	List(ctx context.Context) ([]catalog.Product, error)
}

type OrdersHandler struct {
	Service OrderService
	Catalog CatalogLister
	Redis   *redis.Client // optional read cache; nil disables caching
}

type CreateOrderResp struct {
	OrderNumber string `json:"orderNumber"`
}

type errorResp struct {
	Message string `json:"message"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.createOrder)
	r.Get("/orders/{orderNumber}", h.getOrder)
	r.Get("/products", h.listProducts)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req orders.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Message: "Invalid request body"})
		return
	}
	if req.Product.ProductID == "" || req.Variant == "" {
		writeJSON(w, http.StatusBadRequest, errorResp{Message: "Missing product or variant"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	number, err := h.Service.CreateOrder(ctx, req)
	if err != nil {
		code, msg := mapCreateError(err)
		if code == http.StatusInternalServerError {
			log.Printf("create order: %v", err)
		}
		writeJSON(w, code, errorResp{Message: msg})
		return
	}
	writeJSON(w, http.StatusCreated, CreateOrderResp{OrderNumber: number})
}

func mapCreateError(err error) (int, string) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return http.StatusBadRequest, "Product not found"
	case errors.Is(err, catalog.ErrVariantNotFound):
		return http.StatusBadRequest, "Variant not found"
	case errors.Is(err, catalog.ErrInsufficientInventory):
		return http.StatusBadRequest, "Insufficient inventory"
	case errors.Is(err, orders.ErrInvalidQuantity):
		return http.StatusBadRequest, "Invalid quantity"
	default:
		return http.StatusInternalServerError, "Server error creating order"
	}
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "orderNumber")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyOrder, number)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(s))
			return
		}
	}

	o, err := h.Service.GetByOrderNumber(ctx, number)
	if errors.Is(err, orders.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResp{Message: "Order not found"})
		return
	}
	if err != nil {
		log.Printf("get order %s: %v", number, err)
		writeJSON(w, http.StatusInternalServerError, errorResp{Message: "Server error fetching order"})
		return
	}

	// Orders are immutable, so the redacted view can be cached as-is.
	o.PaymentInfo.CardNumber = maskCardNumber(o.PaymentInfo.CardNumber)
	b, _ := json.Marshal(o)
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, key, b, redisx.TTLOrderCache).Err()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

// maskCardNumber keeps only the last four digits for display.
func maskCardNumber(card string) string {
	digits := strings.ReplaceAll(card, " ", "")
	if len(digits) <= 4 {
		return card
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

func (h *OrdersHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Catalog.List(ctx)
	if err != nil {
		log.Printf("list products: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp{Message: "Server error fetching products"})
		return
	}
	writeJSON(w, http.StatusOK, ps)
}
