package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/shopflow/checkout/internal/catalog"
)

// CatalogStore is the slice of the catalog the workflow needs: product lookup
// and the atomic inventory reservation. Reserve must be conditional on
// sufficient stock so that inventory can never go negative under concurrent
// calls.
type CatalogStore interface {
	GetByID(ctx context.Context, id string) (*catalog.Product, error)
	Reserve(ctx context.Context, productID, variantName string, qty int) error
}

// Store persists orders. Insert must enforce order-number uniqueness and
// report a collision as ErrDuplicateNumber.
type Store interface {
	Insert(ctx context.Context, o *Order) error
	FindByNumber(ctx context.Context, number string) (*Order, error)
}

// Notifier dispatches the status-specific customer notification. It is
// best-effort by contract: the workflow logs failures and never lets them
// fail an already-persisted order.
type Notifier interface {
	OrderPlaced(ctx context.Context, o *Order) error
}

// maxNumberAttempts bounds regeneration when an order number collides with an
// existing one.
const maxNumberAttempts = 3

type Service struct {
	Catalog  CatalogStore
	Orders   Store
	Notifier Notifier
}

// CreateOrder runs the purchase workflow: classify the simulated transaction,
// reserve inventory for approved outcomes, persist the order, and notify the
// customer. Declined and error outcomes still persist an order (as an audit
// of the failed attempt) but never touch inventory. Any reservation error
// aborts before anything is written.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (string, error) {
	if req.Quantity < 1 {
		return "", ErrInvalidQuantity
	}

	if _, err := s.Catalog.GetByID(ctx, req.Product.ProductID); err != nil {
		return "", err
	}

	status := Classify(req.TransactionType)

	if status == StatusApproved {
		if err := s.Catalog.Reserve(ctx, req.Product.ProductID, req.Variant, req.Quantity); err != nil {
			return "", err
		}
	}

	o, err := s.persistWithFreshNumber(ctx, req, status)
	if err != nil {
		return "", err
	}

	// Point of no return passed: the order is durable, notification failures
	// must not surface to the caller.
	if err := s.Notifier.OrderPlaced(ctx, o); err != nil {
		log.Printf("order %s: notify failed: %v", o.OrderNumber, err)
	}

	return o.OrderNumber, nil
}

// persistWithFreshNumber inserts the order, regenerating the public number a
// bounded number of times if it collides with an existing order.
func (s *Service) persistWithFreshNumber(ctx context.Context, req CreateOrderRequest, status Status) (*Order, error) {
	var lastErr error
	for i := 0; i < maxNumberAttempts; i++ {
		o := buildOrder(req, status, NewOrderNumber())
		err := s.Orders.Insert(ctx, o)
		if err == nil {
			return o, nil
		}
		if !errors.Is(err, ErrDuplicateNumber) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("allocate order number: %w", lastErr)
}

// buildOrder assembles the immutable order record. Pure: no validation, no
// I/O beyond the timestamp.
func buildOrder(req CreateOrderRequest, status Status, number string) *Order {
	return &Order{
		ID:           uuid.NewString(),
		OrderNumber:  number,
		Product:      req.Product,
		Variant:      req.Variant,
		Quantity:     req.Quantity,
		CustomerInfo: req.CustomerInfo,
		PaymentInfo:  req.PaymentInfo,
		Status:       status,
		CreatedAt:    time.Now().UTC(),
	}
}

// GetByOrderNumber is a read-only exact-match lookup.
func (s *Service) GetByOrderNumber(ctx context.Context, number string) (*Order, error) {
	return s.Orders.FindByNumber(ctx, number)
}
