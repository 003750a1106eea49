package orders

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopflow/checkout/internal/catalog"
)

// stubCatalog mirrors the repo contract: Reserve is a conditional decrement
// guarded by a mutex, so inventory can never go negative.
type stubCatalog struct {
	mu       sync.Mutex
	products map[string]*catalog.Product
}

func (s *stubCatalog) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	cp := *p
	cp.Variants = append([]catalog.Variant(nil), p.Variants...)
	return &cp, nil
}

func (s *stubCatalog) Reserve(ctx context.Context, productID, variantName string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return catalog.ErrProductNotFound
	}
	v := p.FindVariant(variantName)
	if v == nil {
		return catalog.ErrVariantNotFound
	}
	if v.Inventory < qty {
		return catalog.ErrInsufficientInventory
	}
	v.Inventory -= qty
	return nil
}

func (s *stubCatalog) inventory(t *testing.T, productID, variantName string) int {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.products[productID].FindVariant(variantName)
	require.NotNil(t, v)
	return v.Inventory
}

type stubStore struct {
	mu       sync.Mutex
	byNumber map[string]*Order
	// dupLeft forces ErrDuplicateNumber for the next N inserts, simulating
	// order-number collisions.
	dupLeft int
	failErr error
}

func (s *stubStore) Insert(ctx context.Context, o *Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	if s.dupLeft > 0 {
		s.dupLeft--
		return ErrDuplicateNumber
	}
	if _, exists := s.byNumber[o.OrderNumber]; exists {
		return ErrDuplicateNumber
	}
	cp := *o
	s.byNumber[o.OrderNumber] = &cp
	return nil
}

func (s *stubStore) FindByNumber(ctx context.Context, number string) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byNumber[number]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *stubStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byNumber)
}

type stubNotifier struct {
	mu   sync.Mutex
	sent []Order
	err  error
}

func (n *stubNotifier) OrderPlaced(ctx context.Context, o *Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, *o)
	return nil
}

func newFixture() (*Service, *stubCatalog, *stubStore, *stubNotifier) {
	cat := &stubCatalog{products: map[string]*catalog.Product{
		"p1": {
			ID:    "p1",
			Title: "Classic Sneakers",
			Price: "49.99",
			Variants: []catalog.Variant{
				{Name: "Red", Inventory: 20},
				{Name: "Blue", Inventory: 15},
			},
		},
	}}
	st := &stubStore{byNumber: map[string]*Order{}}
	nt := &stubNotifier{}
	return &Service{Catalog: cat, Orders: st, Notifier: nt}, cat, st, nt
}

func sneakersReq(variant string, qty int, txType string) CreateOrderRequest {
	return CreateOrderRequest{
		Product: ProductSnapshot{
			ProductID: "p1",
			Title:     "Classic Sneakers",
			Price:     "49.99",
			ImageURL:  "https://placehold.co/300x300?text=Sneakers",
		},
		Variant:  variant,
		Quantity: qty,
		CustomerInfo: CustomerInfo{
			FullName: "Jane Doe",
			Email:    "jane@example.com",
			Address:  "1 Main St",
			City:     "Springfield",
			State:    "IL",
			Zip:      "62701",
		},
		PaymentInfo: PaymentInfo{
			CardNumber: "4111111111111111",
			Expiry:     "12/28",
			CVV:        "123",
		},
		TransactionType: txType,
	}
}

func TestCreateOrderApprovedDrainsInventory(t *testing.T) {
	svc, cat, st, nt := newFixture()

	number, err := svc.CreateOrder(context.Background(), sneakersReq("Red", 20, "1"))
	require.NoError(t, err)
	require.NotEmpty(t, number)

	o, err := st.FindByNumber(context.Background(), number)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, o.Status)
	assert.Equal(t, 20, o.Quantity)
	assert.Equal(t, "Classic Sneakers", o.Product.Title)
	assert.Equal(t, 0, cat.inventory(t, "p1", "Red"))
	require.Len(t, nt.sent, 1)
	assert.Equal(t, number, nt.sent[0].OrderNumber)
}

func TestCreateOrderInsufficientInventory(t *testing.T) {
	svc, cat, st, _ := newFixture()

	_, err := svc.CreateOrder(context.Background(), sneakersReq("Red", 20, "1"))
	require.NoError(t, err)

	// Red is now at zero; one more unit must fail and create nothing.
	_, err = svc.CreateOrder(context.Background(), sneakersReq("Red", 1, "1"))
	require.ErrorIs(t, err, catalog.ErrInsufficientInventory)
	assert.Equal(t, 0, cat.inventory(t, "p1", "Red"))
	assert.Equal(t, 1, st.count())
}

func TestCreateOrderDeclinedLeavesInventory(t *testing.T) {
	svc, cat, st, nt := newFixture()

	number, err := svc.CreateOrder(context.Background(), sneakersReq("Blue", 5, "2"))
	require.NoError(t, err)

	o, err := st.FindByNumber(context.Background(), number)
	require.NoError(t, err)
	assert.Equal(t, StatusDeclined, o.Status)
	assert.Equal(t, 15, cat.inventory(t, "p1", "Blue"))
	require.Len(t, nt.sent, 1)
	assert.Equal(t, StatusDeclined, nt.sent[0].Status)
}

func TestCreateOrderVariantNotFound(t *testing.T) {
	svc, cat, st, _ := newFixture()

	_, err := svc.CreateOrder(context.Background(), sneakersReq("Purple", 1, "1"))
	require.ErrorIs(t, err, catalog.ErrVariantNotFound)
	assert.Equal(t, 0, st.count())
	assert.Equal(t, 20, cat.inventory(t, "p1", "Red"))
	assert.Equal(t, 15, cat.inventory(t, "p1", "Blue"))
}

func TestCreateOrderProductNotFound(t *testing.T) {
	svc, _, st, _ := newFixture()

	req := sneakersReq("Red", 1, "1")
	req.Product.ProductID = "missing"
	_, err := svc.CreateOrder(context.Background(), req)
	require.ErrorIs(t, err, catalog.ErrProductNotFound)
	assert.Equal(t, 0, st.count())
}

func TestCreateOrderGatewayError(t *testing.T) {
	svc, cat, st, nt := newFixture()

	number, err := svc.CreateOrder(context.Background(), sneakersReq("Red", 3, "3"))
	require.NoError(t, err)
	require.NotEmpty(t, number)

	o, err := st.FindByNumber(context.Background(), number)
	require.NoError(t, err)
	assert.Equal(t, StatusError, o.Status)
	assert.Equal(t, 20, cat.inventory(t, "p1", "Red"))
	require.Len(t, nt.sent, 1)
	assert.Equal(t, StatusError, nt.sent[0].Status)
}

func TestCreateOrderInvalidQuantity(t *testing.T) {
	svc, _, st, _ := newFixture()

	_, err := svc.CreateOrder(context.Background(), sneakersReq("Red", 0, "1"))
	require.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, 0, st.count())
}

func TestCreateOrderExactBoundary(t *testing.T) {
	svc, cat, _, _ := newFixture()

	// quantity one above remaining fails first and changes nothing
	_, err := svc.CreateOrder(context.Background(), sneakersReq("Blue", 16, "1"))
	require.ErrorIs(t, err, catalog.ErrInsufficientInventory)
	assert.Equal(t, 15, cat.inventory(t, "p1", "Blue"))

	// exactly the remaining quantity succeeds and leaves zero
	_, err = svc.CreateOrder(context.Background(), sneakersReq("Blue", 15, "1"))
	require.NoError(t, err)
	assert.Equal(t, 0, cat.inventory(t, "p1", "Blue"))
}

func TestCreateOrderNotifierFailureIsNotFatal(t *testing.T) {
	svc, _, st, nt := newFixture()
	nt.err = errors.New("smtp down")

	number, err := svc.CreateOrder(context.Background(), sneakersReq("Red", 1, "1"))
	require.NoError(t, err)

	_, err = st.FindByNumber(context.Background(), number)
	require.NoError(t, err)
}

func TestCreateOrderRetriesOnNumberCollision(t *testing.T) {
	svc, _, st, _ := newFixture()
	st.dupLeft = maxNumberAttempts - 1

	number, err := svc.CreateOrder(context.Background(), sneakersReq("Red", 1, "1"))
	require.NoError(t, err)
	require.NotEmpty(t, number)
	assert.Equal(t, 1, st.count())
}

func TestCreateOrderGivesUpAfterRepeatedCollisions(t *testing.T) {
	svc, cat, st, nt := newFixture()
	st.dupLeft = maxNumberAttempts

	_, err := svc.CreateOrder(context.Background(), sneakersReq("Red", 1, "1"))
	require.ErrorIs(t, err, ErrDuplicateNumber)
	assert.Equal(t, 0, st.count())
	assert.Empty(t, nt.sent)
	// the reservation already happened; the failure is a persistence error,
	// not a validation error, so inventory reflects the attempted purchase
	assert.Equal(t, 19, cat.inventory(t, "p1", "Red"))
}

func TestCreateOrderPersistenceErrorPropagates(t *testing.T) {
	svc, _, _, nt := newFixture()
	boom := errors.New("connection reset")
	svc.Orders.(*stubStore).failErr = boom

	_, err := svc.CreateOrder(context.Background(), sneakersReq("Red", 1, "1"))
	require.ErrorIs(t, err, boom)
	assert.Empty(t, nt.sent)
}

func TestConcurrentReservationsNeverOversell(t *testing.T) {
	svc, cat, st, _ := newFixture()

	const attempts = 60 // Red starts at 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateOrder(context.Background(), sneakersReq("Red", 1, "1"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, catalog.ErrInsufficientInventory)
		}
	}
	assert.Equal(t, 20, succeeded)
	assert.Equal(t, 0, cat.inventory(t, "p1", "Red"))
	assert.Equal(t, 20, st.count())
}

func TestCreateOrderNumbersAreUnique(t *testing.T) {
	svc, _, _, _ := newFixture()

	seen := map[string]struct{}{}
	for i := 0; i < 15; i++ {
		n, err := svc.CreateOrder(context.Background(), sneakersReq("Blue", 1, "1"))
		require.NoError(t, err)
		_, dup := seen[n]
		require.False(t, dup, "order number %s issued twice", n)
		seen[n] = struct{}{}
	}
}

func TestGetByOrderNumberNotFound(t *testing.T) {
	svc, _, _, _ := newFixture()

	_, err := svc.GetByOrderNumber(context.Background(), "ORD-DEADBEEF")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOrderSnapshotIsDecoupledFromCatalog(t *testing.T) {
	svc, cat, st, _ := newFixture()

	number, err := svc.CreateOrder(context.Background(), sneakersReq("Red", 1, "1"))
	require.NoError(t, err)

	// a later catalog edit must not show up in the stored order
	cat.mu.Lock()
	cat.products["p1"].Title = "Renamed Sneakers"
	cat.products["p1"].Price = "99.99"
	cat.mu.Unlock()

	o, err := st.FindByNumber(context.Background(), number)
	require.NoError(t, err)
	assert.Equal(t, "Classic Sneakers", o.Product.Title)
	assert.Equal(t, "49.99", o.Product.Price)
}
