package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
)

type fakeCart struct {
	mu      sync.Mutex
	items   []models.CartItem
	cleared bool
}

func (c *fakeCart) Snapshot() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *fakeCart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.cleared = true
}

type fakePlacer struct {
	mu      sync.Mutex
	err     error
	block   chan struct{}
	entered chan struct{}
	last    *models.CreateOrderRequest
	created *models.Order
}

func (p *fakePlacer) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	if p.entered != nil {
		p.entered <- struct{}{}
	}
	if p.block != nil {
		<-p.block
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = &req
	if p.err != nil {
		return nil, p.err
	}
	p.created = &models.Order{ID: "ord-1", Status: req.Status, Total: req.Total}
	return p.created, nil
}

type fakeNav struct {
	mu    sync.Mutex
	paths []string
}

func (n *fakeNav) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func twoItemCart() *fakeCart {
	return &fakeCart{items: []models.CartItem{
		{ProductID: "t1", Name: "Причіп Кремень ПЛ-2", Price: 32100, Quantity: 1, Currency: "UAH"},
		{ProductID: "c1", Name: "Колесо запасне", Price: 1900, Quantity: 2, Currency: "UAH"},
	}}
}

func validCustomer() models.CustomerInfo {
	return models.CustomerInfo{Name: "Олена", Email: "olena@example.com", Phone: "+380501234567"}
}

func TestWizardHappyPathPickup(t *testing.T) {
	cart := twoItemCart()
	placer := &fakePlacer{}
	nav := &fakeNav{}
	w := NewWizard(cart, placer, nav, nil)

	assert.Equal(t, StepCustomerInfo, w.Step())
	assert.InDelta(t, 35900, w.Total(), 0.001)

	require.NoError(t, w.NextCustomer(validCustomer()))
	assert.Equal(t, StepDeliveryPayment, w.Step())

	require.NoError(t, w.NextDelivery(
		models.DeliveryInfo{Method: models.DeliveryPickup},
		models.PaymentInfo{Method: models.PaymentCash},
	))
	assert.Equal(t, StepSummary, w.Step())

	order, err := w.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, order)

	require.NotNil(t, placer.last)
	assert.Equal(t, models.OrderProcessing, placer.last.Status)
	assert.InDelta(t, 35900, placer.last.Total, 0.001)
	assert.Len(t, placer.last.Items, 2)
	assert.Equal(t, validCustomer(), placer.last.Customer)

	// Pickup orders carry no courier fields.
	assert.Equal(t, models.DeliveryPickup, placer.last.Delivery.Method)
	assert.Empty(t, placer.last.Delivery.CityRef)
	assert.Empty(t, placer.last.Delivery.BranchRef)

	assert.True(t, cart.cleared)
	assert.Equal(t, []string{"/order-confirmation/ord-1"}, nav.paths)
}

func TestWizardPreSeedsSignedInUser(t *testing.T) {
	user := &models.User{Name: "Олена", Email: "olena@example.com"}
	w := NewWizard(twoItemCart(), &fakePlacer{}, &fakeNav{}, user)

	assert.Equal(t, "Олена", w.Customer().Name)
	assert.Equal(t, "olena@example.com", w.Customer().Email)
	assert.Empty(t, w.Customer().Phone)
}

func TestNextCustomerRejectsIncompleteInfo(t *testing.T) {
	w := NewWizard(twoItemCart(), &fakePlacer{}, &fakeNav{}, nil)

	tests := []models.CustomerInfo{
		{},
		{Name: "Олена"},
		{Name: "Олена", Email: "olena@example.com"},
		{Name: "  ", Email: "olena@example.com", Phone: "+380501234567"},
	}
	for _, info := range tests {
		err := w.NextCustomer(info)
		assert.ErrorIs(t, err, ErrCustomerIncomplete)
		assert.Equal(t, StepCustomerInfo, w.Step())
	}
}

func TestNextDeliveryCourierRequiresCityThenBranch(t *testing.T) {
	w := NewWizard(twoItemCart(), &fakePlacer{}, &fakeNav{}, nil)
	require.NoError(t, w.NextCustomer(validCustomer()))

	err := w.NextDelivery(
		models.DeliveryInfo{Method: models.DeliveryNovaPoshta},
		models.PaymentInfo{Method: models.PaymentCard},
	)
	assert.ErrorIs(t, err, ErrCityRequired)
	assert.Equal(t, StepDeliveryPayment, w.Step())

	err = w.NextDelivery(
		models.DeliveryInfo{Method: models.DeliveryNovaPoshta, CityRef: "city-1", CityName: "Київ"},
		models.PaymentInfo{Method: models.PaymentCard},
	)
	assert.ErrorIs(t, err, ErrBranchRequired)
	assert.Equal(t, StepDeliveryPayment, w.Step())

	err = w.NextDelivery(
		models.DeliveryInfo{
			Method:  models.DeliveryNovaPoshta,
			CityRef: "city-1", CityName: "Київ",
			BranchRef: "wh-12", BranchName: "Відділення №12",
		},
		models.PaymentInfo{Method: models.PaymentCard},
	)
	require.NoError(t, err)
	assert.Equal(t, StepSummary, w.Step())
}

func TestNextDeliveryRejectsUnknownMethods(t *testing.T) {
	w := NewWizard(twoItemCart(), &fakePlacer{}, &fakeNav{}, nil)
	require.NoError(t, w.NextCustomer(validCustomer()))

	err := w.NextDelivery(
		models.DeliveryInfo{Method: "drone"},
		models.PaymentInfo{Method: models.PaymentCash},
	)
	assert.ErrorIs(t, err, ErrBadDeliveryMethod)

	err = w.NextDelivery(
		models.DeliveryInfo{Method: models.DeliveryPickup},
		models.PaymentInfo{Method: "crypto"},
	)
	assert.ErrorIs(t, err, ErrBadPaymentMethod)
	assert.Equal(t, StepDeliveryPayment, w.Step())
}

func TestPickupDropsStaleCourierFields(t *testing.T) {
	w := NewWizard(twoItemCart(), &fakePlacer{}, &fakeNav{}, nil)
	require.NoError(t, w.NextCustomer(validCustomer()))

	// City and branch chosen, then the customer flips back to pickup.
	err := w.NextDelivery(
		models.DeliveryInfo{Method: models.DeliveryPickup, CityRef: "city-1", BranchRef: "wh-12"},
		models.PaymentInfo{Method: models.PaymentCash},
	)
	require.NoError(t, err)

	d := w.Delivery()
	assert.Equal(t, models.DeliveryPickup, d.Method)
	assert.Empty(t, d.CityRef)
	assert.Empty(t, d.BranchRef)
}

func TestBackKeepsData(t *testing.T) {
	w := NewWizard(twoItemCart(), &fakePlacer{}, &fakeNav{}, nil)
	require.NoError(t, w.NextCustomer(validCustomer()))
	require.NoError(t, w.NextDelivery(
		models.DeliveryInfo{Method: models.DeliveryPickup},
		models.PaymentInfo{Method: models.PaymentCard},
	))

	w.Back()
	assert.Equal(t, StepDeliveryPayment, w.Step())
	assert.Equal(t, validCustomer(), w.Customer())

	w.Back()
	assert.Equal(t, StepCustomerInfo, w.Step())

	// Back at the first step is a no-op.
	w.Back()
	assert.Equal(t, StepCustomerInfo, w.Step())
}

func TestStepGuardsRejectOutOfOrderCalls(t *testing.T) {
	w := NewWizard(twoItemCart(), &fakePlacer{}, &fakeNav{}, nil)

	// Step 2 action on step 1.
	err := w.NextDelivery(
		models.DeliveryInfo{Method: models.DeliveryPickup},
		models.PaymentInfo{Method: models.PaymentCash},
	)
	assert.ErrorIs(t, err, ErrWrongStep)

	// Submit on step 1.
	_, err = w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrWrongStep)

	// Double-clicked "next" advances exactly once.
	require.NoError(t, w.NextCustomer(validCustomer()))
	err = w.NextCustomer(validCustomer())
	assert.ErrorIs(t, err, ErrWrongStep)
	assert.Equal(t, StepDeliveryPayment, w.Step())
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	cart := &fakeCart{}
	w := NewWizard(cart, &fakePlacer{}, &fakeNav{}, nil)
	require.NoError(t, w.NextCustomer(validCustomer()))
	require.NoError(t, w.NextDelivery(
		models.DeliveryInfo{Method: models.DeliveryPickup},
		models.PaymentInfo{Method: models.PaymentCash},
	))

	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmitFailureStaysOnSummary(t *testing.T) {
	cart := twoItemCart()
	placer := &fakePlacer{err: errors.New("store api down")}
	nav := &fakeNav{}
	w := NewWizard(cart, placer, nav, nil)
	require.NoError(t, w.NextCustomer(validCustomer()))
	require.NoError(t, w.NextDelivery(
		models.DeliveryInfo{Method: models.DeliveryPickup},
		models.PaymentInfo{Method: models.PaymentCash},
	))

	_, err := w.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, StepSummary, w.Step())
	assert.False(t, cart.cleared)
	assert.Empty(t, nav.paths)

	// The customer can retry once the upstream recovers.
	placer.err = nil
	order, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ord-1", order.ID)
}

func TestConcurrentSubmitRejectedWhileInFlight(t *testing.T) {
	cart := twoItemCart()
	placer := &fakePlacer{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	w := NewWizard(cart, placer, &fakeNav{}, nil)
	require.NoError(t, w.NextCustomer(validCustomer()))
	require.NoError(t, w.NextDelivery(
		models.DeliveryInfo{Method: models.DeliveryPickup},
		models.PaymentInfo{Method: models.PaymentCash},
	))

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background())
		done <- err
	}()

	// Wait for the first submit to enter the in-flight window.
	<-placer.entered
	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(placer.block)
	require.NoError(t, <-done)
}

func TestSubmittedDateIsRFC3339UTC(t *testing.T) {
	cart := twoItemCart()
	placer := &fakePlacer{}
	w := NewWizard(cart, placer, &fakeNav{}, nil)
	fixed := time.Date(2026, 3, 14, 15, 9, 26, 0, time.FixedZone("EET", 2*3600))
	w.now = func() time.Time { return fixed }

	require.NoError(t, w.NextCustomer(validCustomer()))
	require.NoError(t, w.NextDelivery(
		models.DeliveryInfo{Method: models.DeliveryPickup},
		models.PaymentInfo{Method: models.PaymentCash},
	))
	_, err := w.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2026-03-14T13:09:26Z", placer.last.Date)
}
