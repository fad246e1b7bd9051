// Package checkout implements the three-step order wizard as an explicit
// state machine, so the step guards are testable without any UI attached.
package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
)

// Step is the wizard's current position. Steps only move one at a time:
// forward through the typed Next* calls, backward through Back.
type Step int

const (
	StepCustomerInfo Step = iota + 1
	StepDeliveryPayment
	StepSummary
)

var (
	ErrWrongStep          = errors.New("checkout: action does not apply to the current step")
	ErrCustomerIncomplete = errors.New("checkout: name, email and phone are required")
	ErrBadDeliveryMethod  = errors.New("checkout: delivery method must be pickup or nova-poshta")
	ErrCityRequired       = errors.New("checkout: courier delivery requires a destination city")
	ErrBranchRequired     = errors.New("checkout: courier delivery requires a branch")
	ErrBadPaymentMethod   = errors.New("checkout: payment method must be cash or card")
	ErrEmptyCart          = errors.New("checkout: cart is empty")
	ErrSubmitInFlight     = errors.New("checkout: order submission already in progress")
)

// CartReader is the slice of the cart store the wizard needs.
type CartReader interface {
	Snapshot() []models.CartItem
	Clear()
}

// OrderPlacer submits the finished order to the store API.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error)
}

// Navigator moves the application to the confirmation page after a
// successful submit.
type Navigator interface {
	Navigate(path string)
}

// Wizard carries the accumulated checkout data across the three steps. One
// instance lives per checkout session and is discarded after a successful
// submit or when the customer navigates away.
type Wizard struct {
	mu         sync.Mutex
	step       Step
	customer   models.CustomerInfo
	delivery   models.DeliveryInfo
	payment    models.PaymentInfo
	submitting bool

	cart   CartReader
	orders OrderPlacer
	nav    Navigator
	now    func() time.Time
}

// NewWizard starts at the customer-info step, pre-seeded with the signed-in
// user's name and email when available.
func NewWizard(cart CartReader, orders OrderPlacer, nav Navigator, user *models.User) *Wizard {
	w := &Wizard{
		step:     StepCustomerInfo,
		delivery: models.DeliveryInfo{Method: models.DeliveryPickup},
		payment:  models.PaymentInfo{Method: models.PaymentCash},
		cart:     cart,
		orders:   orders,
		nav:      nav,
		now:      time.Now,
	}
	if user != nil {
		w.customer.Name = user.Name
		w.customer.Email = user.Email
	}
	return w
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Customer() models.CustomerInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.customer
}

func (w *Wizard) Delivery() models.DeliveryInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.delivery
}

func (w *Wizard) Payment() models.PaymentInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.payment
}

// Total is the sum of price*quantity over the cart snapshot. The same value
// goes into the submitted order payload.
func (w *Wizard) Total() float64 {
	return itemsTotal(w.cart.Snapshot())
}

func itemsTotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// NextCustomer validates and stores the step-1 data, advancing to step 2.
// Calling it on any other step is rejected, so a double-clicked "next"
// advances exactly once.
func (w *Wizard) NextCustomer(info models.CustomerInfo) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepCustomerInfo {
		return ErrWrongStep
	}
	if strings.TrimSpace(info.Name) == "" ||
		strings.TrimSpace(info.Email) == "" ||
		strings.TrimSpace(info.Phone) == "" {
		return ErrCustomerIncomplete
	}
	w.customer = info
	w.step = StepDeliveryPayment
	return nil
}

// NextDelivery validates and stores the step-2 data, advancing to the
// summary. Courier delivery requires a resolved city and branch; pickup
// requires nothing further and drops any stale city/branch fields so the
// submitted payload carries none.
func (w *Wizard) NextDelivery(delivery models.DeliveryInfo, payment models.PaymentInfo) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepDeliveryPayment {
		return ErrWrongStep
	}
	if payment.Method != models.PaymentCash && payment.Method != models.PaymentCard {
		return ErrBadPaymentMethod
	}
	switch delivery.Method {
	case models.DeliveryPickup:
		delivery = models.DeliveryInfo{Method: models.DeliveryPickup}
	case models.DeliveryNovaPoshta:
		if delivery.CityRef == "" {
			return ErrCityRequired
		}
		if delivery.BranchRef == "" {
			return ErrBranchRequired
		}
	default:
		return ErrBadDeliveryMethod
	}
	w.delivery = delivery
	w.payment = payment
	w.step = StepSummary
	return nil
}

// Back moves one step toward the start. Data is kept, so back followed by
// next lands on the same step with the same accumulated state.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > StepCustomerInfo {
		w.step--
	}
}

// Submit builds the aggregate order payload and posts it. Only valid on the
// summary step; a second Submit while one is in flight is rejected. On
// success the cart is cleared and the app navigates to the confirmation
// page; on failure the wizard stays on the summary so the customer may
// retry.
func (w *Wizard) Submit(ctx context.Context) (*models.Order, error) {
	w.mu.Lock()
	if w.step != StepSummary {
		w.mu.Unlock()
		return nil, ErrWrongStep
	}
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	items := w.cart.Snapshot()
	if len(items) == 0 {
		w.mu.Unlock()
		return nil, ErrEmptyCart
	}
	w.submitting = true
	req := models.CreateOrderRequest{
		Date:     w.now().UTC().Format(time.RFC3339),
		Customer: w.customer,
		Delivery: w.delivery,
		Payment:  w.payment,
		Items:    items,
		Total:    itemsTotal(items),
		Status:   models.OrderProcessing,
	}
	w.mu.Unlock()

	order, err := w.orders.CreateOrder(ctx, req)

	w.mu.Lock()
	w.submitting = false
	w.mu.Unlock()

	if err != nil {
		return nil, err
	}

	w.cart.Clear()
	if w.nav != nil {
		w.nav.Navigate("/order-confirmation/" + order.ID)
	}
	return order, nil
}
