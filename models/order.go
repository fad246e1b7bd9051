package models

import "time"

type OrderStatus string

const (
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// Delivery and payment methods as the order payload spells them.
const (
	DeliveryPickup     = "pickup"
	DeliveryNovaPoshta = "nova-poshta"

	PaymentCash = "cash"
	PaymentCard = "card"
)

// CartItem is one cart line: a trimmed snapshot of the product taken at the
// moment it was added, so the submitted order reflects the price the
// customer saw.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug,omitempty"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Quantity  int     `json:"quantity"`
}

// CustomerInfo is the first checkout step's record.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// DeliveryInfo is the second step's delivery half. City and branch fields
// are only present for courier delivery; a pickup order carries none.
type DeliveryInfo struct {
	Method     string `json:"method"`
	CityRef    string `json:"cityRef,omitempty"`
	CityName   string `json:"cityName,omitempty"`
	BranchRef  string `json:"branchRef,omitempty"`
	BranchName string `json:"branchName,omitempty"`
}

// PaymentInfo is the second step's payment half.
type PaymentInfo struct {
	Method string `json:"method"`
}

// CreateOrderRequest is the aggregate payload POSTed to the store API when
// the customer confirms the summary step.
type CreateOrderRequest struct {
	Date     string       `json:"date"`
	Customer CustomerInfo `json:"customer"`
	Delivery DeliveryInfo `json:"delivery"`
	Payment  PaymentInfo  `json:"payment"`
	Items    []CartItem   `json:"items"`
	Total    float64      `json:"total"`
	Status   OrderStatus  `json:"status"`
}

// Order is the store API's order resource.
type Order struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId,omitempty"`
	Date      string       `json:"date"`
	Customer  CustomerInfo `json:"customer"`
	Delivery  DeliveryInfo `json:"delivery"`
	Payment   PaymentInfo  `json:"payment"`
	Items     []CartItem   `json:"items"`
	Total     float64      `json:"total"`
	Status    OrderStatus  `json:"status"`
	CreatedAt *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt *time.Time   `json:"updatedAt,omitempty"`
}

// UpdateOrderStatusRequest is the admin back-office status change payload.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required,oneof=Processing Shipped Delivered Cancelled"`
}
