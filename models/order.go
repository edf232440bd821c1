package models

import (
	"fmt"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
	OrderRefunded  OrderStatus = "refunded"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderPaid, OrderCancelled},
	OrderPaid:    {OrderShipped, OrderRefunded, OrderCancelled},
	OrderShipped: {OrderDelivered, OrderRefunded},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderCancelled, OrderRefunded, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order may move from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CountsAsRevenue reports whether the amount of an order in this status was collected and kept.
func (s OrderStatus) CountsAsRevenue() bool {
	return s == OrderPaid || s == OrderShipped || s == OrderDelivered
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return st, nil
}

// OrderItem is a purchased line as confirmed by the payment provider.
type OrderItem struct {
	ProductID string `bson:"productId" json:"productId"`
	Name      string `bson:"name" json:"name"`
	Price     int64  `bson:"price" json:"price"`
	Quantity  int    `bson:"quantity" json:"quantity"`
	ImageURL  string `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// Order is created only after the payment provider confirms payment.
type Order struct {
	ID              string      `bson:"id" json:"id"`
	UserID          string      `bson:"userId" json:"userId"`
	Email           string      `bson:"email,omitempty" json:"email,omitempty"`
	Items           []OrderItem `bson:"items" json:"items"`
	Subtotal        int64       `bson:"subtotal" json:"subtotal"`
	Shipping        int64       `bson:"shipping" json:"shipping"`
	Tax             int64       `bson:"tax" json:"tax"`
	Amount          int64       `bson:"amount" json:"amount"`
	Currency        string      `bson:"currency" json:"currency"`
	Status          OrderStatus `bson:"status" json:"status"`
	PaymentProvider string      `bson:"paymentProvider" json:"paymentProvider"`
	PaymentRef      string      `bson:"paymentRef" json:"paymentRef"`
	CreatedAt       time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// CheckoutRequest is the cart submitted for payment.
type CheckoutRequest struct {
	Items       []CartItem `json:"items"`
	TotalAmount int64      `json:"totalAmount"`
}

// CheckoutResponse carries the provider redirect.
type CheckoutResponse struct {
	SessionID string  `json:"sessionId"`
	URL       string  `json:"url"`
	Charges   Charges `json:"charges"`
}

// VerifyCheckoutRequest is sent when the customer returns from the provider.
type VerifyCheckoutRequest struct {
	SessionID string `json:"sessionId"`
}

// VerifyCheckoutResponse identifies the recorded order.
type VerifyCheckoutResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
