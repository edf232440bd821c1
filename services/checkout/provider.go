package checkout

import (
	"context"
	"errors"
)

// Line kinds besides products.
const (
	KindProduct  = "product"
	KindShipping = "shipping"
	KindTax      = "tax"
)

var ErrSessionNotFound = errors.New("payment session not found")

// LineItem is one charged line of a payment session.
type LineItem struct {
	Kind       string
	ProductID  string
	Name       string
	UnitAmount int64
	Quantity   int64
	ImageURL   string
}

type SessionRequest struct {
	UserID     string
	Email      string
	Currency   string
	SuccessURL string
	CancelURL  string
	Lines      []LineItem
}

// Session is the provider's view of a payment attempt.
type Session struct {
	ID          string
	URL         string
	Paid        bool
	AmountTotal int64
	Currency    string
	UserID      string
	Email       string
	Lines       []LineItem
}

// PaymentProvider opens hosted payment sessions and reports on them.
type PaymentProvider interface {
	Name() string
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
	// RetrieveSession returns ErrSessionNotFound for unknown ids.
	RetrieveSession(ctx context.Context, id string) (*Session, error)
}
