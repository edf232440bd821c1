package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeProvider uses Stripe Checkout. stripe.Key must be set at startup.
type StripeProvider struct{}

func (StripeProvider) Name() string { return "stripe" }

func (StripeProvider) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	successURL := req.SuccessURL
	if !strings.Contains(successURL, "{CHECKOUT_SESSION_ID}") {
		sep := "?"
		if strings.Contains(successURL, "?") {
			sep = "&"
		}
		successURL += sep + "session_id={CHECKOUT_SESSION_ID}"
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(successURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.UserID),
	}
	params.Context = ctx
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.AddMetadata("userId", req.UserID)

	for _, l := range req.Lines {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name:     stripe.String(l.Name),
			Metadata: map[string]string{"kind": l.Kind, "productId": l.ProductID},
		}
		if strings.HasPrefix(l.ImageURL, "http") {
			product.Images = []*string{stripe.String(l.ImageURL)}
		}
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(req.Currency),
				UnitAmount:  stripe.Int64(l.UnitAmount),
				ProductData: product,
			},
			Quantity: stripe.Int64(l.Quantity),
		})
	}

	s, err := session.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripe(s, nil), nil
}

func (StripeProvider) RetrieveSession(ctx context.Context, id string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := session.Get(id, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && (stripeErr.HTTPStatusCode == http.StatusNotFound || stripeErr.Code == stripe.ErrorCodeResourceMissing) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	listParams := &stripe.CheckoutSessionListLineItemsParams{Session: stripe.String(id)}
	listParams.Context = ctx
	listParams.Limit = stripe.Int64(100)
	listParams.AddExpand("data.price.product")
	items, err := collectLineItems(session.ListLineItems(listParams))
	if err != nil {
		return nil, fmt.Errorf("failed to list line items of session %s: %w", id, err)
	}
	return fromStripe(s, items), nil
}

// lineItemIter is the part of the Stripe list iterator used here.
type lineItemIter interface {
	Next() bool
	LineItem() *stripe.LineItem
	Err() error
}

// collectLineItems drains every page of a line item listing.
func collectLineItems(it lineItemIter) ([]*stripe.LineItem, error) {
	var items []*stripe.LineItem
	for it.Next() {
		items = append(items, it.LineItem())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func fromStripe(s *stripe.CheckoutSession, items []*stripe.LineItem) *Session {
	out := &Session{
		ID:          s.ID,
		URL:         s.URL,
		Paid:        s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		AmountTotal: s.AmountTotal,
		Currency:    string(s.Currency),
		UserID:      s.ClientReferenceID,
	}
	if out.UserID == "" && s.Metadata != nil {
		out.UserID = s.Metadata["userId"]
	}
	if s.CustomerDetails != nil {
		out.Email = s.CustomerDetails.Email
	}
	if out.Email == "" {
		out.Email = s.CustomerEmail
	}

	for _, li := range items {
		line := LineItem{Kind: KindProduct, Name: li.Description, Quantity: li.Quantity}
		if li.Quantity > 0 {
			line.UnitAmount = li.AmountSubtotal / li.Quantity
		}
		if li.Price != nil {
			if li.Price.UnitAmount > 0 {
				line.UnitAmount = li.Price.UnitAmount
			}
			if p := li.Price.Product; p != nil {
				if p.Name != "" {
					line.Name = p.Name
				}
				if k := p.Metadata["kind"]; k != "" {
					line.Kind = k
				}
				line.ProductID = p.Metadata["productId"]
				if len(p.Images) > 0 {
					line.ImageURL = p.Images[0]
				}
			}
		}
		out.Lines = append(out.Lines, line)
	}
	return out
}
