package checkout

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

// pagedItems yields line items the way the Stripe iterator does, one page at a time.
type pagedItems struct {
	pages [][]*stripe.LineItem
	cur   *stripe.LineItem
	err   error
}

func (p *pagedItems) Next() bool {
	for len(p.pages) > 0 && len(p.pages[0]) == 0 {
		p.pages = p.pages[1:]
	}
	if len(p.pages) == 0 {
		return false
	}
	p.cur, p.pages[0] = p.pages[0][0], p.pages[0][1:]
	return true
}

func (p *pagedItems) LineItem() *stripe.LineItem { return p.cur }
func (p *pagedItems) Err() error                 { return p.err }

func productLine(i int) *stripe.LineItem {
	return &stripe.LineItem{
		Description:    fmt.Sprintf("Bowl %d", i),
		Quantity:       1,
		AmountSubtotal: 1000,
		Price: &stripe.Price{
			UnitAmount: 1000,
			Product:    &stripe.Product{Name: fmt.Sprintf("Bowl %d", i), Metadata: map[string]string{"kind": KindProduct, "productId": fmt.Sprintf("p%d", i)}},
		},
	}
}

func TestCollectLineItemsReadsEveryPage(t *testing.T) {
	var first, second []*stripe.LineItem
	for i := 0; i < 10; i++ {
		first = append(first, productLine(i))
	}
	second = append(second, productLine(10), productLine(11))
	second = append(second, &stripe.LineItem{
		Quantity: 1,
		Price:    &stripe.Price{UnitAmount: 2160, Product: &stripe.Product{Name: "Tax", Metadata: map[string]string{"kind": KindTax}}},
	})

	items, err := collectLineItems(&pagedItems{pages: [][]*stripe.LineItem{first, second}})
	require.NoError(t, err)
	require.Len(t, items, 13)

	s := fromStripe(&stripe.CheckoutSession{
		ID:            "cs_big",
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		AmountTotal:   14160,
		Currency:      "inr",
	}, items)
	require.Len(t, s.Lines, 13)

	var products int64
	for _, l := range s.Lines {
		if l.Kind == KindProduct {
			products += l.UnitAmount * l.Quantity
		}
	}
	assert.Equal(t, int64(12000), products)
	assert.Equal(t, "p11", s.Lines[11].ProductID)
	assert.Equal(t, KindTax, s.Lines[12].Kind)
}

func TestCollectLineItemsPropagatesError(t *testing.T) {
	boom := errors.New("rate limited")
	_, err := collectLineItems(&pagedItems{pages: [][]*stripe.LineItem{{productLine(0)}}, err: boom})
	assert.ErrorIs(t, err, boom)
}
