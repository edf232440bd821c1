package checkout

import (
	"math"

	"resonance/config"
	"resonance/models"
)

// Pricing holds the store-wide charge rules. Amounts are minor units.
type Pricing struct {
	FreeShippingThreshold int64
	ShippingFee           int64
	TaxRate               float64
	Currency              string
}

// PricingFromConfig reads the charge rules from the loaded configuration.
func PricingFromConfig(cfg config.Config) Pricing {
	return Pricing{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		ShippingFee:           cfg.ShippingFee,
		TaxRate:               cfg.TaxRate,
		Currency:              cfg.Currency,
	}
}

// ComputeCharges derives shipping, tax and total from a subtotal. Shipping
// is free for an empty cart or above the threshold; tax is rounded to the
// nearest minor unit.
func ComputeCharges(subtotal int64, p Pricing) models.Charges {
	shipping := p.ShippingFee
	if subtotal <= 0 || subtotal > p.FreeShippingThreshold {
		shipping = 0
	}
	tax := int64(math.Round(float64(subtotal) * p.TaxRate))
	return models.Charges{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// Subtotal sums price times quantity over the lines.
func Subtotal(items []models.CartItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Price * int64(it.Quantity)
	}
	return total
}
