package services

import (
	"math"

	"khadamati-server/models"
)

// PriceBreakdown is the authoritative split of a booking amount.
// Every write path that touches money goes through ComputePricing so the
// stored totals always agree with each other.
type PriceBreakdown struct {
	TotalAmount      float64 `json:"total_amount"`
	CommissionAmount float64 `json:"commission_amount"`
	ProviderAmount   float64 `json:"provider_amount"`
	CommissionRate   float64 `json:"commission_rate"`
}

// ComputePricing splits a total into marketplace commission and provider
// earnings at the given rate. Amounts are rounded to 2 decimal places,
// with the provider amount taking the remainder so the parts always sum
// to the total.
func ComputePricing(totalAmount, commissionRate float64) PriceBreakdown {
	if commissionRate <= 0 {
		commissionRate = models.DefaultCommissionRate
	}

	commission := roundMoney(totalAmount * commissionRate)
	provider := roundMoney(totalAmount - commission)

	return PriceBreakdown{
		TotalAmount:      roundMoney(totalAmount),
		CommissionAmount: commission,
		ProviderAmount:   provider,
		CommissionRate:   commissionRate,
	}
}

// PricingForService computes the breakdown for a service at its base price,
// using the provider's negotiated commission rate when one is set.
func PricingForService(service *models.Service, profile *models.ProviderProfile) PriceBreakdown {
	rate := models.DefaultCommissionRate
	if profile != nil && profile.CommissionRate > 0 {
		rate = profile.CommissionRate
	}
	return ComputePricing(service.BasePrice, rate)
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
