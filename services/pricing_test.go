package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"khadamati-server/models"
)

func TestComputePricingDefaultRate(t *testing.T) {
	p := ComputePricing(100, models.DefaultCommissionRate)

	assert.Equal(t, 100.0, p.TotalAmount)
	assert.Equal(t, 15.0, p.CommissionAmount)
	assert.Equal(t, 85.0, p.ProviderAmount)
}

func TestComputePricingPartsAlwaysSumToTotal(t *testing.T) {
	amounts := []float64{0.01, 9.99, 33.33, 45.50, 120, 1234.56}
	rates := []float64{0.1, 0.15, 0.2, 0.125}

	for _, amount := range amounts {
		for _, rate := range rates {
			p := ComputePricing(amount, rate)
			assert.InDelta(t, p.TotalAmount, p.CommissionAmount+p.ProviderAmount, 0.001,
				"amount=%v rate=%v", amount, rate)
		}
	}
}

func TestComputePricingZeroRateFallsBackToDefault(t *testing.T) {
	p := ComputePricing(200, 0)

	assert.Equal(t, models.DefaultCommissionRate, p.CommissionRate)
	assert.Equal(t, 30.0, p.CommissionAmount)
	assert.Equal(t, 170.0, p.ProviderAmount)
}

func TestPricingForServiceUsesProviderRate(t *testing.T) {
	service := &models.Service{BasePrice: 100}
	profile := &models.ProviderProfile{CommissionRate: 0.2}

	p := PricingForService(service, profile)
	assert.Equal(t, 20.0, p.CommissionAmount)
	assert.Equal(t, 80.0, p.ProviderAmount)
}

func TestPricingForServiceWithoutProfile(t *testing.T) {
	service := &models.Service{BasePrice: 60}

	p := PricingForService(service, nil)
	assert.Equal(t, 9.0, p.CommissionAmount)
	assert.Equal(t, 51.0, p.ProviderAmount)
}

func TestComputePricingRoundsToCents(t *testing.T) {
	p := ComputePricing(33.33, 0.15)

	assert.Equal(t, 5.0, p.CommissionAmount)
	assert.Equal(t, 28.33, p.ProviderAmount)
}
