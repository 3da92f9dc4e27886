package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCharges(t *testing.T) {
	tests := []struct {
		name            string
		gross           float64
		rates           CommissionRates
		customerCharge  float64
		partnerPayout   float64
		platformRevenue float64
	}{
		{
			name:            "ten percent both sides",
			gross:           20,
			rates:           CommissionRates{CustomerPct: 10, PartnerPct: 10},
			customerCharge:  22.00,
			partnerPayout:   18.00,
			platformRevenue: 4.00,
		},
		{
			name:            "zero rates pass gross through",
			gross:           49.99,
			rates:           CommissionRates{},
			customerCharge:  49.99,
			partnerPayout:   49.99,
			platformRevenue: 0,
		},
		{
			name:            "fractional gross rounds at the final step",
			gross:           33.33,
			rates:           CommissionRates{CustomerPct: 7.5, PartnerPct: 12.5},
			customerCharge:  35.83, // 33.33 * 1.075 = 35.82975
			partnerPayout:   29.16, // 33.33 * 0.875 = 29.16375
			platformRevenue: 6.67,  // 35.82975 - 29.16375 = 6.666
		},
		{
			name:            "customer-side only",
			gross:           100,
			rates:           CommissionRates{CustomerPct: 15},
			customerCharge:  115.00,
			partnerPayout:   100.00,
			platformRevenue: 15.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			charges := CalculateCharges(tt.gross, tt.rates)
			assert.InDelta(t, tt.customerCharge, charges.CustomerCharge, 0.001)
			assert.InDelta(t, tt.partnerPayout, charges.PartnerPayout, 0.001)
			assert.InDelta(t, tt.platformRevenue, charges.PlatformRevenue, 0.001)
		})
	}
}

func TestCalculateCharges_Reconciles(t *testing.T) {
	// platformRevenue должен сходиться с gross*(customerPct+partnerPct)/100
	grosses := []float64{1, 19.99, 250.50, 1234.56}
	rates := CommissionRates{CustomerPct: 10, PartnerPct: 10}

	for _, gross := range grosses {
		charges := CalculateCharges(gross, rates)
		expected := gross * (rates.CustomerPct + rates.PartnerPct) / 100
		assert.InDelta(t, expected, charges.PlatformRevenue, 0.01, "gross=%v", gross)
	}
}
