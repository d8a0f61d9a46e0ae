package underwriting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name          string
		principal     int64
		rate          float64
		months        int
		expectedQuote Quote
		expectError   bool
	}{
		{
			name:      "default calculator rate",
			principal: 500000,
			rate:      DefaultPreviewRate,
			months:    24,
			expectedQuote: Quote{
				Principal:         500000,
				AnnualRatePercent: 11.5,
				TenureMonths:      24,
				EMI:               23420,
				TotalPayment:      562084,
				TotalInterest:     62084,
			},
		},
		{
			name:      "home loan over twenty years",
			principal: 100000,
			rate:      8,
			months:    240,
			expectedQuote: Quote{
				Principal:         100000,
				AnnualRatePercent: 8,
				TenureMonths:      240,
				EMI:               836,
				TotalPayment:      200746,
				TotalInterest:     100746,
			},
		},
		{
			name:      "interest free",
			principal: 120000,
			rate:      0,
			months:    12,
			expectedQuote: Quote{
				Principal:    120000,
				TenureMonths: 12,
				EMI:          10000,
				TotalPayment: 120000,
			},
		},
		{name: "zero principal", principal: 0, rate: 12, months: 12, expectError: true},
		{name: "zero tenure", principal: 1000, rate: 12, months: 0, expectError: true},
		{name: "negative rate", principal: 1000, rate: -1, months: 12, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := Preview(tt.principal, tt.rate, tt.months)
			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidQuote)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedQuote, quote)
		})
	}
}

func TestPreview_RateDoesNotAffectPolicy(t *testing.T) {
	quote, err := Preview(500000, DefaultPreviewRate, 24)
	require.NoError(t, err)
	assert.NotEqual(t, EMI(500000, DefaultPolicy().AnnualRatePercent, 24), quote.EMI)
}
