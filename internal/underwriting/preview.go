package underwriting

import (
	"errors"
	"fmt"
)

// DefaultPreviewRate is the rate the EMI calculator opens with. It is
// independent from the rate used by Policy.
const DefaultPreviewRate = 11.5

var ErrInvalidQuote = errors.New("invalid quote parameters")

// Quote is the repayment breakdown shown by the EMI calculator.
type Quote struct {
	Principal         int64   `json:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TenureMonths      int     `json:"tenureMonths"`
	EMI               int64   `json:"emi"`
	TotalPayment      int64   `json:"totalPayment"`
	TotalInterest     int64   `json:"totalInterest"`
}

// Preview computes a repayment quote at an arbitrary rate.
func Preview(principal int64, annualRatePercent float64, months int) (Quote, error) {
	if principal <= 0 {
		return Quote{}, fmt.Errorf("%w: principal must be positive, got %d", ErrInvalidQuote, principal)
	}
	if months <= 0 {
		return Quote{}, fmt.Errorf("%w: tenure must be positive, got %d", ErrInvalidQuote, months)
	}
	if annualRatePercent < 0 {
		return Quote{}, fmt.Errorf("%w: rate must not be negative, got %.2f", ErrInvalidQuote, annualRatePercent)
	}

	exact := emiExact(principal, annualRatePercent, months)
	total := exact * float64(months)

	return Quote{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TenureMonths:      months,
		EMI:               roundHalfUp(exact),
		TotalPayment:      roundHalfUp(total),
		TotalInterest:     roundHalfUp(total - float64(principal)),
	}, nil
}
