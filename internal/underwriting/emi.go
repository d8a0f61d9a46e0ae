package underwriting

import "math"

// EMI returns the equated monthly installment for principal repaid over months
// at annualRatePercent, rounded half-up to a whole rupee. A zero rate spreads
// the principal evenly. Non-positive principal or tenure yields zero.
func EMI(principal int64, annualRatePercent float64, months int) int64 {
	return roundHalfUp(emiExact(principal, annualRatePercent, months))
}

func emiExact(principal int64, annualRatePercent float64, months int) float64 {
	if principal <= 0 || months <= 0 {
		return 0
	}
	p := float64(principal)
	r := annualRatePercent / 12 / 100
	if r <= 0 {
		return p / float64(months)
	}
	growth := math.Pow(1+r, float64(months))
	return p * r * growth / (growth - 1)
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
