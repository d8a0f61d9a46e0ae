package underwriting

import (
	"loan-saarthi/internal/models"
)

// Policy holds the thresholds the decision list is evaluated against.
type Policy struct {
	AnnualRatePercent float64 `json:"annualRatePercent"`
	MinCreditScore    int     `json:"minCreditScore"`
	// MaxLimitMultiple caps the requested amount at a multiple of the
	// pre-approved limit; anything above is rejected outright.
	MaxLimitMultiple int64 `json:"maxLimitMultiple"`
	// MaxEMIShare is the fraction of declared salary an EMI may consume
	// for a conditional approval.
	MaxEMIShare float64 `json:"maxEmiShare"`
}

// DefaultPolicy is the personal-loan policy: 12% p.a., score 700, 2x limit,
// EMI at most half the monthly salary.
func DefaultPolicy() Policy {
	return Policy{
		AnnualRatePercent: 12,
		MinCreditScore:    700,
		MaxLimitMultiple:  2,
		MaxEMIShare:       0.5,
	}
}

// Decide evaluates the request against DefaultPolicy.
func Decide(profile models.ApplicantProfile, req models.LoanRequest) models.Verdict {
	return DefaultPolicy().Decide(profile, req)
}

// Decide runs the ordered decision list. First matching rule wins.
func (p Policy) Decide(profile models.ApplicantProfile, req models.LoanRequest) models.Verdict {
	emi := EMI(req.Amount, p.AnnualRatePercent, req.TenureMonths)

	if profile.CreditScore < p.MinCreditScore {
		return models.Rejected(models.ReasonCreditScore)
	}
	if req.Amount > profile.PreApprovedLimit*p.MaxLimitMultiple {
		return models.Rejected(models.ReasonAmountExceedsLimit)
	}

	if req.Amount <= profile.PreApprovedLimit {
		return models.Instant(req.Amount, req.TenureMonths, emi)
	}

	if float64(emi) <= float64(req.DeclaredMonthlySalary)*p.MaxEMIShare {
		return models.Conditional(req.Amount, req.TenureMonths, models.DocumentSalarySlip)
	}

	return models.EmiTooHigh(emi, models.RecommendLowerOrLonger)
}

// Sanction converts an approving verdict into the sanctioned terms. The EMI
// is recomputed for conditional verdicts since they do not carry it.
func (p Policy) Sanction(v models.Verdict) (models.Sanction, bool) {
	switch v.Kind {
	case models.VerdictInstant:
		return models.Sanction{Amount: v.Amount, TenureMonths: v.TenureMonths, EMI: v.EMI}, true
	case models.VerdictConditional:
		return models.Sanction{
			Amount:       v.Amount,
			TenureMonths: v.TenureMonths,
			EMI:          EMI(v.Amount, p.AnnualRatePercent, v.TenureMonths),
		}, true
	default:
		return models.Sanction{}, false
	}
}
