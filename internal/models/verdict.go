// internal/models/verdict.go
package models

import "time"

type VerdictKind string

const (
	VerdictInstant     VerdictKind = "instant"
	VerdictConditional VerdictKind = "conditional"
	VerdictRejected    VerdictKind = "rejected"
	VerdictEmiTooHigh  VerdictKind = "emi_too_high"
)

// Rejection reasons.
const (
	ReasonCreditScore        = "credit_score"
	ReasonAmountExceedsLimit = "amount_exceeds_limit"
)

const (
	DocumentSalarySlip     = "salary_slip"
	RecommendLowerOrLonger = "lower amount or longer tenure"
)

// Verdict is the single underwriting outcome of a session. Only the fields
// belonging to Kind are populated.
type Verdict struct {
	Kind             VerdictKind `json:"kind"`
	Amount           int64       `json:"amount,omitempty"`
	TenureMonths     int         `json:"tenureMonths,omitempty"`
	EMI              int64       `json:"emi,omitempty"`
	RequiredDocument string      `json:"requiredDocument,omitempty"`
	Reason           string      `json:"reason,omitempty"`
	Recommendation   string      `json:"recommendation,omitempty"`
}

func Instant(amount int64, tenureMonths int, emi int64) Verdict {
	return Verdict{Kind: VerdictInstant, Amount: amount, TenureMonths: tenureMonths, EMI: emi}
}

func Conditional(amount int64, tenureMonths int, document string) Verdict {
	return Verdict{Kind: VerdictConditional, Amount: amount, TenureMonths: tenureMonths, RequiredDocument: document}
}

func Rejected(reason string) Verdict {
	return Verdict{Kind: VerdictRejected, Reason: reason}
}

func EmiTooHigh(emi int64, recommendation string) Verdict {
	return Verdict{Kind: VerdictEmiTooHigh, EMI: emi, Recommendation: recommendation}
}

// Sanction is issued when a loan is finally approved, either instantly or
// after the salary slip arrives for a conditional verdict.
type Sanction struct {
	Amount       int64     `json:"amount"`
	TenureMonths int       `json:"tenureMonths"`
	EMI          int64     `json:"emi"`
	IssuedAt     time.Time `json:"issuedAt"`
}
