// internal/models/loan.go
package models

// Slot names a LoanRequest field collected during the requirements phase.
type Slot string

const (
	SlotNone   Slot = ""
	SlotAmount Slot = "amount"
	SlotTenure Slot = "tenure"
	SlotSalary Slot = "salary"
)

// LoanRequest accumulates the applicant's answers. Zero means unset.
type LoanRequest struct {
	Purpose               string `json:"purpose,omitempty"`
	Amount                int64  `json:"amount,omitempty"`
	TenureMonths          int    `json:"tenureMonths,omitempty"`
	DeclaredMonthlySalary int64  `json:"declaredMonthlySalary,omitempty"`
}

// NextSlot returns the first unset requirement in amount, tenure, salary order.
func (r LoanRequest) NextSlot() Slot {
	switch {
	case r.Amount <= 0:
		return SlotAmount
	case r.TenureMonths <= 0:
		return SlotTenure
	case r.DeclaredMonthlySalary <= 0:
		return SlotSalary
	default:
		return SlotNone
	}
}

// Complete reports whether every requirement has been captured.
func (r LoanRequest) Complete() bool {
	return r.Purpose != "" && r.NextSlot() == SlotNone
}
