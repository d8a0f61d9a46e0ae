// Package eligibility estimates how much an applicant could borrow from
// income, existing obligations and credit score.
package eligibility

import (
	"fmt"
	"math"
	"strings"

	apperrors "loan-saarthi/internal/common/errors"
)

type EmploymentType string

const (
	Salaried     EmploymentType = "Salaried"
	SelfEmployed EmploymentType = "Self-employed"
)

type LoanType string

const (
	LoanHome     LoanType = "Home"
	LoanPersonal LoanType = "Personal"
	LoanCar      LoanType = "Car"
)

// AnnualRate returns the indicative rate in percent for the loan type.
func (t LoanType) AnnualRate() (float64, bool) {
	switch t {
	case LoanHome:
		return 8, true
	case LoanPersonal:
		return 12, true
	case LoanCar:
		return 9, true
	default:
		return 0, false
	}
}

type Status string

const (
	StatusHigh     Status = "High"
	StatusModerate Status = "Moderate"
	StatusLow      Status = "Low"
)

const (
	maxEMIShare    = 0.5
	maxTenureYears = 30
	highScoreAbove = 750
	moderateFrom   = 650
	minAge         = 18
	maxAge         = 100
	minScore       = 300
	maxScore       = 900
)

type Application struct {
	FullName       string         `json:"fullName"`
	Age            int            `json:"age"`
	EmploymentType EmploymentType `json:"employmentType"`
	MonthlyIncome  int64          `json:"monthlyIncome"`
	ExistingEMI    int64          `json:"existingEmi"`
	CreditScore    int            `json:"creditScore"`
	LoanType       LoanType       `json:"loanType"`
	TenureYears    int            `json:"tenureYears"`
}

type Result struct {
	EligibleLoanAmount int64   `json:"eligibleLoanAmount"`
	EstimatedEMI       int64   `json:"estimatedEmi"`
	AnnualRatePercent  float64 `json:"annualRatePercent"`
	TenureMonths       int     `json:"tenureMonths"`
	Status             Status  `json:"status"`
	Advice             string  `json:"advice"`
	Tip                string  `json:"tip,omitempty"`
}

// Validate reports the first invalid field.
func (a Application) Validate() error {
	switch {
	case strings.TrimSpace(a.FullName) == "":
		return apperrors.NewEligibilityInputInvalidError("fullName is required")
	case a.Age < minAge || a.Age > maxAge:
		return apperrors.NewEligibilityInputInvalidError("age must be between 18 and 100")
	case a.EmploymentType != Salaried && a.EmploymentType != SelfEmployed:
		return apperrors.NewEligibilityInputInvalidError(fmt.Sprintf("unknown employmentType %q", a.EmploymentType))
	case a.MonthlyIncome <= 0:
		return apperrors.NewEligibilityInputInvalidError("monthlyIncome must be positive")
	case a.ExistingEMI < 0:
		return apperrors.NewEligibilityInputInvalidError("existingEmi must not be negative")
	case a.CreditScore < minScore || a.CreditScore > maxScore:
		return apperrors.NewEligibilityInputInvalidError("creditScore must be between 300 and 900")
	case a.TenureYears < 1 || a.TenureYears > maxTenureYears:
		return apperrors.NewEligibilityInputInvalidError("tenureYears must be between 1 and 30")
	}
	if _, ok := a.LoanType.AnnualRate(); !ok {
		return apperrors.NewEligibilityInputInvalidError(fmt.Sprintf("unknown loanType %q", a.LoanType))
	}
	return nil
}

// Check computes the affordable EMI as half the income less existing EMIs,
// and the principal that EMI services at the loan type's rate.
func Check(a Application) (Result, error) {
	if err := a.Validate(); err != nil {
		return Result{}, err
	}

	rate, _ := a.LoanType.AnnualRate()
	months := a.TenureYears * 12
	eligibleEMI := math.Max(0, float64(a.MonthlyIncome)*maxEMIShare-float64(a.ExistingEMI))
	status := statusFor(a.CreditScore)

	return Result{
		EligibleLoanAmount: roundHalfUp(presentValue(eligibleEMI, rate, months)),
		EstimatedEMI:       roundHalfUp(eligibleEMI),
		AnnualRatePercent:  rate,
		TenureMonths:       months,
		Status:             status,
		Advice:             advice(status, a.FullName, a.CreditScore, roundHalfUp(eligibleEMI)),
		Tip:                tips[status],
	}, nil
}

func statusFor(score int) Status {
	switch {
	case score > highScoreAbove:
		return StatusHigh
	case score >= moderateFrom:
		return StatusModerate
	default:
		return StatusLow
	}
}

// presentValue is the principal an EMI services over months at the annual
// rate.
func presentValue(emi, annualRatePercent float64, months int) float64 {
	if emi <= 0 || months <= 0 {
		return 0
	}
	r := annualRatePercent / 12 / 100
	if r == 0 {
		return emi * float64(months)
	}
	g := math.Pow(1+r, float64(months))
	return emi * (g - 1) / (r * g)
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
