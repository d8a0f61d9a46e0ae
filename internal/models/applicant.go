// internal/models/applicant.go
package models

import "strings"

// KYC statuses carried by the applicant directory.
const (
	KYCVerified = "Verified"
	KYCPending  = "Pending"
)

// ApplicantProfile is a read-only pre-registered applicant record.
type ApplicantProfile struct {
	ID                  string `json:"id" db:"id"`
	DisplayName         string `json:"displayName" db:"display_name"`
	Age                 int    `json:"age" db:"age"`
	Phone               string `json:"phone" db:"phone"`
	City                string `json:"city" db:"city"`
	CreditScore         int    `json:"creditScore" db:"credit_score"`
	KYCStatus           string `json:"kycStatus" db:"kyc_status"`
	PreApprovedLimit    int64  `json:"preApprovedLimit" db:"pre_approved_limit"`
	ExistingLoanBalance int64  `json:"existingLoanBalance" db:"existing_loan_balance"`
}

// IsKYCVerified reports whether the applicant completed KYC.
func (p ApplicantProfile) IsKYCVerified() bool {
	return strings.EqualFold(p.KYCStatus, KYCVerified)
}

// SelectorKind tells the profile store how to interpret Selector.Key.
type SelectorKind string

const (
	// SelectByID picks a profile from the directory dialog.
	SelectByID SelectorKind = "id"
	// SelectByPhone looks a profile up by its normalized 10-digit number.
	SelectByPhone SelectorKind = "phone"
)

// Selector identifies an applicant in the profile store.
type Selector struct {
	Kind SelectorKind `json:"kind"`
	Key  string       `json:"key"`
}

func (s Selector) String() string {
	return string(s.Kind) + ":" + s.Key
}
