package profiles

import "loan-saarthi/internal/models"

// SeedProfiles returns the demo applicant directory.
func SeedProfiles() []models.ApplicantProfile {
	return []models.ApplicantProfile{
		{ID: "1", DisplayName: "Rohan Sharma", Age: 28, Phone: "9876543210", City: "Mumbai", CreditScore: 750, KYCStatus: models.KYCVerified, PreApprovedLimit: 500000, ExistingLoanBalance: 0},
		{ID: "2", DisplayName: "Priya Patel", Age: 34, Phone: "9123456789", City: "Ahmedabad", CreditScore: 820, KYCStatus: models.KYCVerified, PreApprovedLimit: 1200000, ExistingLoanBalance: 200000},
		{ID: "3", DisplayName: "Amit Singh", Age: 24, Phone: "9988776655", City: "Delhi", CreditScore: 650, KYCStatus: models.KYCVerified, PreApprovedLimit: 100000, ExistingLoanBalance: 50000},
		{ID: "4", DisplayName: "Sneha Reddy", Age: 45, Phone: "9876123450", City: "Hyderabad", CreditScore: 780, KYCStatus: models.KYCVerified, PreApprovedLimit: 800000, ExistingLoanBalance: 0},
		{ID: "5", DisplayName: "Vikram Malhotra", Age: 31, Phone: "9000011111", City: "Bangalore", CreditScore: 710, KYCStatus: models.KYCVerified, PreApprovedLimit: 300000, ExistingLoanBalance: 0},
		{ID: "6", DisplayName: "Anjali Gupta", Age: 29, Phone: "9998887776", City: "Pune", CreditScore: 680, KYCStatus: models.KYCPending, PreApprovedLimit: 150000, ExistingLoanBalance: 0},
		{ID: "7", DisplayName: "Rahul Verma", Age: 40, Phone: "9112233445", City: "Chennai", CreditScore: 850, KYCStatus: models.KYCVerified, PreApprovedLimit: 2000000, ExistingLoanBalance: 500000},
		{ID: "8", DisplayName: "Kavita Das", Age: 25, Phone: "8899776655", City: "Kolkata", CreditScore: 620, KYCStatus: models.KYCVerified, PreApprovedLimit: 50000, ExistingLoanBalance: 0},
		{ID: "9", DisplayName: "Arjun Nair", Age: 38, Phone: "9879879870", City: "Kochi", CreditScore: 740, KYCStatus: models.KYCVerified, PreApprovedLimit: 600000, ExistingLoanBalance: 100000},
		{ID: "10", DisplayName: "Meera Joshi", Age: 32, Phone: "9654321987", City: "Indore", CreditScore: 790, KYCStatus: models.KYCVerified, PreApprovedLimit: 900000, ExistingLoanBalance: 0},
	}
}
