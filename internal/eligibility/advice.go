package eligibility

import (
	"fmt"

	"loan-saarthi/internal/models"
)

var tips = map[Status]string{
	StatusHigh: `You qualify for our "Premium Borrower" program with zero processing fees and instant disbursal.`,
	StatusLow:  "Tip: A credit score above 750 significantly improves your chances and can lower your interest rates by up to 2%.",
}

func advice(status Status, name string, score int, emi int64) string {
	switch status {
	case StatusHigh:
		return fmt.Sprintf("Excellent profile, %s! Your high credit score of %d makes you a preferred customer. You can comfortably afford an EMI of %s. We recommend opting for a shorter tenure to save on interest costs.",
			name, score, models.FormatRupees(emi))
	case StatusModerate:
		return fmt.Sprintf("Good standing, %s. Your credit score is in the moderate range. To improve your eligibility for a higher loan amount, consider closing small existing debts or waiting until your score crosses 750 for better interest rates.", name)
	default:
		return "Your credit score is currently low, which impacts loan approval. We suggest focusing on timely bill payments and reducing credit card utilization to improve your score before reapplying."
	}
}
