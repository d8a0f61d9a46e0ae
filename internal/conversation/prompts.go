package conversation

import (
	"fmt"

	"loan-saarthi/internal/models"
	"loan-saarthi/internal/normalizer"
	"loan-saarthi/internal/transcript"
)

const assistantName = "TataSaarthi"

var (
	greetingText = fmt.Sprintf("Hi! I'm %s, your AI loan assistant. I can help you get a personal loan approval in just 2 minutes. Shall we get started?", assistantName)
	farewellText = "No problem. I'm here whenever you need assistance."
	closingText  = fmt.Sprintf("Thank you for using %s. Have a great day!", assistantName)

	purposePrompt   = "Great! First, could you tell me what you need this personal loan for?"
	identifyPrompt  = "Please provide your mobile number to verify your identity."
	directoryPrompt = "Please choose your profile from our customer directory."
	invalidNumber   = "That doesn't look like a valid number. Please try 'Select User from Database' for this demo."
	unknownNumber   = "I couldn't find an account linked to that number. Please try 'Select User from Database' for this demo."
	storeDown       = "I'm unable to reach our customer records right now. Please try again in a moment."
	profileMissing  = "I couldn't find your verified profile for this application. Please restart the conversation."

	tenurePrompt  = "Got it. And what tenure would you prefer?"
	salaryPrompt  = "Finally, to ensure we find the best offer, could you share your monthly in-hand salary?"
	invalidAmount = "Please enter a valid amount (e.g., 50000)."
	invalidTenure = "Please select or type a tenure in months."
	invalidSalary = "Please enter a valid monthly salary amount (e.g., 50000)."

	uploadPrompt    = "To proceed, I need to verify your income. Please upload your latest Salary Slip (PDF format)."
	uploadReminder  = "Please use the 'Upload Salary Slip' button above to submit your document."
	slipVerified    = "✅ Salary Slip Verified successfully."
	restartedNote   = "Conversation restarted."
	underwritingLog = "Master Agent: Initiating Underwriting Workflow..."
)

var (
	greetingOptions = []models.Option{
		{Label: "Yes, let's go", Value: normalizer.ValueYes},
		{Label: "Not now", Value: normalizer.ValueNo},
	}

	purposeOptions = []models.Option{
		{Label: "Medical", Value: "Medical"},
		{Label: "Travel", Value: "Travel"},
		{Label: "Wedding", Value: "Wedding"},
		{Label: "Education", Value: "Education"},
		{Label: "Debt Consolidation", Value: "Debt Consolidation"},
		{Label: "Other", Value: "Other"},
	}

	directoryOption = models.Option{Label: "Select User from Database", Value: normalizer.ValueDirectory}

	amountOptions = []models.Option{
		{Label: "₹50,000", Value: "50000"},
		{Label: "₹1,00,000", Value: "100000"},
		{Label: "₹5,00,000", Value: "500000"},
		{Label: "Custom Amount", Value: "custom"},
	}

	tenureOptions = []models.Option{
		{Label: "12 Months", Value: "12"},
		{Label: "24 Months", Value: "24"},
		{Label: "36 Months", Value: "36"},
		{Label: "48 Months", Value: "48"},
	}

	salaryOptions = []models.Option{
		{Label: "< ₹20,000", Value: "15000"},
		{Label: "₹20,000 - ₹50,000", Value: "35000"},
		{Label: "₹50,000 - ₹1 Lakh", Value: "75000"},
		{Label: "> ₹1 Lakh", Value: "150000"},
	}

	endChatOption = models.Option{Label: "End Chat", Value: normalizer.ValueEnd}
	restartOption = models.Option{Label: "Restart", Value: normalizer.ValueRestart}
)

func handoffNote(from, to transcript.Agent) string {
	return fmt.Sprintf("🔄 Handoff: %s Agent ➔ %s Agent", from, to)
}

func welcomeText(p models.ApplicantProfile) string {
	return fmt.Sprintf("Welcome back, %s. I see you are from %s. How much loan amount do you need today?", p.DisplayName, p.City)
}

func profileOptions(list []models.ApplicantProfile) []models.Option {
	out := make([]models.Option, 0, len(list))
	for _, p := range list {
		out = append(out, models.Option{
			Label: fmt.Sprintf("%s (%s, %s)", p.DisplayName, p.Phone, p.City),
			Value: normalizer.ProfileValue(p.ID),
		})
	}
	return out
}

func rejectionText(reason string) string {
	cause := "the requested amount exceeding current eligibility limits"
	if reason == models.ReasonCreditScore {
		cause = "credit score criteria"
	}
	return fmt.Sprintf("I've reviewed your application. Unfortunately, we cannot approve this loan at the moment due to %s.", cause)
}

func conditionalText(limit int64) string {
	return fmt.Sprintf("Your request exceeds the instant approval limit of %s. However, you are eligible for a conditional approval.", models.FormatRupees(limit))
}

func emiTooHighText(emi int64) string {
	return fmt.Sprintf("Although your profile is good, the calculated EMI of %s exceeds 50%% of your declared monthly income. We recommend applying for a lower amount or longer tenure to reduce the EMI burden.", models.FormatRupees(emi))
}

func approvedText(amount int64) string {
	return fmt.Sprintf("Congratulations! Your loan of %s is approved!", models.FormatRupees(amount))
}
