package conversation

// Phase is the active stage of a conversation.
type Phase string

const (
	PhaseGreeting       Phase = "greeting"
	PhasePurpose        Phase = "purpose"
	PhaseIdentification Phase = "identification"
	PhaseRequirements   Phase = "requirements"
	PhaseUnderwriting   Phase = "underwriting"
	PhaseSalarySlip     Phase = "salary_slip"
	PhaseDecision       Phase = "decision"
	PhaseEnded          Phase = "ended"
)

// AcceptsInput reports whether the presentation should let the user type.
func (p Phase) AcceptsInput() bool {
	return p != PhaseEnded && p != PhaseUnderwriting
}

// Transition records one phase change.
type Transition struct {
	From Phase `json:"from"`
	To   Phase `json:"to"`
}
