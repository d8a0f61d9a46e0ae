package conversation

import "loan-saarthi/internal/models"

// State is a conversation snapshot. Transitions return a new State and never
// modify the one they were given.
type State struct {
	Phase    Phase                    `json:"phase"`
	Request  models.LoanRequest       `json:"request"`
	Profile  *models.ApplicantProfile `json:"profile,omitempty"`
	Verdict  *models.Verdict          `json:"verdict,omitempty"`
	Sanction *models.Sanction         `json:"sanction,omitempty"`
}

// NewState returns the state of a conversation that has not started talking.
func NewState() State {
	return State{Phase: PhaseGreeting}
}
