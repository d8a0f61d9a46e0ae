package decideverdict

import (
	"loan-saarthi/internal/common/validation"
	"loan-saarthi/internal/models"
)

// Input is read from the process variables "profile" and "request".
type Input struct {
	Profile models.ApplicantProfile `json:"profile"`
	Request models.LoanRequest      `json:"request"`
}

// Output is merged back into the process. VerdictKind drives the gateway;
// Sanction is set only for instant approvals.
type Output struct {
	VerdictKind      models.VerdictKind `json:"verdictKind"`
	Verdict          models.Verdict     `json:"verdict"`
	Sanction         *models.Sanction   `json:"sanction,omitempty"`
	RequiredDocument string             `json:"requiredDocument,omitempty"`
}

var inputSchema = validation.MustCompile(TaskType, `{
	"type": "object",
	"properties": {
		"profile": {
			"type": "object",
			"properties": {
				"id":               {"type": "string", "minLength": 1},
				"displayName":      {"type": "string"},
				"creditScore":      {"type": "integer", "minimum": 300, "maximum": 900},
				"preApprovedLimit": {"type": "integer", "minimum": 0}
			},
			"required": ["id", "creditScore", "preApprovedLimit"]
		},
		"request": {
			"type": "object",
			"properties": {
				"amount":                {"type": "integer", "minimum": 1},
				"tenureMonths":          {"type": "integer", "minimum": 1, "maximum": 60},
				"declaredMonthlySalary": {"type": "integer", "minimum": 0}
			},
			"required": ["amount", "tenureMonths"]
		}
	},
	"required": ["profile", "request"]
}`)
