package checkeligibility

import (
	"loan-saarthi/internal/common/validation"
	"loan-saarthi/internal/eligibility"
)

// Input carries the application as top-level process variables.
type Input = eligibility.Application

type Output struct {
	Eligibility eligibility.Result `json:"eligibility"`
	Eligible    bool               `json:"eligible"`
}

var inputSchema = validation.MustCompile(TaskType, `{
	"type": "object",
	"properties": {
		"fullName":       {"type": "string", "minLength": 1},
		"age":            {"type": "integer"},
		"employmentType": {"type": "string", "enum": ["Salaried", "Self-employed"]},
		"monthlyIncome":  {"type": "integer", "minimum": 1},
		"existingEmi":    {"type": "integer", "minimum": 0},
		"creditScore":    {"type": "integer"},
		"loanType":       {"type": "string", "enum": ["Home", "Personal", "Car"]},
		"tenureYears":    {"type": "integer"}
	},
	"required": ["fullName", "age", "employmentType", "monthlyIncome", "creditScore", "loanType", "tenureYears"]
}`)
