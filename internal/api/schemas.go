package api

import "loan-saarthi/internal/common/validation"

var messageSchema = validation.MustCompile("message", `{
	"type": "object",
	"properties": {
		"text":  {"type": "string", "maxLength": 500},
		"value": {"type": "string", "maxLength": 100}
	},
	"anyOf": [
		{"required": ["text"]},
		{"required": ["value"]}
	],
	"additionalProperties": false
}`)

var documentSchema = validation.MustCompile("document", `{
	"type": "object",
	"properties": {
		"received": {"type": "boolean", "enum": [true]},
		"fileName": {"type": "string", "maxLength": 255}
	},
	"required": ["received"],
	"additionalProperties": false
}`)

var previewSchema = validation.MustCompile("emi-preview", `{
	"type": "object",
	"properties": {
		"principal":         {"type": "integer", "minimum": 1, "maximum": 1000000000},
		"annualRatePercent": {"type": "number", "minimum": 0, "maximum": 50},
		"tenureMonths":      {"type": "integer", "minimum": 1, "maximum": 480}
	},
	"required": ["principal", "tenureMonths"],
	"additionalProperties": false
}`)

var eligibilitySchema = validation.MustCompile("eligibility", `{
	"type": "object",
	"properties": {
		"fullName":       {"type": "string", "minLength": 1, "maxLength": 120},
		"age":            {"type": "integer"},
		"employmentType": {"type": "string", "enum": ["Salaried", "Self-employed"]},
		"monthlyIncome":  {"type": "integer", "minimum": 1},
		"existingEmi":    {"type": "integer", "minimum": 0},
		"creditScore":    {"type": "integer"},
		"loanType":       {"type": "string", "enum": ["Home", "Personal", "Car"]},
		"tenureYears":    {"type": "integer"}
	},
	"required": ["fullName", "age", "employmentType", "monthlyIncome", "creditScore", "loanType", "tenureYears"],
	"additionalProperties": false
}`)
