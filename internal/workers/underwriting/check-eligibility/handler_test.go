package checkeligibility

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"loan-saarthi/internal/common/errors"
	"loan-saarthi/internal/common/logger"
	"loan-saarthi/internal/eligibility"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Job Helper
// ==========================

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)

	activatedJob := &pb.ActivatedJob{
		Key:                      key,
		Type:                     TaskType,
		ProcessInstanceKey:       key * 10,
		BpmnProcessId:            "loan-application",
		ProcessDefinitionVersion: 1,
		ProcessDefinitionKey:     1,
		ElementId:                "Activity_CheckEligibility",
		ElementInstanceKey:       1,
		CustomHeaders:            "{}",
		Worker:                   "test-worker",
		Retries:                  3,
		Variables:                string(variablesJSON),
	}

	return entities.Job{ActivatedJob: activatedJob}
}

// ==========================
// Test Helpers
// ==========================

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerOptions{
		CustomConfig: DefaultConfig(),
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return h
}

func createVariables() map[string]interface{} {
	return map[string]interface{}{
		"fullName":       "Priya Patel",
		"age":            34,
		"employmentType": "Salaried",
		"monthlyIncome":  100000,
		"existingEmi":    10000,
		"creditScore":    820,
		"loanType":       "Personal",
		"tenureYears":    5,
	}
}

// ==========================
// Handler Creation Tests
// ==========================

func TestHandler_NewHandler(t *testing.T) {
	_, err := NewHandler(HandlerOptions{CustomConfig: &Config{Timeout: time.Second}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_jobs_active must be positive")

	h, err := NewHandler(HandlerOptions{})
	require.NoError(t, err)
	assert.True(t, h.Enabled())
	assert.Equal(t, 5, h.MaxJobsActive())
	assert.Equal(t, 10*time.Second, h.Timeout())
}

// ==========================
// Input Parsing Tests
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	h := createTestHandler(t)

	tests := []struct {
		name     string
		modify   func(vars map[string]interface{})
		wantErr  bool
		validate func(*testing.T, *Input)
	}{
		{
			name: "valid application with extra process variables",
			modify: func(vars map[string]interface{}) {
				vars["channel"] = "web"
			},
			validate: func(t *testing.T, input *Input) {
				assert.Equal(t, "Priya Patel", input.FullName)
				assert.Equal(t, eligibility.LoanPersonal, input.LoanType)
				assert.Equal(t, int64(10000), input.ExistingEMI)
			},
		},
		{
			name:    "missing income",
			modify:  func(vars map[string]interface{}) { delete(vars, "monthlyIncome") },
			wantErr: true,
		},
		{
			name:    "unknown loan type",
			modify:  func(vars map[string]interface{}) { vars["loanType"] = "Boat" },
			wantErr: true,
		},
		{
			name:    "fractional score",
			modify:  func(vars map[string]interface{}) { vars["creditScore"] = 720.5 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := createVariables()
			tt.modify(vars)

			input, err := h.parseInput(createMockJob(12345, vars))

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeEligibilityInputInvalid))
				return
			}
			require.NoError(t, err)
			tt.validate(t, input)
		})
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	h := createTestHandler(t)

	tests := []struct {
		name           string
		modify         func(input *Input)
		wantErr        bool
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name: "eligible premium borrower",
			validateOutput: func(t *testing.T, output *Output) {
				assert.True(t, output.Eligible)
				assert.Equal(t, int64(1798202), output.Eligibility.EligibleLoanAmount)
				assert.Equal(t, eligibility.StatusHigh, output.Eligibility.Status)
			},
		},
		{
			name: "obligations consume half the income",
			modify: func(input *Input) {
				input.MonthlyIncome = 30000
				input.ExistingEMI = 20000
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.False(t, output.Eligible)
				assert.Zero(t, output.Eligibility.EligibleLoanAmount)
			},
		},
		{
			name:    "minor applicant",
			modify:  func(input *Input) { input.Age = 16 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := h.parseInput(createMockJob(1, createVariables()))
			require.NoError(t, err)
			if tt.modify != nil {
				tt.modify(input)
			}

			output, err := h.Execute(context.Background(), input)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeEligibilityInputInvalid))
				return
			}
			require.NoError(t, err)
			tt.validateOutput(t, output)
		})
	}
}
