package validation

import (
	"testing"

	apperrors "loan-saarthi/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"properties": {
		"text":  {"type": "string", "maxLength": 10},
		"count": {"type": "integer", "minimum": 1}
	},
	"required": ["text"],
	"additionalProperties": false
}`

func TestSchema_ValidateBytes(t *testing.T) {
	schema := MustCompile("test", testSchema)

	tests := []struct {
		name           string
		doc            string
		validateOutput func(t *testing.T, res *ValidationResult)
	}{
		{
			name: "valid document",
			doc:  `{"text": "hello", "count": 2}`,
			validateOutput: func(t *testing.T, res *ValidationResult) {
				assert.True(t, res.Valid)
				assert.Empty(t, res.Errors)
				assert.NoError(t, res.Err())
			},
		},
		{
			name: "missing required field",
			doc:  `{"count": 2}`,
			validateOutput: func(t *testing.T, res *ValidationResult) {
				assert.False(t, res.Valid)
				require.Len(t, res.Errors, 1)
				assert.Equal(t, "REQUIRED", res.Errors[0].Code)
			},
		},
		{
			name: "constraint violations per field",
			doc:  `{"text": "far too long text", "count": 0}`,
			validateOutput: func(t *testing.T, res *ValidationResult) {
				assert.False(t, res.Valid)
				assert.True(t, res.HasErrors("text"))
				assert.True(t, res.HasErrors("count"))
			},
		},
		{
			name: "extra property rejected",
			doc:  `{"text": "hi", "other": true}`,
			validateOutput: func(t *testing.T, res *ValidationResult) {
				assert.False(t, res.Valid)
				assert.Equal(t, "ADDITIONAL_PROPERTY_NOT_ALLOWED", res.Errors[0].Code)
			},
		},
		{
			name: "malformed json",
			doc:  `{"text": `,
			validateOutput: func(t *testing.T, res *ValidationResult) {
				assert.False(t, res.Valid)
				assert.Equal(t, "MALFORMED_DOCUMENT", res.Errors[0].Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateOutput(t, schema.ValidateBytes([]byte(tt.doc)))
		})
	}
}

func TestSchema_ValidateObject(t *testing.T) {
	schema := MustCompile("test", testSchema)

	res := schema.ValidateObject(map[string]interface{}{"count": 3})

	assert.False(t, res.Valid)
	err := res.Err()
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest))
	assert.Contains(t, apperrors.AsStandardError(err).Details, "text")
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile("broken", `{"type": 12}`)
	assert.Error(t, err)
	assert.Panics(t, func() { MustCompile("broken", `{"type": 12}`) })
}
