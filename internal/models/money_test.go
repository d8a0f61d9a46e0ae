package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRupees(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{50000, "₹50,000"},
		{100000, "₹1,00,000"},
		{500000, "₹5,00,000"},
		{12345678, "₹1,23,45,678"},
		{-23537, "-₹23,537"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatRupees(tt.amount))
		})
	}
}
