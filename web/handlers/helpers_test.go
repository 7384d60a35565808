package handlers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMatchesFilter(t *testing.T) {
	testCases := []struct {
		name     string
		term     string
		fields   []string
		expected bool
	}{
		{
			name:     "Empty term matches everything",
			term:     "",
			fields:   []string{"Acme"},
			expected: true,
		},
		{
			name:     "Empty term matches even with no fields",
			term:     "",
			fields:   nil,
			expected: true,
		},
		{
			name:     "Case insensitive substring",
			term:     "ACM",
			fields:   []string{"Acme"},
			expected: true,
		},
		{
			name:     "Term matches any field",
			term:     "0600",
			fields:   []string{"Acme", "0600000000"},
			expected: true,
		},
		{
			name:     "Substring in the middle",
			term:     "dmi",
			fields:   []string{"Câble HDMI"},
			expected: true,
		},
		{
			name:     "No match",
			term:     "globex",
			fields:   []string{"Acme", "0600000000"},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, matchesFilter(tc.term, tc.fields...))
		})
	}
}

func TestFormatDH(t *testing.T) {
	assert.Equal(t, "30.00 DH", formatDH(decimal.NewFromInt(30)))
	assert.Equal(t, "45.50 DH", formatDH(decimal.RequireFromString("45.5")))
	assert.Equal(t, "0.00 DH", formatDH(decimal.Zero))
	assert.Equal(t, "7.90 DH", formatDH(decimal.RequireFromString("7.9")))
}

func TestOrDash(t *testing.T) {
	value := "Hassan El Amrani"
	empty := ""

	assert.Equal(t, "Hassan El Amrani", orDash(&value))
	assert.Equal(t, "-", orDash(nil))
	assert.Equal(t, "-", orDash(&empty))
}
