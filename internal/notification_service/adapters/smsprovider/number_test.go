package smsprovider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNumber(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "ten digit US number gets country code", input: "5551234567", expected: "+15551234567"},
		{name: "formatted US number", input: "(555) 123-4567", expected: "+15551234567"},
		{name: "eleven digits passes through with plus", input: "15551234567", expected: "+15551234567"},
		{name: "already E.164 is untouched", input: "+447911123456", expected: "+447911123456"},
		{name: "dots and spaces stripped", input: "555.123 4567", expected: "+15551234567"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeNumber(tc.input))
		})
	}
}
