package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveState(t *testing.T) {
	tests := []struct {
		input string
		code  string
		name  string
	}{
		{"CA", "ca", "california"},
		{"ca", "ca", "california"},
		{"California", "ca", "california"},
		{"CALIFORNIA", "ca", "california"},
		{" New York ", "ny", "new york"},
		{"DC", "dc", "district of columbia"},
		{"Narnia", "narnia", "narnia"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			code, name := ResolveState(tt.input)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestStateMatches(t *testing.T) {
	// Stored values exist in both forms; a filter in either form must match
	// both.
	assert.True(t, StateMatches("CA", "California"))
	assert.True(t, StateMatches("California", "CA"))
	assert.True(t, StateMatches("california", "ca"))
	assert.True(t, StateMatches("CA", "ca"))

	assert.False(t, StateMatches("TX", "California"))
	assert.False(t, StateMatches("Texas", "ca"))
	assert.False(t, StateMatches("", "CA"))
}
