package model

import "testing"

func TestValidStatus(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{StatusLost, true},
		{StatusStolen, true},
		{StatusRecovered, true},
		{"", false},
		{"Lost", false},
		{"found", false},
		{" lost", false},
	}

	for _, tt := range tests {
		if got := ValidStatus(tt.status); got != tt.expected {
			t.Errorf("ValidStatus(%q) = %v, want %v", tt.status, got, tt.expected)
		}
	}
}

func TestValidInitialStatus(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{StatusLost, true},
		{StatusStolen, true},
		// Reports can only become recovered through an admin update.
		{StatusRecovered, false},
		{"", false},
		{"unknown", false},
	}

	for _, tt := range tests {
		if got := ValidInitialStatus(tt.status); got != tt.expected {
			t.Errorf("ValidInitialStatus(%q) = %v, want %v", tt.status, got, tt.expected)
		}
	}
}
