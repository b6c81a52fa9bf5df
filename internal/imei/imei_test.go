package imei

import (
	"fmt"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"490154203237518", true},
		{"352099001761481", true},
		{"000000000000000", true},
		{"490154203237517", false},
		{"352099001761482", false},
		// Wrong length.
		{"", false},
		{"49015420323751", false},
		{"4901542032375180", false},
		// Non-digits.
		{"49015420323751a", false},
		{"4901-5420323751", false},
		{"٤90154203237518", false},
		// Whitespace is not trimmed here.
		{" 490154203237518", false},
		{"490154203237518 ", false},
		{"49015420323751\n", false},
	}

	for _, tt := range tests {
		got := Validate(tt.input)
		if got != tt.expected {
			t.Errorf("Validate(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestValidateRejectsEveryOtherLastDigit(t *testing.T) {
	const body = "49015420323751"
	for d := '0'; d <= '9'; d++ {
		s := body + string(d)
		want := d == '8'
		if got := Validate(s); got != want {
			t.Errorf("Validate(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestCheckDigit(t *testing.T) {
	d, err := CheckDigit("49015420323751")
	if err != nil {
		t.Fatalf("CheckDigit: %v", err)
	}
	if d != '8' {
		t.Errorf("expected check digit '8', got %q", d)
	}

	// Every body completed with its check digit must validate.
	for i := 0; i < 200; i++ {
		body := fmt.Sprintf("%014d", i*7919+35209900)
		d, err := CheckDigit(body)
		if err != nil {
			t.Fatalf("CheckDigit(%q): %v", body, err)
		}
		if !Validate(body + string(d)) {
			t.Errorf("expected %s%c to validate", body, d)
		}
	}
}

func TestCheckDigitInvalidBody(t *testing.T) {
	for _, body := range []string{"", "1234567890123", "123456789012345", "1234567890123x"} {
		if _, err := CheckDigit(body); err != ErrInvalidBody {
			t.Errorf("CheckDigit(%q) error = %v, want ErrInvalidBody", body, err)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  490154203237518\t\n"); got != "490154203237518" {
		t.Errorf("Normalize = %q", got)
	}
	if !Validate(Normalize(" 490154203237518 ")) {
		t.Error("expected normalized IMEI to validate")
	}
}
