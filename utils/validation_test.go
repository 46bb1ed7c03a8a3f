package utils

import "testing"

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+14155552671", true},
		{"+91 98765 43210", true},
		{"(415) 555-2671", true},
		{"0123", false},
		{"not-a-phone", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidatePhone(tt.phone); got != tt.want {
			t.Errorf("ValidatePhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user.name@sub.example.co", true},
		{"no-at-sign", false},
		{"spaces in@example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidateEmail(tt.email); got != tt.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank("   \t\n") {
		t.Error("IsBlank(whitespace) = false, want true")
	}
	if IsBlank(" x ") {
		t.Error("IsBlank(\" x \") = true, want false")
	}
}
