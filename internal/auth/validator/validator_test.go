package validator

import "testing"

func TestPhonePattern(t *testing.T) {
	cases := []struct {
		input string
		valid bool
	}{
		{"+1234567890", true},
		{"1234567890", true},
		{"123456789", true},
		{"+123456789012345", true},
		{"12345678", false},
		{"+12-345-67890", false},
		{"phone", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := phoneRegex.MatchString(tc.input); got != tc.valid {
			t.Errorf("phoneRegex.MatchString(%q) = %v, want %v", tc.input, got, tc.valid)
		}
	}
}
