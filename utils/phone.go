// Package utils provides utility functions for the application.
package utils

import (
	"fmt"
	"strings"
)

// NormalizePhone converts a phone number into canonical E.164 form
// (+<country><number>). It is the single normalization used for identity
// matching: both eligibility resolution and interest verification must compare
// through this function so the same wire identity always maps to the same key.
//
// Accepted inputs: "+15551234567", "15551234567", "(555) 123-4567",
// "555-123-4567", "5551234567". Bare 10-digit numbers are assumed to be NANP
// and get a +1 prefix.
func NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	hasPlus := false

	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '+' && i == 0:
			hasPlus = true
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
			// separators are ignored
		default:
			return "", fmt.Errorf("phone number contains invalid character %q", r)
		}
	}

	d := digits.String()
	switch {
	case hasPlus:
		if len(d) < 8 || len(d) > 15 {
			return "", fmt.Errorf("phone number has %d digits, expected 8-15", len(d))
		}
		return "+" + d, nil
	case len(d) == 10:
		return "+1" + d, nil
	case len(d) == 11 && d[0] == '1':
		return "+" + d, nil
	case len(d) >= 8 && len(d) <= 15:
		return "+" + d, nil
	default:
		return "", fmt.Errorf("phone number has %d digits, expected 8-15", len(d))
	}
}

// MaskPhone hides the middle of a phone number for logs and public responses.
func MaskPhone(phone string) string {
	if len(phone) < 8 {
		return phone
	}
	return phone[:4] + "****" + phone[len(phone)-4:]
}
