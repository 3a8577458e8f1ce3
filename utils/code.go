// Package utils provides utility functions for the application.
package utils

import (
	"crypto/rand"
	"fmt"
)

// shiftCodeAlphabet excludes lookalike characters (0/O, 1/I/L) so codes
// survive being retyped from an SMS.
const shiftCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateShiftCode returns a short public code suitable for SMS links and
// replies. Uniqueness among currently available shifts is the caller's
// responsibility; this only guarantees randomness.
func GenerateShiftCode() (string, error) {
	buf := make([]byte, ShiftCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = shiftCodeAlphabet[int(b)%len(shiftCodeAlphabet)]
	}
	return string(buf), nil
}

// SegmentCount reports how many SMS segments a message body occupies under the
// single-segment encoding rule. Long bodies are multi-segment, never rejected.
func SegmentCount(body string) int {
	runes := len([]rune(body))
	if runes == 0 {
		return 1
	}
	return (runes + SMSSegmentSize - 1) / SMSSegmentSize
}
