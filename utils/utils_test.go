package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "already e164", input: "+15551234567", expected: "+15551234567"},
		{name: "bare nanp ten digits", input: "5551234567", expected: "+15551234567"},
		{name: "eleven digits with country code", input: "15551234567", expected: "+15551234567"},
		{name: "formatted nanp", input: "(555) 123-4567", expected: "+15551234567"},
		{name: "dashed", input: "555-123-4567", expected: "+15551234567"},
		{name: "dotted", input: "555.123.4567", expected: "+15551234567"},
		{name: "international", input: "+442071234567", expected: "+442071234567"},
		{name: "letters rejected", input: "555-CALL-NOW", wantErr: true},
		{name: "too short", input: "12345", wantErr: true},
		{name: "too long", input: "+1234567890123456", wantErr: true},
		{name: "plus not leading", input: "555+1234567", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizePhone(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestNormalizePhoneIsStable(t *testing.T) {
	// All representations of the same number collapse to one key.
	variants := []string{"+15551234567", "15551234567", "(555) 123-4567", "5551234567"}
	for _, v := range variants {
		got, err := NormalizePhone(v)
		require.NoError(t, err)
		assert.Equal(t, "+15551234567", got)
	}
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "+155****4567", MaskPhone("+15551234567"))
	// Too short to mask meaningfully, returned as-is.
	assert.Equal(t, "1234567", MaskPhone("1234567"))
}

func TestGenerateShiftCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateShiftCode()
		require.NoError(t, err)
		assert.Len(t, code, ShiftCodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(shiftCodeAlphabet, r), "unexpected rune %q in code %s", r, code)
		}
		seen[code] = true
	}
	// With a 31^6 space, 100 draws colliding down to a handful would mean
	// broken randomness.
	assert.Greater(t, len(seen), 90)
}

func TestSegmentCount(t *testing.T) {
	assert.Equal(t, 1, SegmentCount(""))
	assert.Equal(t, 1, SegmentCount("short"))
	assert.Equal(t, 1, SegmentCount(strings.Repeat("a", 160)))
	assert.Equal(t, 2, SegmentCount(strings.Repeat("a", 161)))
	assert.Equal(t, 2, SegmentCount(strings.Repeat("a", 320)))
	assert.Equal(t, 3, SegmentCount(strings.Repeat("a", 321)))
	// Segments count runes, not bytes.
	assert.Equal(t, 1, SegmentCount(strings.Repeat("é", 160)))
}
