package utils

import (
	"time"
)

// Token time constants
const (
	// AccessTokenTTL is the time-to-live for supervisor access tokens (12 hours)
	AccessTokenTTL = 12 * time.Hour

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Shift lifecycle constants
const (
	// DefaultUrgentWindow is the lookahead window for the urgent shift filter (48 hours)
	DefaultUrgentWindow = 48 * time.Hour

	// DefaultExpiryGrace is how long past its start a shift may still be
	// reported available before the sweep or read-time filter hides it
	DefaultExpiryGrace = 15 * time.Minute

	// ShiftCodeLength is the length of the short public shift code
	ShiftCodeLength = 6

	// ShiftCodeMaxAttempts bounds code generation retries on collision
	ShiftCodeMaxAttempts = 5
)

// Messaging constants
const (
	// SMSSegmentSize is the per-segment character budget under single-segment encoding
	SMSSegmentSize = 160

	// DefaultSendRetryCount is the per-recipient provider retry budget
	DefaultSendRetryCount = 3

	// DefaultSendRetryBackoff is the base delay between provider retries
	DefaultSendRetryBackoff = 2 * time.Second
)
