// Package utils provides utility functions for the application.
package utils

import (
	"fmt"
	"time"
)

// UTCNow returns the current time in UTC
func UTCNow() time.Time {
	return time.Now().UTC()
}

// UTCNowPtr returns a pointer to the current time in UTC
func UTCNowPtr() *time.Time {
	now := UTCNow()
	return &now
}

// UTCNowAdd returns the current UTC time plus the given duration
func UTCNowAdd(d time.Duration) time.Time {
	return UTCNow().Add(d)
}

// IsExpired checks if the given time is in the past
func IsExpired(t time.Time) bool {
	return UTCNow().After(t)
}

// IsExpiredPtr checks if the given time pointer is in the past
func IsExpiredPtr(t *time.Time) bool {
	if t == nil {
		return false
	}
	return IsExpired(*t)
}

// CombineDateTime joins a calendar date with a "15:04" wall-clock string.
// Shifts store date and times separately with no timezone; callers pass the
// deployment's local zone.
func CombineDateTime(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("15:04", clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid wall-clock time %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}
