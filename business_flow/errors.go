// Package businessflow contains the core business logic for the shift fill engine
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Shift-related errors
	ErrShiftNotFound     = errors.New("shift not found")
	ErrShiftNotAvailable = errors.New("shift is not available")
	ErrShiftConflict     = errors.New("shift state changed concurrently")
	ErrCodeCollision     = errors.New("could not allocate a unique shift code")
	ErrPositionNotFound  = errors.New("position not found")
	ErrAreaNotFound      = errors.New("area not found")

	// Interest-related errors
	ErrNotEligible = errors.New("phone does not belong to an eligible employee")

	// Employee-related errors
	ErrInvalidEmployee  = errors.New("employee not found")
	ErrEmployeeInactive = errors.New("employee is inactive")

	// Notification-related errors
	ErrTemplateNotFound  = errors.New("message template not found")
	ErrTemplateRender    = errors.New("template rendering failed")
	ErrNoRecipients      = errors.New("no eligible recipients")
	ErrProviderNotConfig = errors.New("sms provider not configured")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsShiftNotFound(err error) bool {
	return errors.Is(err, ErrShiftNotFound)
}

func IsShiftNotAvailable(err error) bool {
	return errors.Is(err, ErrShiftNotAvailable)
}

func IsShiftConflict(err error) bool {
	return errors.Is(err, ErrShiftConflict)
}

func IsCodeCollision(err error) bool {
	return errors.Is(err, ErrCodeCollision)
}

func IsPositionNotFound(err error) bool {
	return errors.Is(err, ErrPositionNotFound)
}

func IsAreaNotFound(err error) bool {
	return errors.Is(err, ErrAreaNotFound)
}

func IsNotEligible(err error) bool {
	return errors.Is(err, ErrNotEligible)
}

func IsInvalidEmployee(err error) bool {
	return errors.Is(err, ErrInvalidEmployee)
}

func IsEmployeeInactive(err error) bool {
	return errors.Is(err, ErrEmployeeInactive)
}

func IsTemplateNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound)
}

func IsTemplateRender(err error) bool {
	return errors.Is(err, ErrTemplateRender)
}

func IsNoRecipients(err error) bool {
	return errors.Is(err, ErrNoRecipients)
}

func IsProviderNotConfig(err error) bool {
	return errors.Is(err, ErrProviderNotConfig)
}

func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}
