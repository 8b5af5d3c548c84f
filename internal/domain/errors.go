package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

var (
	// User errors
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
	}
	ErrUsernameTaken = &DomainError{
		Code:    "USERNAME_TAKEN",
		Message: "user with this username already exists",
	}
	ErrInvalidToken = &DomainError{
		Code:    "INVALID_TOKEN",
		Message: "invalid user token",
	}

	// Device errors
	ErrDeviceNotFound = &DomainError{
		Code:    "DEVICE_NOT_FOUND",
		Message: "device not found",
	}
	ErrDeviceNotOwned = &DomainError{
		Code:    "DEVICE_NOT_OWNED",
		Message: "device does not belong to this user",
	}
	ErrDeviceInactive = &DomainError{
		Code:    "DEVICE_INACTIVE",
		Message: "device blocked or inactive",
	}
	ErrDeviceStatusUnchanged = &DomainError{
		Code:    "DEVICE_STATUS_UNCHANGED",
		Message: "device status was not changed",
	}
	ErrDeviceStatusInvalid = &DomainError{
		Code:    "DEVICE_STATUS_INVALID",
		Message: "unknown device status",
	}

	// File errors
	ErrFileNotFound = &DomainError{
		Code:    "FILE_NOT_FOUND",
		Message: "file not found",
	}

	// Validation errors
	ErrValidationFailed = &DomainError{
		Code:    "VALIDATION_FAILED",
		Message: "validation failed",
	}
	ErrRequiredFieldMissing = &DomainError{
		Code:    "REQUIRED_FIELD_MISSING",
		Message: "required field is missing",
	}

	// Infrastructure errors
	ErrDatabaseOperation = &DomainError{
		Code:    "DATABASE_OPERATION_FAILED",
		Message: "database operation failed",
	}
)

// WrapDatabaseOperation wraps an error as a database operation failure
func WrapDatabaseOperation(operation string, cause error) error {
	return &DomainError{
		Code:    ErrDatabaseOperation.Code,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Cause:   cause,
	}
}

// WrapUserNotFound wraps an error as a user not found error
func WrapUserNotFound(userID string, cause error) error {
	return &DomainError{
		Code:    ErrUserNotFound.Code,
		Message: fmt.Sprintf("user not found: %s", userID),
		Cause:   cause,
	}
}

// WrapDeviceNotFound wraps an error as a device not found error
func WrapDeviceNotFound(deviceID string, cause error) error {
	return &DomainError{
		Code:    ErrDeviceNotFound.Code,
		Message: fmt.Sprintf("device not found: %s", deviceID),
		Cause:   cause,
	}
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == ErrUserNotFound.Code ||
			domainErr.Code == ErrDeviceNotFound.Code ||
			domainErr.Code == ErrFileNotFound.Code
	}
	return false
}

// IsAuthError checks if an error means the caller is not allowed to proceed
func IsAuthError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == ErrInvalidToken.Code ||
			domainErr.Code == ErrDeviceNotOwned.Code ||
			domainErr.Code == ErrDeviceInactive.Code
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == ErrValidationFailed.Code ||
			domainErr.Code == ErrRequiredFieldMissing.Code ||
			domainErr.Code == ErrDeviceStatusInvalid.Code
	}
	return false
}
