package validation

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// usernameRegex allows only alphanumeric characters, hyphens, and underscores
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

	// filenameRegex allows simple media file names with a single extension
	filenameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// Reserved names that should not be used as usernames
var reservedNames = map[string]bool{
	".":    true,
	"..":   true,
	"~":    true,
	"root": true,
}

// ValidateUsername validates a username
func ValidateUsername(name string) error {
	if len(name) < 1 {
		return errors.New("username cannot be empty")
	}
	if len(name) > 64 {
		return errors.New("username must be 64 characters or less")
	}

	if reservedNames[strings.ToLower(name)] {
		return errors.New("username is reserved")
	}

	if !usernameRegex.MatchString(name) {
		return errors.New("username must contain only letters, numbers, hyphens, and underscores")
	}

	return nil
}

// ValidateFilename validates a content file name to prevent path traversal
func ValidateFilename(name string) error {
	if len(name) < 1 {
		return errors.New("filename cannot be empty")
	}
	if len(name) > 255 {
		return errors.New("filename must be 255 characters or less")
	}

	// Path traversal sequences
	if strings.Contains(name, "..") {
		return errors.New("filename cannot contain '..'")
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return errors.New("filename cannot contain slashes")
	}

	if !filenameRegex.MatchString(name) {
		return errors.New("filename must contain only letters, numbers, dots, hyphens, and underscores")
	}

	return nil
}

// ValidateToken validates a user token string
func ValidateToken(token string) error {
	if len(token) < 1 {
		return errors.New("token cannot be empty")
	}
	if len(token) > 128 {
		return errors.New("token must be 128 characters or less")
	}
	if strings.ContainsAny(token, " \t\r\n") {
		return errors.New("token cannot contain whitespace")
	}
	return nil
}
