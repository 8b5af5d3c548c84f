package db

import (
	"time"

	"github.com/google/uuid"
)

// Device lifecycle statuses
const (
	DeviceStatusUnverified = "unverified"
	DeviceStatusActive     = "active"
	DeviceStatusBlocked    = "blocked"
)

// ValidDeviceStatus reports whether s is a known device status
func ValidDeviceStatus(s string) bool {
	return s == DeviceStatusUnverified || s == DeviceStatusActive || s == DeviceStatusBlocked
}

// User represents an account that owns devices and content files
type User struct {
	ID        string    `json:"id" db:"id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Username  string    `json:"username" db:"username"`
	Token     string    `json:"token" db:"token"` // opaque credential, unique per user
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Device represents a playback device that pulls content for its owner
type Device struct {
	ID          string    `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	Status      string    `json:"status" db:"status"` // unverified / active / blocked
	UserID      string    `json:"user_id" db:"user_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// File represents a content file assigned to a user's devices
type File struct {
	ID          string    `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	Filename    string    `json:"filename" db:"filename"`
	UserID      string    `json:"user_id" db:"user_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// NewUser creates a new User with a generated UUID
func NewUser(fullName, username, token string) *User {
	return &User{
		ID:        uuid.New().String(),
		FullName:  fullName,
		Username:  username,
		Token:     token,
		CreatedAt: time.Now(),
	}
}

// NewDevice creates a new Device with a generated UUID
func NewDevice(description, status, userID string) *Device {
	return &Device{
		ID:          uuid.New().String(),
		Description: description,
		Status:      status,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
}

// NewFile creates a new File with a generated UUID
func NewFile(description, filename, userID string) *File {
	return &File{
		ID:          uuid.New().String(),
		Description: description,
		Filename:    filename,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
}
