package domain

import (
	"context"

	"github.com/mediahub/internal/db"
	"github.com/mediahub/internal/system"
)

// ============================================================================
// Primary Ports (Application Use Cases)
// ============================================================================

// UserService defines the primary port for user administration use cases
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*db.User, error)
	GetUser(ctx context.Context, userID string) (*db.User, error)
	ListUsers(ctx context.Context) ([]*db.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// DeviceService defines the primary port for device management use cases
type DeviceService interface {
	CreateDevice(ctx context.Context, req CreateDeviceRequest) (*db.Device, error)
	ListDevices(ctx context.Context) ([]*db.Device, error)
	ListUserDevices(ctx context.Context, userID string) ([]*db.Device, error)
	UpdateDeviceStatus(ctx context.Context, deviceID, status string) (*DeviceStatusChange, error)
	DeleteDevice(ctx context.Context, deviceID string) error
	VerifyDevice(ctx context.Context, token, deviceID string) (*db.Device, error)
	RegisterDevice(ctx context.Context, token, description string) (*db.Device, error)
}

// ContentService defines the primary port for content distribution use cases
type ContentService interface {
	CreateFile(ctx context.Context, req CreateFileRequest) (*db.File, error)
	ListFiles(ctx context.Context) ([]*db.File, error)
	ListUserFiles(ctx context.Context, userID string) ([]*db.File, error)
	DeleteFile(ctx context.Context, fileID string) error
	GetUserFileByName(ctx context.Context, userID, filename string) (*db.File, error)
	CheckContent(ctx context.Context, deviceID string, reported []string) (*ContentCheckResult, error)
}

// SystemService defines the primary port for system monitoring use cases
type SystemService interface {
	GetSystemStats(ctx context.Context) (*system.SystemStats, error)
}

// ============================================================================
// Request/Response Types
// ============================================================================

// CreateUserRequest represents the request to create a new user
type CreateUserRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Token    string `json:"token" binding:"required"`
}

// CreateDeviceRequest represents the request to create a device for a user
type CreateDeviceRequest struct {
	Description string `json:"description" binding:"required"`
	Status      string `json:"status"`
	UserID      string `json:"user_id" binding:"required"`
}

// CreateFileRequest represents the request to register a content file
type CreateFileRequest struct {
	Description string `json:"description"`
	Filename    string `json:"filename" binding:"required"`
	UserID      string `json:"user_id" binding:"required"`
}

// DeviceStatusChange reports the outcome of a device status update
type DeviceStatusChange struct {
	DeviceID  string `json:"device_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// ContentCheckResult is the server's verdict on a device's reported file set
type ContentCheckResult struct {
	Actual     bool     `json:"actual"`
	ToDownload []string `json:"to_download"`
	ToDelete   []string `json:"to_delete"`
}
