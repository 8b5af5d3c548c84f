package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/mediahub/internal/auth"
	"github.com/mediahub/internal/db"
	"github.com/mediahub/internal/domain"
)

// deviceService implements the DeviceService interface
type deviceService struct {
	database *db.DB
	tokens   *auth.Service
	logger   *slog.Logger
}

// NewDeviceService creates a new device service
func NewDeviceService(database *db.DB, tokens *auth.Service, logger *slog.Logger) domain.DeviceService {
	return &deviceService{
		database: database,
		tokens:   tokens,
		logger:   logger,
	}
}

// CreateDevice creates a device for a user (admin operation)
func (s *deviceService) CreateDevice(ctx context.Context, req domain.CreateDeviceRequest) (*db.Device, error) {
	status := req.Status
	if status == "" {
		status = db.DeviceStatusUnverified
	}
	if !db.ValidDeviceStatus(status) {
		return nil, domain.ErrDeviceStatusInvalid
	}

	if _, err := s.database.GetUser(req.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapUserNotFound(req.UserID, err)
		}
		return nil, domain.WrapDatabaseOperation("get user", err)
	}

	device := db.NewDevice(req.Description, status, req.UserID)
	if err := s.database.CreateDevice(device); err != nil {
		return nil, domain.WrapDatabaseOperation("create device", err)
	}

	s.logger.InfoContext(ctx, "device created", "deviceID", device.ID, "userID", device.UserID, "status", device.Status)
	return device, nil
}

// ListDevices retrieves all devices
func (s *deviceService) ListDevices(ctx context.Context) ([]*db.Device, error) {
	devices, err := s.database.GetAllDevices()
	if err != nil {
		return nil, domain.WrapDatabaseOperation("list devices", err)
	}
	return devices, nil
}

// ListUserDevices retrieves the devices belonging to a user
func (s *deviceService) ListUserDevices(ctx context.Context, userID string) ([]*db.Device, error) {
	devices, err := s.database.GetUserDevices(userID)
	if err != nil {
		return nil, domain.WrapDatabaseOperation("list user devices", err)
	}
	return devices, nil
}

// UpdateDeviceStatus changes a device's status. A no-op change is reported
// via domain.ErrDeviceStatusUnchanged so callers can surface it distinctly.
func (s *deviceService) UpdateDeviceStatus(ctx context.Context, deviceID, status string) (*domain.DeviceStatusChange, error) {
	if !db.ValidDeviceStatus(status) {
		return nil, domain.ErrDeviceStatusInvalid
	}

	device, err := s.database.GetDevice(deviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapDeviceNotFound(deviceID, err)
		}
		return nil, domain.WrapDatabaseOperation("get device", err)
	}

	if device.Status == status {
		return nil, domain.ErrDeviceStatusUnchanged
	}

	if err := s.database.UpdateDeviceStatus(deviceID, status); err != nil {
		return nil, domain.WrapDatabaseOperation("update device status", err)
	}

	s.logger.InfoContext(ctx, "device status updated", "deviceID", deviceID, "oldStatus", device.Status, "newStatus", status)
	return &domain.DeviceStatusChange{
		DeviceID:  deviceID,
		OldStatus: device.Status,
		NewStatus: status,
	}, nil
}

// DeleteDevice deletes a device
func (s *deviceService) DeleteDevice(ctx context.Context, deviceID string) error {
	if err := s.database.DeleteDevice(deviceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.WrapDeviceNotFound(deviceID, err)
		}
		return domain.WrapDatabaseOperation("delete device", err)
	}

	s.logger.InfoContext(ctx, "device deleted", "deviceID", deviceID)
	return nil
}

// VerifyDevice checks that the token's owner holds the device and that the
// device is active. Every failure is an authorization failure from the
// device's point of view.
func (s *deviceService) VerifyDevice(ctx context.Context, token, deviceID string) (*db.Device, error) {
	user, err := s.tokens.Authenticate(token)
	if err != nil {
		return nil, err
	}

	device, err := s.database.GetDevice(deviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDeviceNotOwned
		}
		return nil, domain.WrapDatabaseOperation("get device", err)
	}
	if device.UserID != user.ID {
		return nil, domain.ErrDeviceNotOwned
	}

	if device.Status != db.DeviceStatusActive {
		return nil, domain.ErrDeviceInactive
	}

	s.logger.DebugContext(ctx, "device verified", "deviceID", device.ID, "userID", user.ID)
	return device, nil
}

// RegisterDevice registers a new active device for the token's owner
func (s *deviceService) RegisterDevice(ctx context.Context, token, description string) (*db.Device, error) {
	user, err := s.tokens.Authenticate(token)
	if err != nil {
		return nil, err
	}

	device := db.NewDevice(description, db.DeviceStatusActive, user.ID)
	if err := s.database.CreateDevice(device); err != nil {
		return nil, domain.WrapDatabaseOperation("create device", err)
	}

	s.logger.InfoContext(ctx, "device registered", "deviceID", device.ID, "userID", user.ID)
	return device, nil
}
