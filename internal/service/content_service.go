package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sort"

	"github.com/mediahub/internal/db"
	"github.com/mediahub/internal/domain"
	"github.com/mediahub/internal/validation"
)

// contentService implements the ContentService interface
type contentService struct {
	database *db.DB
	logger   *slog.Logger
}

// NewContentService creates a new content service
func NewContentService(database *db.DB, logger *slog.Logger) domain.ContentService {
	return &contentService{
		database: database,
		logger:   logger,
	}
}

// CreateFile registers a content file for a user
func (s *contentService) CreateFile(ctx context.Context, req domain.CreateFileRequest) (*db.File, error) {
	if err := validation.ValidateFilename(req.Filename); err != nil {
		return nil, domain.NewDomainError(domain.ErrValidationFailed.Code, err.Error(), nil)
	}

	if _, err := s.database.GetUser(req.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapUserNotFound(req.UserID, err)
		}
		return nil, domain.WrapDatabaseOperation("get user", err)
	}

	file := db.NewFile(req.Description, req.Filename, req.UserID)
	if err := s.database.CreateFile(file); err != nil {
		return nil, domain.WrapDatabaseOperation("create file", err)
	}

	s.logger.InfoContext(ctx, "file created", "fileID", file.ID, "filename", file.Filename, "userID", file.UserID)
	return file, nil
}

// ListFiles retrieves all content file records
func (s *contentService) ListFiles(ctx context.Context) ([]*db.File, error) {
	files, err := s.database.GetAllFiles()
	if err != nil {
		return nil, domain.WrapDatabaseOperation("list files", err)
	}
	return files, nil
}

// ListUserFiles retrieves the content file records belonging to a user
func (s *contentService) ListUserFiles(ctx context.Context, userID string) ([]*db.File, error) {
	files, err := s.database.GetUserFiles(userID)
	if err != nil {
		return nil, domain.WrapDatabaseOperation("list user files", err)
	}
	return files, nil
}

// DeleteFile deletes a content file record
func (s *contentService) DeleteFile(ctx context.Context, fileID string) error {
	if err := s.database.DeleteFile(fileID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewDomainError(domain.ErrFileNotFound.Code, "file not found: "+fileID, err)
		}
		return domain.WrapDatabaseOperation("delete file", err)
	}

	s.logger.InfoContext(ctx, "file deleted", "fileID", fileID)
	return nil
}

// GetUserFileByName retrieves a user's file record by filename
func (s *contentService) GetUserFileByName(ctx context.Context, userID, filename string) (*db.File, error) {
	if err := validation.ValidateFilename(filename); err != nil {
		return nil, domain.NewDomainError(domain.ErrValidationFailed.Code, err.Error(), nil)
	}

	file, err := s.database.GetUserFileByFilename(userID, filename)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewDomainError(domain.ErrFileNotFound.Code, "file not found: "+filename, err)
		}
		return nil, domain.WrapDatabaseOperation("get file", err)
	}
	return file, nil
}

// CheckContent compares a device's reported file set against the files its
// owner has been assigned. The device downloads what it is missing and
// deletes what has been withdrawn.
func (s *contentService) CheckContent(ctx context.Context, deviceID string, reported []string) (*domain.ContentCheckResult, error) {
	device, err := s.database.GetDevice(deviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapDeviceNotFound(deviceID, err)
		}
		return nil, domain.WrapDatabaseOperation("get device", err)
	}

	files, err := s.database.GetUserFiles(device.UserID)
	if err != nil {
		return nil, domain.WrapDatabaseOperation("list user files", err)
	}

	serverFiles := make(map[string]bool, len(files))
	for _, f := range files {
		serverFiles[f.Filename] = true
	}
	clientFiles := make(map[string]bool, len(reported))
	for _, name := range reported {
		clientFiles[name] = true
	}

	toDownload := []string{}
	for name := range serverFiles {
		if !clientFiles[name] {
			toDownload = append(toDownload, name)
		}
	}
	toDelete := []string{}
	for name := range clientFiles {
		if !serverFiles[name] {
			toDelete = append(toDelete, name)
		}
	}

	// Deterministic output order for clients and tests
	sort.Strings(toDownload)
	sort.Strings(toDelete)

	result := &domain.ContentCheckResult{
		Actual:     len(toDownload) == 0 && len(toDelete) == 0,
		ToDownload: toDownload,
		ToDelete:   toDelete,
	}

	s.logger.DebugContext(ctx, "content check",
		"deviceID", deviceID,
		"actual", result.Actual,
		"toDownload", len(result.ToDownload),
		"toDelete", len(result.ToDelete),
	)
	return result, nil
}
