package http

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mediahub/internal/domain"
)

// handleDomainError maps service-layer errors onto HTTP responses
func handleDomainError(c *gin.Context, err error) {
	var domainErr *domain.DomainError
	switch {
	case domain.IsNotFoundError(err):
		msg := "Not found"
		if errors.As(err, &domainErr) {
			msg = domainErr.Message
		}
		c.JSON(http.StatusNotFound, ErrorResponse{Error: msg})
	case domain.IsAuthError(err):
		msg := "Forbidden"
		if errors.As(err, &domainErr) {
			msg = domainErr.Message
		}
		c.JSON(http.StatusForbidden, ErrorResponse{Error: msg})
	case domain.IsValidationError(err), errors.Is(err, domain.ErrUsernameTaken):
		msg := "Invalid request"
		if errors.As(err, &domainErr) {
			msg = domainErr.Message
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
	default:
		slog.ErrorContext(c.Request.Context(), "request failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// ============================================================================
// Users
// ============================================================================

// listUsers returns all users
func (s *Server) listUsers(c *gin.Context) {
	users, err := s.userService.ListUsers(c.Request.Context())
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// getUser returns a single user
func (s *Server) getUser(c *gin.Context) {
	user, err := s.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// createUser creates a new user
func (s *Server) createUser(c *gin.Context) {
	var req domain.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(c.Request.Context(), "invalid create user request", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	user, err := s.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// deleteUser deletes a user
func (s *Server) deleteUser(c *gin.Context) {
	if err := s.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// listUserDevices returns the devices belonging to a user
func (s *Server) listUserDevices(c *gin.Context) {
	devices, err := s.deviceService.ListUserDevices(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, devices)
}

// listUserFiles returns the content files belonging to a user
func (s *Server) listUserFiles(c *gin.Context) {
	files, err := s.contentService.ListUserFiles(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, files)
}

// ============================================================================
// Devices
// ============================================================================

// listDevices returns all devices
func (s *Server) listDevices(c *gin.Context) {
	devices, err := s.deviceService.ListDevices(c.Request.Context())
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, devices)
}

// createDevice creates a device for a user
func (s *Server) createDevice(c *gin.Context) {
	var req domain.CreateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(c.Request.Context(), "invalid create device request", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	device, err := s.deviceService.CreateDevice(c.Request.Context(), req)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, device)
}

// DeviceStatusUpdateRequest represents a device status change request
type DeviceStatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// updateDeviceStatus changes a device's status. A change to the current
// status is reported as unsuccessful rather than as an error.
func (s *Server) updateDeviceStatus(c *gin.Context) {
	var req DeviceStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	change, err := s.deviceService.UpdateDeviceStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrDeviceStatusUnchanged) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "unsuccessful",
				"message": "Device status was not changed",
			})
			return
		}
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "successful",
		"old_status": change.OldStatus,
		"new_status": change.NewStatus,
	})
}

// deleteDevice deletes a device
func (s *Server) deleteDevice(c *gin.Context) {
	if err := s.deviceService.DeleteDevice(c.Request.Context(), c.Param("id")); err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ============================================================================
// Files
// ============================================================================

// listFiles returns all content file records
func (s *Server) listFiles(c *gin.Context) {
	files, err := s.contentService.ListFiles(c.Request.Context())
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, files)
}

// createFile registers a content file for a user
func (s *Server) createFile(c *gin.Context) {
	var req domain.CreateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(c.Request.Context(), "invalid create file request", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	file, err := s.contentService.CreateFile(c.Request.Context(), req)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, file)
}

// uploadFile accepts a multipart upload, stores the payload in the media
// directory and registers the file record for the target user
func (s *Server) uploadFile(c *gin.Context) {
	userID := c.PostForm("user_id")
	description := c.PostForm("description")
	header, err := c.FormFile("file")
	if err != nil || userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	if _, err := s.userService.GetUser(c.Request.Context(), userID); err != nil {
		handleDomainError(c, err)
		return
	}

	// The stored name gets a unique prefix so two uploads of the same
	// source file cannot collide on disk
	name := uuid.New().String() + "_" + filepath.Base(header.Filename)

	file, err := s.contentService.CreateFile(c.Request.Context(), domain.CreateFileRequest{
		Description: description,
		Filename:    name,
		UserID:      userID,
	})
	if err != nil {
		handleDomainError(c, err)
		return
	}

	if err := os.MkdirAll(s.config.MediaDir, 0755); err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to create media dir", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to store file"})
		return
	}
	if err := c.SaveUploadedFile(header, filepath.Join(s.config.MediaDir, name)); err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to store uploaded file", "file", name, "error", err)
		_ = s.contentService.DeleteFile(c.Request.Context(), file.ID)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to store file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"result":   "uploaded",
		"file_id":  file.ID,
		"filename": file.Filename,
	})
}

// deleteFile deletes a content file record and its payload on disk
func (s *Server) deleteFile(c *gin.Context) {
	file, _ := s.database.GetFile(c.Param("id"))

	if err := s.contentService.DeleteFile(c.Request.Context(), c.Param("id")); err != nil {
		handleDomainError(c, err)
		return
	}

	if file != nil {
		path := filepath.Join(s.config.MediaDir, file.Filename)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.WarnContext(c.Request.Context(), "failed to remove file from disk", "file", file.Filename, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
