package http

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// VerifyRequest represents a device verification request
type VerifyRequest struct {
	Token    string `json:"token" binding:"required"`
	DeviceID string `json:"device_id" binding:"required"`
}

// DeviceRegisterRequest represents a device self-registration request
type DeviceRegisterRequest struct {
	Token       string `json:"token" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// ContentCheckRequest represents a device's report of its local file set
type ContentCheckRequest struct {
	DeviceID string   `json:"device_id" binding:"required"`
	Files    []string `json:"files"`
}

// verifyDevice checks that a device belongs to the token's owner and is active
func (s *Server) verifyDevice(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	device, err := s.deviceService.VerifyDevice(c.Request.Context(), req.Token, req.DeviceID)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"device_id": device.ID,
	})
}

// registerDevice registers a new active device for the token's owner
func (s *Server) registerDevice(c *gin.Context) {
	var req DeviceRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	device, err := s.deviceService.RegisterDevice(c.Request.Context(), req.Token, req.Description)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":        "registered",
		"device_id":     device.ID,
		"device_status": device.Status,
		"user_id":       device.UserID,
	})
}

// checkContent diffs a device's reported files against its assigned content
func (s *Server) checkContent(c *gin.Context) {
	var req ContentCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	result, err := s.contentService.CheckContent(c.Request.Context(), req.DeviceID, req.Files)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// downloadFile serves a content file to a device. The credential and the
// device id travel as query parameters so a bare fetcher can call it.
func (s *Server) downloadFile(c *gin.Context) {
	token := c.Query("token")
	deviceID := c.Query("device_id")

	device, err := s.deviceService.VerifyDevice(c.Request.Context(), token, deviceID)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	file, err := s.contentService.GetUserFileByName(c.Request.Context(), device.UserID, c.Param("filename"))
	if err != nil {
		handleDomainError(c, err)
		return
	}

	path := filepath.Join(s.config.MediaDir, file.Filename)
	if _, err := os.Stat(path); err != nil {
		slog.ErrorContext(c.Request.Context(), "content file missing on disk", "file", file.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "File missing on server"})
		return
	}

	c.FileAttachment(path, file.Filename)
}

// getSystemStats returns host statistics for the dashboard
func (s *Server) getSystemStats(c *gin.Context) {
	stats, err := s.systemService.GetSystemStats(c.Request.Context())
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to collect system stats", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to collect system stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
