package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediahub/internal/apipaths"
)

// setupRoutes configures all API and web routes
func (s *Server) setupRoutes() {
	// Health check endpoint (no auth required)
	s.engine.GET(apipaths.Health, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "mediahub",
		})
	})

	// Admin API - protected by token authentication
	admin := s.engine.Group("/api/admin")
	admin.Use(s.tokenAuthMiddleware())
	{
		s.setupUserRoutes(admin)
		s.setupDeviceRoutes(admin)
		s.setupFileRoutes(admin)
	}

	// Authenticated caller info
	me := s.engine.Group("/api")
	me.Use(s.tokenAuthMiddleware())
	{
		me.GET("/me", s.getCurrentUser)
		me.GET("/system/stats", s.getSystemStats)
	}

	// Device API - the token travels inside the request body, set by devices
	// that have not gone through the header convention
	device := s.engine.Group("/api")
	{
		device.POST("/device/verify", s.verifyDevice)
		device.POST("/device/register", s.registerDevice)
		device.POST("/content/check", s.checkContent)
		device.GET("/content/download/:filename", s.downloadFile)
	}

	// Web UI with navigation guard
	s.setupWebRoutes()
}

func (s *Server) setupUserRoutes(admin *gin.RouterGroup) {
	users := admin.Group("/users")
	{
		users.GET("", s.listUsers)
		users.POST("", s.createUser)
		users.GET("/:id", s.getUser)
		users.DELETE("/:id", s.deleteUser)
		users.GET("/:id/devices", s.listUserDevices)
		users.GET("/:id/files", s.listUserFiles)
	}
}

func (s *Server) setupDeviceRoutes(admin *gin.RouterGroup) {
	devices := admin.Group("/devices")
	{
		devices.GET("", s.listDevices)
		devices.POST("", s.createDevice)
		devices.PATCH("/:id", s.updateDeviceStatus)
		devices.DELETE("/:id", s.deleteDevice)
	}
}

func (s *Server) setupFileRoutes(admin *gin.RouterGroup) {
	files := admin.Group("/files")
	{
		files.GET("", s.listFiles)
		files.POST("", s.createFile)
		files.POST("/upload", s.uploadFile)
		files.DELETE("/:id", s.deleteFile)
	}
}

// getCurrentUser returns the authenticated user info
func (s *Server) getCurrentUser(c *gin.Context) {
	user, exists := getUserFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "Not authenticated",
		})
		return
	}

	c.JSON(http.StatusOK, user)
}
