package http

import (
	"embed"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/mediahub/internal/db"
)

//go:embed templates/*.html
var templatesFS embed.FS

// RouteMeta carries static annotations for a web route. Auth is the sole
// gating signal; a route without it requires no authentication.
type RouteMeta struct {
	Auth bool
}

// WebRoute maps a URL path to a view handler with its metadata
type WebRoute struct {
	Path    string
	Name    string
	Meta    RouteMeta
	Handler gin.HandlerFunc
}

// webRoutes is the declarative route table for the web UI
func (s *Server) webRoutes() []WebRoute {
	return []WebRoute{
		{Path: "/login", Name: "login", Handler: s.loginPage},
		{Path: "/", Name: "dashboard", Meta: RouteMeta{Auth: true}, Handler: s.dashboardPage},
		{Path: "/devices", Name: "devices", Meta: RouteMeta{Auth: true}, Handler: s.devicesPage},
		{Path: "/files", Name: "files", Meta: RouteMeta{Auth: true}, Handler: s.filesPage},
	}
}

// setupWebRoutes registers the route table plus the login form endpoints,
// each route behind the navigation guard for its metadata
func (s *Server) setupWebRoutes() {
	for _, route := range s.webRoutes() {
		s.engine.GET(route.Path, s.navigationGuard(route.Meta), route.Handler)
	}

	s.engine.POST("/login", s.loginSubmit)
	s.engine.GET("/logout", s.logout)
	s.engine.GET("/stream/:id", s.navigationGuard(RouteMeta{Auth: true}), s.streamFile)
}

// navigationGuard runs before every navigation. If the target route requires
// authentication and the visitor has none, the navigation is redirected to
// /login; the originally requested path is not preserved. In every other
// case the navigation proceeds to the requested target.
func (s *Server) navigationGuard(meta RouteMeta) gin.HandlerFunc {
	return func(c *gin.Context) {
		if meta.Auth {
			if _, ok := s.currentWebUser(c); !ok {
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// currentWebUser resolves the session cookie to a user. A missing or stale
// cookie is a normal unauthenticated state.
func (s *Server) currentWebUser(c *gin.Context) (*db.User, bool) {
	cookie, err := c.Cookie(s.config.Auth.CookieName)
	if err != nil || cookie == "" {
		return nil, false
	}

	user, err := s.tokens.Authenticate(cookie)
	if err != nil {
		return nil, false
	}
	return user, true
}

// loginPage renders the login form
func (s *Server) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// loginSubmit validates the submitted token and starts a session
func (s *Server) loginSubmit(c *gin.Context) {
	token := c.PostForm("token")

	if _, err := s.tokens.Authenticate(token); err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": "Invalid token"})
		return
	}

	// The session cookie is the raw token itself; the db lookup is the
	// validation on every request
	c.SetCookie(s.config.Auth.CookieName, token, s.config.Auth.CookieMaxAge, "/", "", s.config.Auth.SecureCookie, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// logout clears the session and returns to the login page
func (s *Server) logout(c *gin.Context) {
	c.SetCookie(s.config.Auth.CookieName, "", -1, "/", "", s.config.Auth.SecureCookie, true)
	c.Redirect(http.StatusFound, "/login")
}

// streamFile serves one of the signed-in user's content files for playback
func (s *Server) streamFile(c *gin.Context) {
	user, _ := s.currentWebUser(c)

	file, err := s.database.GetFile(c.Param("id"))
	if err != nil || file.UserID != user.ID {
		c.String(http.StatusNotFound, "File not found")
		return
	}

	path := filepath.Join(s.config.MediaDir, file.Filename)
	if _, err := os.Stat(path); err != nil {
		c.String(http.StatusNotFound, "File not found")
		return
	}

	c.File(path)
}

// dashboardPage renders the user's devices and files overview
func (s *Server) dashboardPage(c *gin.Context) {
	user, _ := s.currentWebUser(c)

	devices, err := s.database.GetUserDevices(user.ID)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to load devices", "error", err)
	}
	files, err := s.database.GetUserFiles(user.ID)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to load files", "error", err)
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"User":    user,
		"Devices": devices,
		"Files":   files,
	})
}

// devicesPage renders the user's devices
func (s *Server) devicesPage(c *gin.Context) {
	user, _ := s.currentWebUser(c)

	devices, err := s.database.GetUserDevices(user.ID)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to load devices", "error", err)
	}

	c.HTML(http.StatusOK, "devices.html", gin.H{
		"User":    user,
		"Devices": devices,
	})
}

// filesPage renders the user's content files
func (s *Server) filesPage(c *gin.Context) {
	user, _ := s.currentWebUser(c)

	files, err := s.database.GetUserFiles(user.ID)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to load files", "error", err)
	}

	c.HTML(http.StatusOK, "files.html", gin.H{
		"User":  user,
		"Files": files,
	})
}
