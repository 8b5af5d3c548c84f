package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mediahub/internal/config"
	"github.com/mediahub/internal/db"
)

// newTestServer builds a server on a fresh sqlite database seeded with one
// user (token "abc123") owning one active device and one file
func newTestServer(t *testing.T) (*Server, *db.User) {
	t.Helper()

	database, err := db.Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to init database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	user := db.NewUser("Test User", "tester", "abc123")
	if err := database.CreateUser(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	device := db.NewDevice("lobby player", db.DeviceStatusActive, user.ID)
	if err := database.CreateDevice(device); err != nil {
		t.Fatalf("failed to create device: %v", err)
	}
	if err := database.CreateFile(db.NewFile("promo", "video_001.mp4", user.ID)); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	cfg := &config.Config{
		Environment:   "production",
		ServerAddress: ":0",
		MediaDir:      t.TempDir(),
		Auth: config.AuthConfig{
			CookieName:   "user_token",
			CookieMaxAge: 3600,
		},
	}

	return NewServer(cfg, database), user
}

func TestNavigationGuard(t *testing.T) {
	server, _ := newTestServer(t)

	tests := []struct {
		name         string
		path         string
		cookie       string
		wantStatus   int
		wantLocation string
	}{
		{
			name:       "login page needs no auth",
			path:       "/login",
			wantStatus: http.StatusOK,
		},
		{
			name:       "login page proceeds even when authenticated",
			path:       "/login",
			cookie:     "abc123",
			wantStatus: http.StatusOK,
		},
		{
			name:         "dashboard redirects unauthenticated visitors",
			path:         "/",
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:         "devices redirects unauthenticated visitors",
			path:         "/devices",
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:         "files redirects unauthenticated visitors",
			path:         "/files",
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:         "stale session cookie is treated as unauthenticated",
			path:         "/devices",
			cookie:       "no-such-token",
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:       "dashboard proceeds when authenticated",
			path:       "/",
			cookie:     "abc123",
			wantStatus: http.StatusOK,
		},
		{
			name:       "devices proceeds when authenticated",
			path:       "/devices",
			cookie:     "abc123",
			wantStatus: http.StatusOK,
		},
		{
			name:       "files proceeds when authenticated",
			path:       "/files",
			cookie:     "abc123",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "user_token", Value: tt.cookie})
			}

			w := httptest.NewRecorder()
			server.Handler().ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantLocation != "" {
				if got := w.Header().Get("Location"); got != tt.wantLocation {
					t.Errorf("Location = %q, want %q", got, tt.wantLocation)
				}
			}
		})
	}
}

func TestLoginFlow(t *testing.T) {
	server, _ := newTestServer(t)

	// Valid token starts a session and redirects to the dashboard
	form := url.Values{"token": {"abc123"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if got := w.Header().Get("Location"); got != "/" {
		t.Errorf("Location = %q, want %q", got, "/")
	}

	var sessionCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "user_token" {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil {
		t.Fatal("expected session cookie to be set")
	}
	if sessionCookie.Value != "abc123" {
		t.Errorf("session cookie = %q, want raw token", sessionCookie.Value)
	}
}

func TestLoginFlow_InvalidToken(t *testing.T) {
	server, _ := newTestServer(t)

	form := url.Values{"token": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "user_token" && cookie.Value != "" {
			t.Error("session cookie set for invalid token")
		}
	}
}

func TestStreamFile(t *testing.T) {
	server, user := newTestServer(t)

	files, err := server.database.GetUserFiles(user.ID)
	if err != nil || len(files) != 1 {
		t.Fatalf("seed file missing: %v", err)
	}
	owned := files[0]
	payload := []byte("mpeg bytes")
	if err := os.WriteFile(filepath.Join(server.config.MediaDir, owned.Filename), payload, 0644); err != nil {
		t.Fatal(err)
	}

	other := db.NewUser("Other User", "other", "other-token")
	if err := server.database.CreateUser(other); err != nil {
		t.Fatal(err)
	}
	foreign := db.NewFile("not yours", "video_777.mp4", other.ID)
	if err := server.database.CreateFile(foreign); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name         string
		fileID       string
		cookie       string
		wantStatus   int
		wantLocation string
		wantBody     string
	}{
		{
			name:         "unauthenticated visitors are redirected",
			fileID:       owned.ID,
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:       "owner streams the file",
			fileID:     owned.ID,
			cookie:     "abc123",
			wantStatus: http.StatusOK,
			wantBody:   string(payload),
		},
		{
			name:       "someone else's file is not found",
			fileID:     foreign.ID,
			cookie:     "abc123",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown file is not found",
			fileID:     "missing",
			cookie:     "abc123",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/stream/"+tt.fileID, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "user_token", Value: tt.cookie})
			}

			w := httptest.NewRecorder()
			server.Handler().ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantLocation != "" {
				if got := w.Header().Get("Location"); got != tt.wantLocation {
					t.Errorf("Location = %q, want %q", got, tt.wantLocation)
				}
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestLogout(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "user_token", Value: "abc123"})

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if got := w.Header().Get("Location"); got != "/login" {
		t.Errorf("Location = %q, want %q", got, "/login")
	}
}
