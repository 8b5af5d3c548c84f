package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mediahub/internal/auth"
)

// newTestServer returns a server that records the Authorization header of
// the last request it saw
func newTestServer(t *testing.T, lastAuth *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*lastAuth = r.Header.Values("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	}))
}

func TestClient_AuthorizationHeader(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantHeader bool
		wantValue  string
	}{
		{
			name:       "token present, raw value sent",
			token:      "abc123",
			wantHeader: true,
			wantValue:  "abc123",
		},
		{
			name:       "token absent, no header",
			token:      "",
			wantHeader: false,
		},
		{
			name:       "token is sent verbatim without scheme prefix",
			token:      "ADMIN_TOKEN",
			wantHeader: true,
			wantValue:  "ADMIN_TOKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lastAuth []string
			server := newTestServer(t, &lastAuth)
			defer server.Close()

			client := New(server.URL, auth.NewMemoryStore(tt.token))
			if err := client.Health(context.Background()); err != nil {
				t.Fatalf("Health() returned error: %v", err)
			}

			if !tt.wantHeader {
				if len(lastAuth) != 0 {
					t.Fatalf("expected no Authorization header, got %v", lastAuth)
				}
				return
			}

			if len(lastAuth) != 1 {
				t.Fatalf("expected exactly one Authorization header, got %v", lastAuth)
			}
			if lastAuth[0] != tt.wantValue {
				t.Errorf("Authorization = %q, want %q", lastAuth[0], tt.wantValue)
			}
		})
	}
}

func TestClient_TokenPickedUpPerRequest(t *testing.T) {
	var lastAuth []string
	server := newTestServer(t, &lastAuth)
	defer server.Close()

	store := auth.NewMemoryStore("")
	client := New(server.URL, store)

	// Unauthenticated request goes out without the header
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health() returned error: %v", err)
	}
	if len(lastAuth) != 0 {
		t.Fatalf("expected no Authorization header before login, got %v", lastAuth)
	}

	// A later login is picked up without rebuilding the client
	store.SetToken("abc123")
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health() returned error: %v", err)
	}
	if len(lastAuth) != 1 || lastAuth[0] != "abc123" {
		t.Errorf("Authorization after login = %v, want [abc123]", lastAuth)
	}

	// And so is a logout
	store.Clear()
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health() returned error: %v", err)
	}
	if len(lastAuth) != 0 {
		t.Errorf("expected no Authorization header after logout, got %v", lastAuth)
	}
}

func TestClient_OriginalRequestNotMutated(t *testing.T) {
	var lastAuth []string
	server := newTestServer(t, &lastAuth)
	defer server.Close()

	store := auth.NewMemoryStore("abc123")
	httpClient := newHTTPClient(store)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("Do() returned error: %v", err)
	}
	resp.Body.Close()

	// The transport clones before setting the header
	if got := req.Header.Get("Authorization"); got != "" {
		t.Errorf("original request header mutated to %q", got)
	}
	if len(lastAuth) != 1 || lastAuth[0] != "abc123" {
		t.Errorf("dispatched Authorization = %v, want [abc123]", lastAuth)
	}
}

func TestClient_ErrorStatusPassedThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Authentication required"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := New(server.URL, auth.NewMemoryStore(""))
	_, err := client.ListUsers(context.Background())
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestClient_DownloadFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/content/download/video_002.mp4" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("token") != "abc123" || r.URL.Query().Get("device_id") != "dev-1" {
			http.Error(w, `{"error":"Forbidden"}`, http.StatusForbidden)
			return
		}
		w.Write([]byte("mpeg bytes"))
	}))
	defer server.Close()

	client := New(server.URL, auth.NewMemoryStore("abc123"))

	body, err := client.DownloadFile(context.Background(), "dev-1", "video_002.mp4")
	if err != nil {
		t.Fatalf("DownloadFile() returned error: %v", err)
	}
	defer body.Close()

	got, err := io.ReadAll(body)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "mpeg bytes" {
		t.Errorf("payload = %q, want %q", got, "mpeg bytes")
	}

	if _, err := client.DownloadFile(context.Background(), "dev-1", "missing.mp4"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestNew_DefaultBaseURL(t *testing.T) {
	client := New("", auth.NewMemoryStore(""))
	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}

	client = New("http://example.test/", auth.NewMemoryStore(""))
	if client.baseURL != "http://example.test" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", client.baseURL)
	}
}
