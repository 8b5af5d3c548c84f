package agent

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mediahub/internal/apipaths"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agent.yaml")

	content := []byte("token: abc123\ndevice_id: dev-1\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}

	if cfg.Token != "abc123" {
		t.Errorf("Token = %q, want abc123", cfg.Token)
	}
	if cfg.DeviceID != "dev-1" {
		t.Errorf("DeviceID = %q, want dev-1", cfg.DeviceID)
	}
	// Defaults fill the rest
	if cfg.ServerURL != "http://localhost:5002" {
		t.Errorf("ServerURL = %q, want default", cfg.ServerURL)
	}
	if cfg.Schedule != "@every 5m" {
		t.Errorf("Schedule = %q, want default", cfg.Schedule)
	}
}

func TestLoadConfig_MissingToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	if err := os.WriteFile(path, []byte("device_id: dev-1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for config without token")
	}
}

// newFakeBackend serves verify, content-check and download endpoints;
// toDownload and toDelete are the server's verdict, and each requested
// download is answered with the file's name as its payload
func newFakeBackend(t *testing.T, toDownload, toDelete []string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(apipaths.DeviceVerify, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "device_id": "dev-1"})
	})
	mux.HandleFunc(apipaths.ContentCheck, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			DeviceID string   `json:"device_id"`
			Files    []string `json:"files"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"actual":      len(toDownload) == 0 && len(toDelete) == 0,
			"to_download": toDownload,
			"to_delete":   toDelete,
		})
	})
	mux.HandleFunc(apipaths.ContentDownload(""), func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") == "" || r.URL.Query().Get("device_id") == "" {
			http.Error(w, "missing credentials", http.StatusForbidden)
			return
		}
		io.WriteString(w, filepath.Base(r.URL.Path))
	})
	return httptest.NewServer(mux)
}

func TestAgent_SyncOnceRemovesStaleFiles(t *testing.T) {
	backend := newFakeBackend(t, nil, []string{"old.mp4"})
	defer backend.Close()

	mediaDir := t.TempDir()
	for _, name := range []string{"old.mp4", "keep.mp4"} {
		if err := os.WriteFile(filepath.Join(mediaDir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := &Config{
		ServerURL: backend.URL,
		Token:     "abc123",
		DeviceID:  "dev-1",
		MediaDir:  mediaDir,
		Schedule:  "@every 1h",
	}
	a := New(cfg, testLogger())

	if err := a.SyncOnce(context.Background()); err != nil {
		t.Fatalf("SyncOnce() returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(mediaDir, "old.mp4")); !os.IsNotExist(err) {
		t.Error("stale file old.mp4 was not removed")
	}
	if _, err := os.Stat(filepath.Join(mediaDir, "keep.mp4")); err != nil {
		t.Errorf("keep.mp4 should survive sync: %v", err)
	}
}

func TestAgent_SyncOnceDownloadsMissingFiles(t *testing.T) {
	backend := newFakeBackend(t, []string{"video_002.mp4", "video_003.mp4"}, nil)
	defer backend.Close()

	mediaDir := t.TempDir()
	cfg := &Config{
		ServerURL: backend.URL,
		Token:     "abc123",
		DeviceID:  "dev-1",
		MediaDir:  mediaDir,
		Schedule:  "@every 1h",
	}
	a := New(cfg, testLogger())

	if err := a.SyncOnce(context.Background()); err != nil {
		t.Fatalf("SyncOnce() returned error: %v", err)
	}

	for _, name := range []string{"video_002.mp4", "video_003.mp4"} {
		got, err := os.ReadFile(filepath.Join(mediaDir, name))
		if err != nil {
			t.Fatalf("%s was not downloaded: %v", name, err)
		}
		if string(got) != name {
			t.Errorf("%s payload = %q, want %q", name, got, name)
		}
		if _, err := os.Stat(filepath.Join(mediaDir, name+".part")); !os.IsNotExist(err) {
			t.Errorf("partial file left behind for %s", name)
		}
	}
}

func TestAgent_SyncOnceCreatesMediaDir(t *testing.T) {
	backend := newFakeBackend(t, nil, nil)
	defer backend.Close()

	mediaDir := filepath.Join(t.TempDir(), "not-yet-created")
	cfg := &Config{
		ServerURL: backend.URL,
		Token:     "abc123",
		DeviceID:  "dev-1",
		MediaDir:  mediaDir,
		Schedule:  "@every 1h",
	}
	a := New(cfg, testLogger())

	if err := a.SyncOnce(context.Background()); err != nil {
		t.Fatalf("SyncOnce() returned error: %v", err)
	}
	if _, err := os.Stat(mediaDir); err != nil {
		t.Errorf("media dir was not created: %v", err)
	}
}
