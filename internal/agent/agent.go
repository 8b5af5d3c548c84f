package agent

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mediahub/internal/apiclient"
	"github.com/mediahub/internal/auth"
	"github.com/robfig/cron/v3"
)

// Agent keeps a device's local media directory in sync with the content the
// server has assigned to its owner: missing files are downloaded, withdrawn
// ones removed.
type Agent struct {
	config *Config
	client *apiclient.Client
	store  *auth.MemoryStore
	logger *slog.Logger
}

// New creates an agent from configuration
func New(cfg *Config, logger *slog.Logger) *Agent {
	store := auth.NewMemoryStore(cfg.Token)
	return &Agent{
		config: cfg,
		client: apiclient.New(cfg.ServerURL, store),
		store:  store,
		logger: logger,
	}
}

// Register registers this installation as a new active device and records
// the assigned device ID in the config struct (the caller persists it).
func (a *Agent) Register(ctx context.Context, description string) (string, error) {
	resp, err := a.client.RegisterDevice(ctx, description)
	if err != nil {
		return "", err
	}

	a.config.DeviceID = resp.DeviceID
	a.logger.Info("device registered", "deviceID", resp.DeviceID, "status", resp.DeviceStatus)
	return resp.DeviceID, nil
}

// Run performs one sync immediately, then on the configured cron schedule
// until the context is cancelled.
func (a *Agent) Run(ctx context.Context) error {
	if a.config.DeviceID == "" {
		return fmt.Errorf("no device_id configured; register the device first")
	}

	if err := a.SyncOnce(ctx); err != nil {
		a.logger.Warn("initial sync failed", "error", err)
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(a.config.Schedule, func() {
		if err := a.SyncOnce(ctx); err != nil {
			a.logger.Warn("sync failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", a.config.Schedule, err)
	}

	a.logger.Info("agent started", "deviceID", a.config.DeviceID, "schedule", a.config.Schedule)
	scheduler.Start()

	<-ctx.Done()
	stopCtx := scheduler.Stop()
	<-stopCtx.Done()
	return ctx.Err()
}

// SyncOnce verifies the device, reports the local file set and applies the
// server's verdict: stale files are removed, missing ones are downloaded.
func (a *Agent) SyncOnce(ctx context.Context) error {
	if _, err := a.client.VerifyDevice(ctx, a.config.DeviceID); err != nil {
		return fmt.Errorf("device verification failed: %w", err)
	}

	local, err := a.localFiles()
	if err != nil {
		return fmt.Errorf("failed to scan media dir: %w", err)
	}

	result, err := a.client.CheckContent(ctx, a.config.DeviceID, local)
	if err != nil {
		return err
	}

	if result.Actual {
		a.logger.Debug("content up to date", "deviceID", a.config.DeviceID, "files", len(local))
		return nil
	}

	for _, name := range result.ToDelete {
		path := filepath.Join(a.config.MediaDir, name)
		if err := os.Remove(path); err != nil {
			a.logger.Warn("failed to remove stale file", "file", name, "error", err)
			continue
		}
		a.logger.Info("removed stale file", "file", name)
	}

	for _, name := range result.ToDownload {
		if err := a.downloadFile(ctx, name); err != nil {
			a.logger.Warn("failed to download file", "file", name, "error", err)
			continue
		}
		a.logger.Info("downloaded file", "file", name)
	}

	return nil
}

// downloadFile fetches one file into the media directory. The payload goes
// to a .part file first so an interrupted transfer never leaves a
// truncated media file under its final name.
func (a *Agent) downloadFile(ctx context.Context, name string) error {
	body, err := a.client.DownloadFile(ctx, a.config.DeviceID, name)
	if err != nil {
		return err
	}
	defer body.Close()

	tmp := filepath.Join(a.config.MediaDir, name+".part")
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, filepath.Join(a.config.MediaDir, name))
}

// localFiles lists the file names currently present in the media directory
func (a *Agent) localFiles() ([]string, error) {
	entries, err := os.ReadDir(a.config.MediaDir)
	if err != nil {
		if os.IsNotExist(err) {
			if mkErr := os.MkdirAll(a.config.MediaDir, 0755); mkErr != nil {
				return nil, mkErr
			}
			return []string{}, nil
		}
		return nil, err
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
