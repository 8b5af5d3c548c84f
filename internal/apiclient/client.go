package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mediahub/internal/apipaths"
	"github.com/mediahub/internal/auth"
	"github.com/mediahub/internal/db"
	"github.com/mediahub/internal/domain"
	"github.com/mediahub/internal/system"
)

// DefaultBaseURL is the local backend address
const DefaultBaseURL = "http://localhost:5002"

const requestTimeout = 90 * time.Second

// Client handles communication with the mediahub backend. Requests carry
// the credential from the injected store; when the store is empty requests
// go out unauthenticated and the server decides what that means.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      auth.TokenStore
}

// New creates an API client against baseURL with credentials from store.
// An empty baseURL falls back to DefaultBaseURL.
func New(baseURL string, store auth.TokenStore) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: newHTTPClient(store),
		store:      store,
	}
}

// VerifyResponse is the server's answer to a device verification
type VerifyResponse struct {
	Status   string `json:"status"`
	DeviceID string `json:"device_id"`
}

// RegisterResponse is the server's answer to a device registration
type RegisterResponse struct {
	Result       string `json:"result"`
	DeviceID     string `json:"device_id"`
	DeviceStatus string `json:"device_status"`
	UserID       string `json:"user_id"`
}

// StatusChangeResponse is the server's answer to a device status update
type StatusChangeResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	OldStatus string `json:"old_status,omitempty"`
	NewStatus string `json:"new_status,omitempty"`
}

// Health checks that the backend is reachable
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, apipaths.Health, nil)
}

// Me returns the user owning the client's current credential
func (c *Client) Me(ctx context.Context) (*db.User, error) {
	var user db.User
	if err := c.get(ctx, apipaths.Me, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyDevice asks the server whether the device may pull content.
// The credential travels in the request body as well as the header; the
// device API predates the header convention.
func (c *Client) VerifyDevice(ctx context.Context, deviceID string) (*VerifyResponse, error) {
	token, _ := c.store.Token()
	body := map[string]string{"token": token, "device_id": deviceID}

	var resp VerifyResponse
	if err := c.post(ctx, apipaths.DeviceVerify, body, &resp); err != nil {
		return nil, fmt.Errorf("failed to verify device %s: %w", deviceID, err)
	}
	return &resp, nil
}

// RegisterDevice registers a new active device for the credential's owner
func (c *Client) RegisterDevice(ctx context.Context, description string) (*RegisterResponse, error) {
	token, _ := c.store.Token()
	body := map[string]string{"token": token, "description": description}

	var resp RegisterResponse
	if err := c.post(ctx, apipaths.DeviceRegister, body, &resp); err != nil {
		return nil, fmt.Errorf("failed to register device: %w", err)
	}
	return &resp, nil
}

// CheckContent reports the device's local file set and gets back the diff
// against what the server says the device should hold
func (c *Client) CheckContent(ctx context.Context, deviceID string, files []string) (*domain.ContentCheckResult, error) {
	if files == nil {
		files = []string{}
	}
	body := map[string]interface{}{"device_id": deviceID, "files": files}

	var result domain.ContentCheckResult
	if err := c.post(ctx, apipaths.ContentCheck, body, &result); err != nil {
		return nil, fmt.Errorf("content check failed for device %s: %w", deviceID, err)
	}
	return &result, nil
}

// DownloadFile streams a content file assigned to the device. The caller
// owns the returned reader and must close it. The credential rides in the
// query string alongside the device id; the download endpoint serves
// fetchers that cannot set headers.
func (c *Client) DownloadFile(ctx context.Context, deviceID, filename string) (io.ReadCloser, error) {
	token, _ := c.store.Token()
	q := url.Values{}
	q.Set("token", token)
	q.Set("device_id", deviceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+apipaths.ContentDownload(filename)+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", filename, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		resp.Body.Close()
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}

	return resp.Body, nil
}

// SystemStats fetches host statistics from the backend
func (c *Client) SystemStats(ctx context.Context) (*system.SystemStats, error) {
	var stats system.SystemStats
	if err := c.get(ctx, apipaths.SystemStats, &stats); err != nil {
		return nil, fmt.Errorf("failed to fetch system stats: %w", err)
	}
	return &stats, nil
}

// ListUsers fetches all users
func (c *Client) ListUsers(ctx context.Context) ([]*db.User, error) {
	var users []*db.User
	if err := c.get(ctx, apipaths.AdminUsers, &users); err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

// GetUser fetches a single user
func (c *Client) GetUser(ctx context.Context, userID string) (*db.User, error) {
	var user db.User
	if err := c.get(ctx, apipaths.AdminUserByID(userID), &user); err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	return &user, nil
}

// CreateUser creates a user
func (c *Client) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*db.User, error) {
	var user db.User
	if err := c.post(ctx, apipaths.AdminUsers, req, &user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// DeleteUser deletes a user
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	if err := c.delete(ctx, apipaths.AdminUserByID(userID)); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	return nil
}

// ListDevices fetches all devices
func (c *Client) ListDevices(ctx context.Context) ([]*db.Device, error) {
	var devices []*db.Device
	if err := c.get(ctx, apipaths.AdminDevices, &devices); err != nil {
		return nil, fmt.Errorf("failed to fetch devices: %w", err)
	}
	return devices, nil
}

// ListUserDevices fetches the devices belonging to a user
func (c *Client) ListUserDevices(ctx context.Context, userID string) ([]*db.Device, error) {
	var devices []*db.Device
	if err := c.get(ctx, apipaths.AdminUserDevices(userID), &devices); err != nil {
		return nil, fmt.Errorf("failed to fetch devices for user %s: %w", userID, err)
	}
	return devices, nil
}

// CreateDevice creates a device for a user
func (c *Client) CreateDevice(ctx context.Context, req domain.CreateDeviceRequest) (*db.Device, error) {
	var device db.Device
	if err := c.post(ctx, apipaths.AdminDevices, req, &device); err != nil {
		return nil, fmt.Errorf("failed to create device: %w", err)
	}
	return &device, nil
}

// UpdateDeviceStatus changes a device's status
func (c *Client) UpdateDeviceStatus(ctx context.Context, deviceID, status string) (*StatusChangeResponse, error) {
	body := map[string]string{"status": status}

	req, err := c.newRequest(ctx, http.MethodPatch, apipaths.AdminDeviceByID(deviceID), body)
	if err != nil {
		return nil, err
	}

	var resp StatusChangeResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("failed to update device %s: %w", deviceID, err)
	}
	return &resp, nil
}

// DeleteDevice deletes a device
func (c *Client) DeleteDevice(ctx context.Context, deviceID string) error {
	if err := c.delete(ctx, apipaths.AdminDeviceByID(deviceID)); err != nil {
		return fmt.Errorf("failed to delete device %s: %w", deviceID, err)
	}
	return nil
}

// ListFiles fetches all content file records
func (c *Client) ListFiles(ctx context.Context) ([]*db.File, error) {
	var files []*db.File
	if err := c.get(ctx, apipaths.AdminFiles, &files); err != nil {
		return nil, fmt.Errorf("failed to fetch files: %w", err)
	}
	return files, nil
}

// ListUserFiles fetches the content file records belonging to a user
func (c *Client) ListUserFiles(ctx context.Context, userID string) ([]*db.File, error) {
	var files []*db.File
	if err := c.get(ctx, apipaths.AdminUserFiles(userID), &files); err != nil {
		return nil, fmt.Errorf("failed to fetch files for user %s: %w", userID, err)
	}
	return files, nil
}

// CreateFile registers a content file for a user
func (c *Client) CreateFile(ctx context.Context, req domain.CreateFileRequest) (*db.File, error) {
	var file db.File
	if err := c.post(ctx, apipaths.AdminFiles, req, &file); err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return &file, nil
}

// DeleteFile deletes a content file record
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if err := c.delete(ctx, apipaths.AdminFileByID(fileID)); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", fileID, err)
	}
	return nil
}

// ============================================================================
// Request plumbing
// ============================================================================

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// do dispatches the request and decodes the response. Transport errors pass
// through wrapped but otherwise untouched; only requests are intercepted.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
