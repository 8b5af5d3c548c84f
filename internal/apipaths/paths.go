package apipaths

// Single API surface paths. Used by routes and by the API client.

const (
	AdminUsers     = "/api/admin/users"
	AdminDevices   = "/api/admin/devices"
	AdminFiles     = "/api/admin/files"
	DeviceVerify   = "/api/device/verify"
	DeviceRegister = "/api/device/register"
	ContentCheck   = "/api/content/check"
	FilesUpload    = "/api/admin/files/upload"
	SystemStats    = "/api/system/stats"
	Health         = "/api/health"
	Me             = "/api/me"
)

func ContentDownload(filename string) string { return "/api/content/download/" + filename }

func AdminUserByID(userID string) string    { return "/api/admin/users/" + userID }
func AdminUserDevices(userID string) string { return "/api/admin/users/" + userID + "/devices" }
func AdminUserFiles(userID string) string   { return "/api/admin/users/" + userID + "/files" }
func AdminDeviceByID(deviceID string) string { return "/api/admin/devices/" + deviceID }
func AdminFileByID(fileID string) string     { return "/api/admin/files/" + fileID }
