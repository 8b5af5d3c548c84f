package db

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
	dbPath string
}

// Init initializes the database connection and runs migrations
func Init(dbPath string) (*DB, error) {
	// Ensure data directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	// Open database connection
	sqlDB, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}

	db := &DB{sqlDB, dbPath}

	// Run migrations
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// GetDBPath returns the database file path
func (db *DB) GetDBPath() string {
	return db.dbPath
}

// migrate runs database migrations
func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			full_name TEXT NOT NULL,
			username TEXT NOT NULL UNIQUE,
			token TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS devices (
			id TEXT PRIMARY KEY,
			description TEXT,
			status TEXT NOT NULL DEFAULT 'unverified',
			user_id TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			id TEXT PRIMARY KEY,
			description TEXT,
			filename TEXT NOT NULL,
			user_id TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_devices_user_id ON devices(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_files_user_id ON files(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_users_token ON users(token)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

// ============================================================================
// Users
// ============================================================================

// CreateUser creates a new user
func (db *DB) CreateUser(user *User) error {
	_, err := db.Exec(
		"INSERT INTO users (id, full_name, username, token, created_at) VALUES (?, ?, ?, ?, ?)",
		user.ID, user.FullName, user.Username, user.Token, user.CreatedAt,
	)
	return err
}

// GetAllUsers retrieves all users
func (db *DB) GetAllUsers() ([]*User, error) {
	rows, err := db.Query("SELECT id, full_name, username, token, created_at FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(&user.ID, &user.FullName, &user.Username, &user.Token, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// GetUser retrieves a user by ID
func (db *DB) GetUser(id string) (*User, error) {
	user := &User{}
	err := db.QueryRow(
		"SELECT id, full_name, username, token, created_at FROM users WHERE id = ?", id,
	).Scan(&user.ID, &user.FullName, &user.Username, &user.Token, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByToken retrieves a user by their opaque token
func (db *DB) GetUserByToken(token string) (*User, error) {
	user := &User{}
	err := db.QueryRow(
		"SELECT id, full_name, username, token, created_at FROM users WHERE token = ?", token,
	).Scan(&user.ID, &user.FullName, &user.Username, &user.Token, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username
func (db *DB) GetUserByUsername(username string) (*User, error) {
	user := &User{}
	err := db.QueryRow(
		"SELECT id, full_name, username, token, created_at FROM users WHERE username = ?", username,
	).Scan(&user.ID, &user.FullName, &user.Username, &user.Token, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser deletes a user and cascades to their devices and files
func (db *DB) DeleteUser(id string) error {
	result, err := db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ============================================================================
// Devices
// ============================================================================

// CreateDevice creates a new device
func (db *DB) CreateDevice(device *Device) error {
	_, err := db.Exec(
		"INSERT INTO devices (id, description, status, user_id, created_at) VALUES (?, ?, ?, ?, ?)",
		device.ID, device.Description, device.Status, device.UserID, device.CreatedAt,
	)
	return err
}

// GetAllDevices retrieves all devices
func (db *DB) GetAllDevices() ([]*Device, error) {
	return db.queryDevices("SELECT id, description, status, user_id, created_at FROM devices ORDER BY created_at DESC")
}

// GetUserDevices retrieves all devices belonging to a user
func (db *DB) GetUserDevices(userID string) ([]*Device, error) {
	return db.queryDevices("SELECT id, description, status, user_id, created_at FROM devices WHERE user_id = ? ORDER BY created_at DESC", userID)
}

func (db *DB) queryDevices(query string, args ...interface{}) ([]*Device, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []*Device
	for rows.Next() {
		device := &Device{}
		if err := rows.Scan(&device.ID, &device.Description, &device.Status, &device.UserID, &device.CreatedAt); err != nil {
			return nil, err
		}
		devices = append(devices, device)
	}

	return devices, rows.Err()
}

// GetDevice retrieves a device by ID
func (db *DB) GetDevice(id string) (*Device, error) {
	device := &Device{}
	err := db.QueryRow(
		"SELECT id, description, status, user_id, created_at FROM devices WHERE id = ?", id,
	).Scan(&device.ID, &device.Description, &device.Status, &device.UserID, &device.CreatedAt)
	if err != nil {
		return nil, err
	}
	return device, nil
}

// UpdateDeviceStatus sets a device's status
func (db *DB) UpdateDeviceStatus(id, status string) error {
	result, err := db.Exec("UPDATE devices SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteDevice deletes a device
func (db *DB) DeleteDevice(id string) error {
	result, err := db.Exec("DELETE FROM devices WHERE id = ?", id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ============================================================================
// Files
// ============================================================================

// CreateFile creates a new file record
func (db *DB) CreateFile(file *File) error {
	_, err := db.Exec(
		"INSERT INTO files (id, description, filename, user_id, created_at) VALUES (?, ?, ?, ?, ?)",
		file.ID, file.Description, file.Filename, file.UserID, file.CreatedAt,
	)
	return err
}

// GetAllFiles retrieves all file records
func (db *DB) GetAllFiles() ([]*File, error) {
	return db.queryFiles("SELECT id, description, filename, user_id, created_at FROM files ORDER BY created_at DESC")
}

// GetUserFiles retrieves all file records belonging to a user
func (db *DB) GetUserFiles(userID string) ([]*File, error) {
	return db.queryFiles("SELECT id, description, filename, user_id, created_at FROM files WHERE user_id = ? ORDER BY created_at DESC", userID)
}

func (db *DB) queryFiles(query string, args ...interface{}) ([]*File, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*File
	for rows.Next() {
		file := &File{}
		if err := rows.Scan(&file.ID, &file.Description, &file.Filename, &file.UserID, &file.CreatedAt); err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, rows.Err()
}

// GetUserFileByFilename retrieves a user's file record by its filename
func (db *DB) GetUserFileByFilename(userID, filename string) (*File, error) {
	file := &File{}
	err := db.QueryRow(
		"SELECT id, description, filename, user_id, created_at FROM files WHERE user_id = ? AND filename = ?", userID, filename,
	).Scan(&file.ID, &file.Description, &file.Filename, &file.UserID, &file.CreatedAt)
	if err != nil {
		return nil, err
	}
	return file, nil
}

// GetFile retrieves a file record by ID
func (db *DB) GetFile(id string) (*File, error) {
	file := &File{}
	err := db.QueryRow(
		"SELECT id, description, filename, user_id, created_at FROM files WHERE id = ?", id,
	).Scan(&file.ID, &file.Description, &file.Filename, &file.UserID, &file.CreatedAt)
	if err != nil {
		return nil, err
	}
	return file, nil
}

// DeleteFile deletes a file record
func (db *DB) DeleteFile(id string) error {
	result, err := db.Exec("DELETE FROM files WHERE id = ?", id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
