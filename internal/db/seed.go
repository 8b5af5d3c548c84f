package db

import "log/slog"

// SeedDemoData inserts a demo user with one active device and a couple of
// content files. Does nothing if any user already exists.
func (db *DB) SeedDemoData() error {
	users, err := db.GetAllUsers()
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	user := NewUser("Demo Administrator", "admin", "ADMIN_TOKEN")
	if err := db.CreateUser(user); err != nil {
		return err
	}

	device := NewDevice("Lobby player", DeviceStatusActive, user.ID)
	if err := db.CreateDevice(device); err != nil {
		return err
	}

	files := []*File{
		NewFile("Promo clip", "video_001.mp4", user.ID),
		NewFile("Info banner", "video_003.mp4", user.ID),
	}
	for _, f := range files {
		if err := db.CreateFile(f); err != nil {
			return err
		}
	}

	slog.Info("Seeded demo data", "user", user.Username, "device", device.ID, "files", len(files))
	return nil
}
