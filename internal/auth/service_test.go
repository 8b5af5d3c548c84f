package auth

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mediahub/internal/db"
	"github.com/mediahub/internal/domain"
)

func TestService_Authenticate(t *testing.T) {
	database, err := db.Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to init database: %v", err)
	}
	defer database.Close()

	user := db.NewUser("Test User", "tester", "abc123")
	if err := database.CreateUser(user); err != nil {
		t.Fatal(err)
	}

	svc := NewService(database)

	got, err := svc.Authenticate("abc123")
	if err != nil {
		t.Fatalf("Authenticate() returned error: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("user ID = %q, want %q", got.ID, user.ID)
	}

	if _, err := svc.Authenticate("wrong"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("error = %v, want invalid token", err)
	}

	if _, err := svc.Authenticate(""); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("error = %v, want invalid token for empty string", err)
	}
}
