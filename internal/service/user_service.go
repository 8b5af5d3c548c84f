package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/mediahub/internal/db"
	"github.com/mediahub/internal/domain"
	"github.com/mediahub/internal/validation"
)

// userService implements the UserService interface
type userService struct {
	database *db.DB
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(database *db.DB, logger *slog.Logger) domain.UserService {
	return &userService{
		database: database,
		logger:   logger,
	}
}

// CreateUser creates a new user account
func (s *userService) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*db.User, error) {
	s.logger.DebugContext(ctx, "creating user", "username", req.Username)

	if err := validation.ValidateUsername(req.Username); err != nil {
		return nil, domain.NewDomainError(domain.ErrValidationFailed.Code, err.Error(), nil)
	}
	if err := validation.ValidateToken(req.Token); err != nil {
		return nil, domain.NewDomainError(domain.ErrValidationFailed.Code, err.Error(), nil)
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, domain.ErrRequiredFieldMissing
	}

	if _, err := s.database.GetUserByUsername(req.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, domain.WrapDatabaseOperation("lookup username", err)
	}

	user := db.NewUser(req.FullName, req.Username, req.Token)
	if err := s.database.CreateUser(user); err != nil {
		return nil, domain.WrapDatabaseOperation("create user", err)
	}

	s.logger.InfoContext(ctx, "user created", "userID", user.ID, "username", user.Username)
	return user, nil
}

// GetUser retrieves a user by ID
func (s *userService) GetUser(ctx context.Context, userID string) (*db.User, error) {
	user, err := s.database.GetUser(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapUserNotFound(userID, err)
		}
		return nil, domain.WrapDatabaseOperation("get user", err)
	}
	return user, nil
}

// ListUsers retrieves all users
func (s *userService) ListUsers(ctx context.Context) ([]*db.User, error) {
	users, err := s.database.GetAllUsers()
	if err != nil {
		return nil, domain.WrapDatabaseOperation("list users", err)
	}
	return users, nil
}

// DeleteUser deletes a user together with their devices and files
func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.database.DeleteUser(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.WrapUserNotFound(userID, err)
		}
		return domain.WrapDatabaseOperation("delete user", err)
	}

	s.logger.InfoContext(ctx, "user deleted", "userID", userID)
	return nil
}
