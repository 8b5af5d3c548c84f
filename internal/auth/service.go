package auth

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mediahub/internal/db"
	"github.com/mediahub/internal/domain"
)

// Service resolves opaque tokens to users. The token is a server-issued
// random string stored on the user row; there are no claims to parse.
type Service struct {
	database *db.DB
}

// NewService creates a token authentication service
func NewService(database *db.DB) *Service {
	return &Service{database: database}
}

// Authenticate returns the user owning the given token.
// Returns domain.ErrInvalidToken when the token matches no user.
func (s *Service) Authenticate(token string) (*db.User, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.database.GetUserByToken(token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}

	return user, nil
}
