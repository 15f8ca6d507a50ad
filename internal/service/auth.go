package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
)

type AuthService struct {
	Users  CredentialStore
	Hasher hash.Hasher
	Events events.Publisher

	dummyOnce sync.Once
	dummy     string
}

// dummyDigest is compared against on unknown usernames so both failure paths
// pay for one hash comparison.
func (s *AuthService) dummyDigest() string {
	s.dummyOnce.Do(func() {
		s.dummy, _ = s.Hasher.HashPassword("storefront-dummy-password")
	})
	return s.dummy
}

// Register creates an account and returns its id. Username is checked before
// email, so a request colliding on both reports the username.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return "", fmt.Errorf("username, email and password are required: %w", domain.ErrValidation)
	}

	taken, err := s.Users.UsernameTaken(ctx, username)
	if err != nil {
		return "", err
	}
	if taken {
		return "", domain.ErrDuplicateUsername
	}
	taken, err = s.Users.EmailTaken(ctx, email)
	if err != nil {
		return "", err
	}
	if taken {
		return "", domain.ErrDuplicateEmail
	}

	digest, err := s.Hasher.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Username: username, Email: email, PasswordHash: digest}
	if err := s.Users.CreateUser(ctx, user); err != nil {
		return "", err
	}

	logging.FromContext(ctx).With("svc", "auth").Info("user_registered", "user_id", user.ID)
	events.Emit(ctx, s.Events, events.TopicUsers, user.ID, map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user.ID, nil
}

// Authenticate returns the user when the password matches. Unknown usernames
// and wrong passwords produce the same ErrAuthFailure.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.Users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.Hasher.CheckPassword(s.dummyDigest(), password)
			return nil, domain.ErrAuthFailure
		}
		return nil, err
	}
	if !s.Hasher.CheckPassword(user.PasswordHash, password) {
		return nil, domain.ErrAuthFailure
	}

	events.Emit(ctx, s.Events, events.TopicUsers, user.ID, map[string]any{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user, nil
}
