package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/aranya-labs/aranya/app/jobs"
	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/app/repositories"
	"github.com/aranya-labs/aranya/config"
	"github.com/aranya-labs/aranya/pkg/auth"
	"github.com/aranya-labs/aranya/pkg/crypt"
	"github.com/aranya-labs/aranya/pkg/logger"
	"github.com/aranya-labs/aranya/pkg/orm"
	"github.com/aranya-labs/aranya/pkg/queue"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

const resetTokenTTL = time.Hour

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Register creates an account and returns it with a session token.
func (s *AuthService) Register(name, email, password string) (models.User, string, error) {
	if _, err := s.users.FindByEmail(email); err == nil {
		return models.User{}, "", ErrEmailTaken
	} else if !orm.IsNotFound(err) {
		return models.User{}, "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     models.RoleCustomer,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, "", err
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Login checks credentials and returns the user with a session token.
func (s *AuthService) Login(email, password string) (models.User, string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if orm.IsNotFound(err) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}
	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.users.Update(&user); err != nil {
		logger.Warn("auth: could not record login time", "user_id", user.ID, "error", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Me loads the authenticated user.
func (s *AuthService) Me(userID uint) (models.User, error) {
	return s.users.FindByID(userID)
}

// ForgotPassword issues a reset token and queues the email. An unknown
// email is reported as success so the endpoint cannot be used to probe
// for accounts.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if orm.IsNotFound(err) {
			return nil
		}
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("auth: generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)

	// Only the hash is stored; a database leak does not expose live
	// reset links.
	if err := s.users.CreateResetToken(&models.PasswordResetToken{
		UserID:    user.ID,
		Token:     crypt.Hash(token),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}); err != nil {
		return err
	}

	resetURL := config.AppURL() + "/reset-password?token=" + token
	if err := queue.Dispatch(&jobs.PasswordResetEmail{
		Email:    user.Email,
		Name:     user.Name,
		ResetURL: resetURL,
	}); err != nil {
		logger.Error("auth: queue reset email", "user_id", user.ID, "error", err)
	}
	return nil
}

// ResetPassword consumes a reset token and replaces the password.
func (s *AuthService) ResetPassword(token, password string) error {
	hashed := crypt.Hash(token)
	t, err := s.users.FindResetToken(hashed)
	if err != nil {
		if orm.IsNotFound(err) {
			return ErrInvalidResetToken
		}
		return err
	}

	user, err := s.users.FindByID(t.UserID)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user.Password = hash
	if err := s.users.Update(&user); err != nil {
		return err
	}
	return s.users.ConsumeResetToken(hashed)
}
