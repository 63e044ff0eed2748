package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/pkg/auth"
	"github.com/aranya-labs/aranya/pkg/crypt"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService()

	user, token, err := svc.Register("Asha", "asha@aranya.test", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEmpty(t, token)

	// stored hash, not the password
	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NotEqual(t, "secret-password", stored.Password)

	got, token, err := svc.Login("asha@aranya.test", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)
	assert.NotNil(t, got.LastLoginAt)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	_, _, err := svc.Register("Asha", "dup@aranya.test", "secret-password")
	require.NoError(t, err)
	_, _, err = svc.Register("Another", "dup@aranya.test", "other-password")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	_, _, err := svc.Register("Asha", "wrong@aranya.test", "secret-password")
	require.NoError(t, err)

	_, _, err = svc.Login("wrong@aranya.test", "not-it")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login("nobody@aranya.test", "secret-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestForgotPasswordUnknownEmailSilent(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()
	assert.NoError(t, svc.ForgotPassword("ghost@aranya.test"))
}

func TestResetPasswordRoundTrip(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService()

	user, _, err := svc.Register("Asha", "reset@aranya.test", "old-password")
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword("reset@aranya.test"))

	// only the hash is persisted, so recover the raw token is impossible
	// from the row; simulate the emailed token instead
	raw := "4cc0de0000000000000000000000000000000000000000000000000000000000"
	require.NoError(t, db.Where("user_id = ?", user.ID).Delete(&models.PasswordResetToken{}).Error)
	require.NoError(t, db.Create(&models.PasswordResetToken{
		UserID:    user.ID,
		Token:     crypt.Hash(raw),
		ExpiresAt: time.Now().Add(time.Hour),
	}).Error)

	require.NoError(t, svc.ResetPassword(raw, "new-password"))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.True(t, auth.CheckPassword(stored.Password, "new-password"))

	// token is single-use
	err = svc.ResetPassword(raw, "another-password")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService()

	user, _, err := svc.Register("Asha", "expired@aranya.test", "old-password")
	require.NoError(t, err)

	raw := "deadbeef00000000000000000000000000000000000000000000000000000000"
	require.NoError(t, db.Create(&models.PasswordResetToken{
		UserID:    user.ID,
		Token:     crypt.Hash(raw),
		ExpiresAt: time.Now().Add(-time.Minute),
	}).Error)

	err = svc.ResetPassword(raw, "new-password")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}
