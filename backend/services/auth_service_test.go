package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizapp/backend/models"
	"quizapp/backend/utils"
)

func TestSignupThenLogin(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg, &fakeVerifier{})

	_, err := svc.Signup("user@example.com", "password123", "Test User")
	require.NoError(t, err)

	token, err := svc.Login("user@example.com", "password123")
	require.NoError(t, err)

	email, err := utils.ParseToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig(), &fakeVerifier{})

	_, err := svc.Signup("user@example.com", "password123", "Test User")
	require.NoError(t, err)

	_, err = svc.Signup("user@example.com", "otherpassword", "Other Name")
	assert.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "user@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig(), &fakeVerifier{})

	_, err := svc.Signup("user@example.com", "password123", "Test User")
	require.NoError(t, err)

	_, err = svc.Login("user@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig(), &fakeVerifier{})

	_, err := svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginGoogleOnlyAccount(t *testing.T) {
	db := newTestDB(t)
	verifier := &fakeVerifier{claims: &GoogleClaims{
		Email:   "user@example.com",
		Name:    "Test User",
		Subject: "google-sub-1",
	}}
	svc := NewAuthService(db, testConfig(), verifier)

	_, err := svc.GoogleLogin(context.Background(), "credential")
	require.NoError(t, err)

	// Accounts without a local password can never log in locally.
	_, err = svc.Login("user@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGoogleLoginAutoRegisters(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	verifier := &fakeVerifier{claims: &GoogleClaims{
		Email:   "guser@example.com",
		Name:    "Google User",
		Subject: "google-sub-2",
	}}
	svc := NewAuthService(db, cfg, verifier)

	token, err := svc.GoogleLogin(context.Background(), "credential")
	require.NoError(t, err)

	email, err := utils.ParseToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "guser@example.com", email)

	var user models.User
	require.NoError(t, db.Where("email = ?", "guser@example.com").First(&user).Error)
	require.NotNil(t, user.GoogleID)
	assert.Equal(t, "google-sub-2", *user.GoogleID)
	assert.Nil(t, user.PasswordHash)

	// A second login reuses the account instead of creating another.
	_, err = svc.GoogleLogin(context.Background(), "credential")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "guser@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGoogleLoginInvalidCredential(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig(), &fakeVerifier{err: errVerifier})

	_, err := svc.GoogleLogin(context.Background(), "bad-credential")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
