package services

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
	"gorm.io/gorm"

	"quizapp/backend/config"
	"quizapp/backend/models"
	"quizapp/backend/utils"
)

// GoogleClaims are the identity claims extracted from a verified
// Google credential.
type GoogleClaims struct {
	Email   string
	Name    string
	Subject string
}

// GoogleVerifier checks an opaque federated credential against this
// application's registered client id.
type GoogleVerifier interface {
	Verify(ctx context.Context, credential string) (*GoogleClaims, error)
}

type googleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{clientID: clientID}
}

func (v *googleVerifier) Verify(ctx context.Context, credential string) (*GoogleClaims, error) {
	payload, err := idtoken.Validate(ctx, credential, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("verify google token: %w", err)
	}
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return nil, errors.New("google token has no email claim")
	}
	return &GoogleClaims{Email: email, Name: name, Subject: payload.Subject}, nil
}

type AuthService struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Verifier GoogleVerifier
}

func NewAuthService(db *gorm.DB, cfg *config.Config, verifier GoogleVerifier) *AuthService {
	return &AuthService{DB: db, Cfg: cfg, Verifier: verifier}
}

// Login authenticates a local account. A missing user and a wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (string, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if user.PasswordHash == nil || !utils.CheckPassword(*user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateToken(user.Email, user.Name, s.Cfg)
}

// Signup creates a local account and logs it in.
func (s *AuthService) Signup(email, password, name string) (string, error) {
	var existing models.User
	err := s.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return "", ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", err
	}

	user := models.User{Email: email, Name: name, PasswordHash: &hash}
	if err := s.DB.Create(&user).Error; err != nil {
		return "", err
	}

	return utils.GenerateToken(user.Email, user.Name, s.Cfg)
}

// GoogleLogin verifies a Google credential and logs the account in,
// registering it first if it has never been seen. The response is
// identical either way.
func (s *AuthService) GoogleLogin(ctx context.Context, credential string) (string, error) {
	claims, err := s.Verifier.Verify(ctx, credential)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	if _, _, err := s.resolveGoogleUser(claims); err != nil {
		return "", err
	}

	return utils.GenerateToken(claims.Email, claims.Name, s.Cfg)
}

// resolveGoogleUser finds the account for a verified Google identity,
// creating it on first login. The created flag keeps the side effect
// explicit for callers and tests.
func (s *AuthService) resolveGoogleUser(claims *GoogleClaims) (*models.User, bool, error) {
	var user models.User
	err := s.DB.Where("email = ?", claims.Email).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	sub := claims.Subject
	user = models.User{Email: claims.Email, Name: claims.Name, GoogleID: &sub}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, false, err
	}
	return &user, true, nil
}
