package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/couple-gallery/internal/apperror"
	"github.com/sakif/couple-gallery/internal/auth"
)

// AuthService turns the admin password into admin tokens.
//
//	AuthHandler (HTTP) → AuthService → PasswordService (bcrypt)
//	                                 ↘ TokenService (JWT)
type AuthService struct {
	passwords *auth.PasswordService
	tokens    *auth.TokenService
	logger    *slog.Logger
}

func NewAuthService(passwords *auth.PasswordService, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	if !passwords.Configured() {
		logger.Warn("no admin password configured; every login will be rejected")
	}
	return &AuthService{passwords: passwords, tokens: tokens, logger: logger}
}

// Login checks password and issues a token. Any mismatch, including an
// unconfigured password, is apperror.ErrUnauthorized.
func (s *AuthService) Login(_ context.Context, password string) (string, error) {
	if err := s.passwords.Verify(password); err != nil {
		if errors.Is(err, auth.ErrWrongPassword) || errors.Is(err, auth.ErrNoPassword) {
			s.logger.Warn("admin login rejected", slog.String("reason", err.Error()))
			return "", apperror.Unauthorized("invalid password")
		}
		return "", fmt.Errorf("verifying password: %w", err)
	}

	token, err := s.tokens.Generate()
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("admin logged in")
	return token, nil
}

// Validate reports whether token would pass the admin gate.
func (s *AuthService) Validate(token string) error {
	if err := s.tokens.Validate(token); err != nil {
		return apperror.Unauthorized("invalid or missing admin token")
	}
	return nil
}
