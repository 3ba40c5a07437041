package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sangkips/salay-pos/pkg/apperror"
	"github.com/sangkips/salay-pos/pkg/utils"
)

// DefaultClerk names the counter when the clerk leaves the name blank.
const DefaultClerk = "counter"

// AuthService exchanges the shop's clerk PIN for a session token. With no PIN
// hash configured it is disabled and the API is open.
type AuthService struct {
	pinHash    string
	jwtManager *utils.JWTManager
	log        *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(pinHash string, jwtManager *utils.JWTManager, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{pinHash: pinHash, jwtManager: jwtManager, log: log}
}

// LoginOutput represents the login output
type LoginOutput struct {
	Token     string    `json:"token"`
	Clerk     string    `json:"clerk"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Enabled reports whether transaction routes require a token.
func (s *AuthService) Enabled() bool {
	return s.pinHash != ""
}

// Login checks the PIN and issues a token for the clerk.
func (s *AuthService) Login(ctx context.Context, clerk, pin string) (*LoginOutput, error) {
	if !s.Enabled() {
		return nil, apperror.NewBadRequestError("Clerk login is not enabled.")
	}

	clerk = strings.TrimSpace(clerk)
	if clerk == "" {
		clerk = DefaultClerk
	}

	if !utils.CheckPasswordHash(pin, s.pinHash) {
		s.log.Warn("clerk login rejected", zap.String("clerk", clerk))
		return nil, apperror.ErrInvalidPIN
	}

	token, expires, err := s.jwtManager.GenerateToken(clerk)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to issue token.", err)
	}

	s.log.Info("clerk logged in", zap.String("clerk", clerk))
	return &LoginOutput{Token: token, Clerk: clerk, ExpiresAt: expires}, nil
}

// Authenticate validates a bearer token and returns the clerk name.
func (s *AuthService) Authenticate(token string) (string, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return "", apperror.ErrInvalidToken
	}
	return claims.Clerk, nil
}
