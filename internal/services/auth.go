package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gestion-rh/apiserver/internal/audit"
	"github.com/gestion-rh/apiserver/internal/store"
	"github.com/gestion-rh/apiserver/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/op/go-logging"
	"golang.org/x/crypto/bcrypt"
)

// Authentication failures, mapped to HTTP statuses at the handler boundary.
var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleNotAllowed     = errors.New("role not allowed")
	ErrInvalidToken       = errors.New("invalid token")
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// SessionClaims are the JWT claims carried by both access and refresh tokens.
type SessionClaims struct {
	UserID    int    `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// AuthResult is the payload of a successful authentication.
type AuthResult struct {
	User         types.User
	Role         string
	AccessToken  string
	RefreshToken string
}

// AuthService validates credentials, enforces the role enumeration and issues
// signed token pairs.
type AuthService struct {
	users      UserRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        *logging.Logger
	recorder   *audit.Recorder
}

func NewAuthService(
	users UserRepository,
	secret string,
	accessTTL, refreshTTL time.Duration,
	log *logging.Logger,
	recorder *audit.Recorder,
) *AuthService {
	return &AuthService{
		users:      users,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
		recorder:   recorder,
	}
}

// Authenticate checks the credentials against the user store and, on success,
// returns the user together with a signed access/refresh token pair. An
// unknown email and a wrong password fail identically so that registered
// emails cannot be probed.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(email)
	s.log.Infof("tentative de connexion pour: %s", email)

	if email == "" || password == "" {
		s.log.Warning("tentative de connexion sans email ou mot de passe")
		return AuthResult{}, ErrMissingCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.log.Warningf("échec de connexion pour %s: utilisateur inexistant", email)
			s.recorder.LoginFailure(ctx, email, "unknown_email")
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.log.Warningf("échec de connexion pour %s: mot de passe incorrect", email)
		s.recorder.LoginFailure(ctx, email, "wrong_password")
		return AuthResult{}, ErrInvalidCredentials
	}

	role := types.NormalizeRole(user.Role)
	if !types.IsValidRole(role) {
		s.log.Errorf("rôle invalide détecté pour %s: %s", email, role)
		s.recorder.LoginFailure(ctx, email, "invalid_role")
		return AuthResult{}, ErrRoleNotAllowed
	}

	accessToken, err := s.issueToken(user, role, tokenTypeAccess, s.accessTTL)
	if err != nil {
		return AuthResult{}, err
	}
	refreshToken, err := s.issueToken(user, role, tokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return AuthResult{}, err
	}

	s.log.Infof("connexion réussie pour l'utilisateur: %s avec le rôle: %s", user.Email, role)
	s.recorder.LoginSuccess(ctx, user.ID, user.Email)

	return AuthResult{
		User:         user,
		Role:         role,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.ParseToken(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}
	if claims.TokenType != tokenTypeRefresh {
		return "", ErrInvalidToken
	}

	// Re-read the user so a deleted account or changed role invalidates the pair.
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}

	role := types.NormalizeRole(user.Role)
	if !types.IsValidRole(role) {
		return "", ErrRoleNotAllowed
	}

	return s.issueToken(user, role, tokenTypeAccess, s.accessTTL)
}

// ParseToken verifies the signature and expiry of a token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) issueToken(user types.User, role, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
