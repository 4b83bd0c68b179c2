package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/landhub/backoffice/internal/model"
)

// Token errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// TokenClaims are the JWT claims carried by staff tokens.
type TokenClaims struct {
	jwt.RegisteredClaims
	StaffID  string `json:"sid,omitempty"`
	Username string `json:"username,omitempty"`
	Position string `json:"position,omitempty"`
	Type     string `json:"type,omitempty"` // access or refresh
}

// TokenService issues and validates staff JWTs (HS256).
type TokenService interface {
	GenerateAccessToken(ctx context.Context, staff *model.Staff) (string, error)
	GenerateRefreshToken(ctx context.Context, staff *model.Staff) (string, error)
	ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error)
}

// TokenServiceConfig configures token issuance.
type TokenServiceConfig struct {
	Secret        string
	Issuer        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type tokenService struct {
	secret        []byte
	issuer        string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewTokenService creates the token service.
func NewTokenService(cfg *TokenServiceConfig) TokenService {
	return &tokenService{
		secret:        []byte(cfg.Secret),
		issuer:        cfg.Issuer,
		accessExpiry:  cfg.AccessExpiry,
		refreshExpiry: cfg.RefreshExpiry,
	}
}

func (s *tokenService) GenerateAccessToken(ctx context.Context, staff *model.Staff) (string, error) {
	return s.generate(staff, "access", s.accessExpiry)
}

func (s *tokenService) GenerateRefreshToken(ctx context.Context, staff *model.Staff) (string, error) {
	return s.generate(staff, "refresh", s.refreshExpiry)
}

func (s *tokenService) generate(staff *model.Staff, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   staff.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		StaffID:  staff.ID,
		Username: staff.Username,
		Position: staff.Position,
		Type:     tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *tokenService) ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
