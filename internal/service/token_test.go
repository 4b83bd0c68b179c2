package service

import (
	"context"
	"testing"
	"time"

	"github.com/landhub/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
)

func newTestTokenService(accessExpiry time.Duration) TokenService {
	return NewTokenService(&TokenServiceConfig{
		Secret:        "test-secret",
		Issuer:        "realty-backoffice",
		AccessExpiry:  accessExpiry,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(time.Hour)

	staff := &model.Staff{
		BaseModel: model.BaseModel{ID: "staff-1"},
		Username:  "ngocanh",
		Position:  model.PositionManager,
	}

	token, err := svc.GenerateAccessToken(ctx, staff)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, "staff-1", claims.StaffID)
	assert.Equal(t, "ngocanh", claims.Username)
	assert.Equal(t, model.PositionManager, claims.Position)
	assert.Equal(t, "access", claims.Type)
}

func TestTokenService_RefreshTokenType(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(time.Hour)

	staff := &model.Staff{BaseModel: model.BaseModel{ID: "staff-1"}}

	token, err := svc.GenerateRefreshToken(ctx, staff)
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, "refresh", claims.Type)
}

func TestTokenService_Expired(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(-time.Minute)

	staff := &model.Staff{BaseModel: model.BaseModel{ID: "staff-1"}}

	token, err := svc.GenerateAccessToken(ctx, staff)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_Garbage(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(time.Hour)

	_, err := svc.ValidateToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_WrongSecret(t *testing.T) {
	ctx := context.Background()
	issuer := NewTokenService(&TokenServiceConfig{
		Secret:       "secret-a",
		Issuer:       "realty-backoffice",
		AccessExpiry: time.Hour,
	})
	verifier := NewTokenService(&TokenServiceConfig{
		Secret:       "secret-b",
		Issuer:       "realty-backoffice",
		AccessExpiry: time.Hour,
	})

	staff := &model.Staff{BaseModel: model.BaseModel{ID: "staff-1"}}
	token, err := issuer.GenerateAccessToken(ctx, staff)
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_WrongIssuer(t *testing.T) {
	ctx := context.Background()
	issuer := NewTokenService(&TokenServiceConfig{
		Secret:       "test-secret",
		Issuer:       "someone-else",
		AccessExpiry: time.Hour,
	})
	verifier := newTestTokenService(time.Hour)

	staff := &model.Staff{BaseModel: model.BaseModel{ID: "staff-1"}}
	token, err := issuer.GenerateAccessToken(ctx, staff)
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
