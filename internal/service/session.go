package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned for missing or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// Session is a logged-in staff session stored in Redis. Logout deletes the
// session, which invalidates the refresh token bound to it.
type Session struct {
	ID        string    `json:"id"`
	StaffID   string    `json:"staff_id"`
	Position  string    `json:"position"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionService manages staff sessions and refresh-token revocation.
type SessionService interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteByStaffID(ctx context.Context, staffID string) error
	// RevokeRefreshToken blacklists a refresh token until its natural expiry.
	RevokeRefreshToken(ctx context.Context, token string, ttl time.Duration) error
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
}

// SessionServiceConfig configures session lifetimes.
type SessionServiceConfig struct {
	SessionExpiry time.Duration // default 7 days
}

type sessionService struct {
	redis  *redis.Client
	config *SessionServiceConfig
}

// NewSessionService creates the session service.
func NewSessionService(redisClient *redis.Client, config *SessionServiceConfig) SessionService {
	if config == nil {
		config = &SessionServiceConfig{}
	}
	if config.SessionExpiry == 0 {
		config.SessionExpiry = 7 * 24 * time.Hour
	}
	return &sessionService{
		redis:  redisClient,
		config: config,
	}
}

// Redis key prefixes.
const (
	sessionKeyPrefix     = "session:"
	staffSessionsPrefix  = "staff_sessions:"
	revokedRefreshPrefix = "revoked_refresh:"
)

func (s *sessionService) Create(ctx context.Context, session *Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.ExpiresAt.IsZero() {
		session.ExpiresAt = time.Now().Add(s.config.SessionExpiry)
	}
	session.CreatedAt = time.Now()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if err := s.redis.Set(ctx, sessionKeyPrefix+session.ID, data, ttl).Err(); err != nil {
		return err
	}
	// Track the staff's session ids for bulk revocation.
	staffKey := staffSessionsPrefix + session.StaffID
	if err := s.redis.SAdd(ctx, staffKey, session.ID).Err(); err != nil {
		return err
	}
	return s.redis.Expire(ctx, staffKey, s.config.SessionExpiry).Err()
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.redis.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *sessionService) Delete(ctx context.Context, sessionID string) error {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}

	if err := s.redis.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return err
	}
	return s.redis.SRem(ctx, staffSessionsPrefix+session.StaffID, sessionID).Err()
}

func (s *sessionService) DeleteByStaffID(ctx context.Context, staffID string) error {
	staffKey := staffSessionsPrefix + staffID
	ids, err := s.redis.SMembers(ctx, staffKey).Result()
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := s.redis.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
			return err
		}
	}
	return s.redis.Del(ctx, staffKey).Err()
}

func (s *sessionService) RevokeRefreshToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to blacklist
	}
	return s.redis.Set(ctx, revokedRefreshPrefix+token, "1", ttl).Err()
}

func (s *sessionService) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.redis.Exists(ctx, revokedRefreshPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
