package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mouvement-ensemble/membership-portal/internal/core/domain"
)

const defaultSessionTTL = 24 * time.Hour

// SessionStore keeps each session in a single Redis hash so the token and
// the member snapshot are written in one command. A reader can never observe
// one without the other.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore wraps the given client. If ttl <= 0 a default of 24h is
// used.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) key(sessionID string) string {
	return "session:" + sessionID
}

// Save persists the session atomically and applies the TTL.
func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	member, err := json.Marshal(session.Member)
	if err != nil {
		return fmt.Errorf("encode member snapshot: %w", err)
	}

	key := s.key(session.ID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key,
		"token", session.Token,
		"member", string(member),
		"created_at", session.CreatedAt.Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Read returns the stored session, or domain.ErrNoSession when absent. A
// hash missing either field is treated as absent and discarded.
func (s *SessionStore) Read(ctx context.Context, sessionID string) (domain.Session, error) {
	fields, err := s.client.HGetAll(ctx, s.key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, domain.ErrNoSession
		}
		return domain.Session{}, fmt.Errorf("read session: %w", err)
	}
	if len(fields) == 0 {
		return domain.Session{}, domain.ErrNoSession
	}

	token, rawMember := fields["token"], fields["member"]
	if token == "" || rawMember == "" {
		_ = s.client.Del(ctx, s.key(sessionID)).Err()
		return domain.Session{}, domain.ErrNoSession
	}

	var member domain.Member
	if err := json.Unmarshal([]byte(rawMember), &member); err != nil {
		_ = s.client.Del(ctx, s.key(sessionID)).Err()
		return domain.Session{}, domain.ErrNoSession
	}

	session := domain.Session{ID: sessionID, Token: token, Member: member}
	if createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"]); err == nil {
		session.CreatedAt = createdAt
	}
	return session, nil
}

// Clear removes the session. Clearing an absent session is a no-op.
func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
