package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const lockTTL = 30 * time.Second

// LoginLock prevents duplicate login submissions: while a login for an
// identifier is in flight, a second attempt is refused. The TTL bounds how
// long a crashed request can hold the lock.
// Key format: login_lock:<sha256(identifier)>
type LoginLock struct {
	client *redis.Client
}

// NewLoginLock wraps the given Redis client.
func NewLoginLock(client *redis.Client) *LoginLock {
	return &LoginLock{client: client}
}

// Acquire takes the lock for identifier. Returns false when a login for the
// same identifier is already pending.
func (l *LoginLock) Acquire(ctx context.Context, identifier string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(identifier), "1", lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire login lock: %w", err)
	}
	return ok, nil
}

// Release frees the lock once the login attempt has settled.
func (l *LoginLock) Release(ctx context.Context, identifier string) error {
	return l.client.Del(ctx, l.key(identifier)).Err()
}

// key hashes the identifier so raw emails and phone numbers never appear in
// Redis keys.
func (l *LoginLock) key(identifier string) string {
	sum := sha256.Sum256([]byte(identifier))
	return "login_lock:" + hex.EncodeToString(sum[:8])
}
