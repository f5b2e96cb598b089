package ports

import (
	"context"

	"github.com/mouvement-ensemble/membership-portal/internal/core/domain"
)

// SessionStore is the single authority for session presence and content.
// Implementations must be atomic: a reader sees either a fully populated
// session (token and member together) or domain.ErrNoSession, never a
// partial pair.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Read(ctx context.Context, sessionID string) (domain.Session, error)
	Clear(ctx context.Context, sessionID string) error
}
