package ports

import (
	"context"
	"time"
)

// Auth-event kinds recorded in the audit trail.
const (
	AuditLoginSuccess = "login_success"
	AuditLoginFailed  = "login_failed"
	AuditLogout       = "logout"
	AuditForcedLogout = "forced_logout"
	AuditCardIssued   = "card_issued"
)

// AuthEvent is one security-relevant occurrence in the credential lifecycle.
type AuthEvent struct {
	ID         string
	Kind       string
	MemberID   string
	Identifier string
	Detail     string
	RemoteAddr string
	At         time.Time
}

// AuditRepository persists auth events and serves the admin overview.
type AuditRepository interface {
	Insert(ctx context.Context, event *AuthEvent) error
	Recent(ctx context.Context, limit int64) ([]AuthEvent, error)
	CountByKind(ctx context.Context, since time.Time) (map[string]int64, error)
}

// AuditService consumes auth events from the dispatcher and writes them to
// the repository.
type AuditService interface {
	Process(ctx context.Context, event AuthEvent) error
}

// AuditRecorder is the fire-and-forget producer side used by the auth and
// card services. Recording must never block or fail a user-facing call.
type AuditRecorder interface {
	Record(event AuthEvent)
}
