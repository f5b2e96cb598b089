package ports

import (
	"context"

	"github.com/mouvement-ensemble/membership-portal/internal/core/domain"
)

// LoginResult is returned to the transport layer after a successful login.
// RedirectTo encodes the post-login routing policy: admins go to the admin
// dashboard, members with an incomplete profile to profile completion,
// everyone else to the member area.
type LoginResult struct {
	SessionID  string
	Member     domain.Member
	Status     domain.ProfileStatus
	RedirectTo string
}

// ProfileResult pairs a fresh member snapshot with its derived completion
// status.
type ProfileResult struct {
	Member domain.Member
	Status domain.ProfileStatus
}

// AuthService drives the credential and session lifecycle.
type AuthService interface {
	Login(ctx context.Context, creds domain.LoginCredentials) (*LoginResult, error)
	Register(ctx context.Context, in RegisterInput) (domain.Member, error)
	Logout(ctx context.Context, sessionID string) error

	// Session resolves a session ID to the stored pair; domain.ErrNoSession
	// when absent.
	Session(ctx context.Context, sessionID string) (domain.Session, error)

	// Profile and the two update calls refresh the member snapshot inside
	// the session on success. A stale upstream token (401) clears the
	// session and surfaces KindUnauthenticated.
	Profile(ctx context.Context, sessionID string) (*ProfileResult, error)
	UpdateProfile(ctx context.Context, sessionID string, in ProfileUpdateInput) (*ProfileResult, error)
	CompleteProfile(ctx context.Context, sessionID string, in ProfileUpdateInput) (*ProfileResult, error)
}
