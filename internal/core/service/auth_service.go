package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mouvement-ensemble/membership-portal/internal/core/domain"
	"github.com/mouvement-ensemble/membership-portal/internal/core/ports"
)

// SubmitLock prevents duplicate login submissions for the same identifier
// while one request is in flight (Redis-backed in production).
type SubmitLock interface {
	Acquire(ctx context.Context, identifier string) (bool, error)
	Release(ctx context.Context, identifier string) error
}

// AuthService implements the credential and session lifecycle on top of the
// upstream auth gateway and the session store. The gateway stays free of
// session side effects; all persistence happens here.
type AuthService struct {
	gateway ports.AuthGateway
	store   ports.SessionStore
	lock    SubmitLock
	audit   ports.AuditRecorder
	log     zerolog.Logger
}

func NewAuthService(
	gateway ports.AuthGateway,
	store ports.SessionStore,
	lock SubmitLock,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{gateway: gateway, store: store, lock: lock, audit: audit, log: log}
}

// Login validates locally, authenticates against the upstream, and persists
// the (token, member) pair as one session. Local validation failures never
// reach the network.
func (s *AuthService) Login(ctx context.Context, creds domain.LoginCredentials) (*ports.LoginResult, error) {
	if err := domain.Validate(creds); err != nil {
		return nil, err
	}

	identifier := creds.Identifier()
	acquired, err := s.lock.Acquire(ctx, identifier)
	if err != nil {
		s.log.Warn().Err(err).Msg("submit lock unavailable, proceeding without it")
	} else if !acquired {
		return nil, domain.ErrLoginInFlight
	} else {
		// Release only a lock this request actually holds; a failed Acquire
		// must not free a concurrent attempt's lock.
		defer func() {
			if releaseErr := s.lock.Release(context.WithoutCancel(ctx), identifier); releaseErr != nil {
				s.log.Warn().Err(releaseErr).Msg("failed to release submit lock")
			}
		}()
	}

	token, member, err := s.gateway.Login(ctx, creds)
	if err != nil {
		s.record(ports.AuthEvent{Kind: ports.AuditLoginFailed, Identifier: identifier, Detail: err.Error()})
		return nil, err
	}

	session := domain.Session{
		ID:        uuid.NewString(),
		Token:     token,
		Member:    member,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	status := domain.Completeness(member)
	s.record(ports.AuthEvent{Kind: ports.AuditLoginSuccess, MemberID: member.ID, Identifier: identifier})
	s.log.Info().Str("member_id", member.ID).Str("role", member.Role).Msg("member logged in")

	return &ports.LoginResult{
		SessionID:  session.ID,
		Member:     member,
		Status:     status,
		RedirectTo: postLoginRoute(member, status),
	}, nil
}

// postLoginRoute applies the routing policy: admins skip profile-completion
// gating; ordinary members with an incomplete profile must complete it
// before any dashboard.
func postLoginRoute(m domain.Member, status domain.ProfileStatus) string {
	if m.IsAdmin() {
		return ports.PathAdminArea
	}
	if !status.Completed {
		return ports.PathCompleteProfile
	}
	return ports.PathMemberArea
}

// Register forwards a registration to the upstream. No session is created;
// the member logs in afterwards.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (domain.Member, error) {
	return s.gateway.Register(ctx, in)
}

// Logout clears the session. Clearing an already-absent session is not an
// error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	session, err := s.store.Read(ctx, sessionID)
	if err == nil {
		s.record(ports.AuthEvent{Kind: ports.AuditLogout, MemberID: session.Member.ID})
	}
	return s.store.Clear(ctx, sessionID)
}

func (s *AuthService) Session(ctx context.Context, sessionID string) (domain.Session, error) {
	return s.store.Read(ctx, sessionID)
}

// Profile fetches a fresh member snapshot and refreshes the session with it.
func (s *AuthService) Profile(ctx context.Context, sessionID string) (*ports.ProfileResult, error) {
	return s.withSession(ctx, sessionID, func(session domain.Session) (domain.Member, error) {
		return s.gateway.Profile(ctx, session.Token)
	})
}

// UpdateProfile forwards a profile update and refreshes the session snapshot.
func (s *AuthService) UpdateProfile(ctx context.Context, sessionID string, in ports.ProfileUpdateInput) (*ports.ProfileResult, error) {
	return s.withSession(ctx, sessionID, func(session domain.Session) (domain.Member, error) {
		return s.gateway.UpdateProfile(ctx, session.Token, in)
	})
}

// CompleteProfile submits the post-onboarding fields and refreshes the
// session snapshot.
func (s *AuthService) CompleteProfile(ctx context.Context, sessionID string, in ports.ProfileUpdateInput) (*ports.ProfileResult, error) {
	return s.withSession(ctx, sessionID, func(session domain.Session) (domain.Member, error) {
		return s.gateway.CompleteProfile(ctx, session.Token, in)
	})
}

// withSession runs an authenticated upstream call and keeps the session
// snapshot in sync. A 401 from the upstream is intercepted exactly once,
// here: the session is cleared (forced logout) before the error surfaces,
// so call sites never handle it separately.
func (s *AuthService) withSession(ctx context.Context, sessionID string, call func(domain.Session) (domain.Member, error)) (*ports.ProfileResult, error) {
	session, err := s.store.Read(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	member, err := call(session)
	if err != nil {
		if domain.IsUnauthenticated(err) {
			if clearErr := s.store.Clear(ctx, sessionID); clearErr != nil {
				s.log.Error().Err(clearErr).Str("session_id", sessionID).Msg("failed to clear stale session")
			}
			s.record(ports.AuthEvent{Kind: ports.AuditForcedLogout, MemberID: session.Member.ID})
			s.log.Info().Str("member_id", session.Member.ID).Msg("stale token, session cleared")
		}
		return nil, err
	}

	session.Member = member
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("refresh session: %w", err)
	}

	return &ports.ProfileResult{Member: member, Status: domain.Completeness(member)}, nil
}

func (s *AuthService) record(event ports.AuthEvent) {
	if s.audit == nil {
		return
	}
	event.ID = uuid.NewString()
	event.At = time.Now().UTC()
	s.audit.Record(event)
}
