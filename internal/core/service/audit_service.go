package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mouvement-ensemble/membership-portal/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns the AuditService that persists auth events
// delivered by the dispatcher.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single auth event. Failures are reported to the caller
// so the dispatcher can log them; they never surface to the member-facing
// flow that produced the event.
func (s *auditService) Process(ctx context.Context, event ports.AuthEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("persist auth event: %w", err)
	}

	s.log.Debug().
		Str("kind", event.Kind).
		Str("member_id", event.MemberID).
		Msg("auth event recorded")

	return nil
}
