package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/blendpos/pos-backend/internal/api/metrics"
	"github.com/blendpos/pos-backend/internal/core/domain"
	"github.com/blendpos/pos-backend/internal/core/ports"
)

// AuthAuditService persists authentication events into the audit trail.
// Entries are best-effort: a storage failure is logged and counted, never
// propagated back to the request that produced the event.
type AuthAuditService struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
}

func NewAuthAuditService(repo ports.AuditRepository, logger zerolog.Logger) *AuthAuditService {
	return &AuthAuditService{repo: repo, logger: logger}
}

func (s *AuthAuditService) Process(ctx context.Context, event ports.AuditEventInput) error {
	entry := &domain.AuditEntry{
		Action:  event.Action,
		Email:   event.Email,
		UserID:  event.UserID,
		Success: event.Success,
		Detail:  event.Detail,
		At:      time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		metrics.AuditErrorsTotal.WithLabelValues(event.Action).Inc()
		s.logger.Error().Err(err).Str("action", event.Action).Str("email", event.Email).Msg("audit insert failed")
		return err
	}

	metrics.AuditEventsTotal.WithLabelValues(event.Action, outcomeLabel(event.Success)).Inc()
	return nil
}

func outcomeLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
