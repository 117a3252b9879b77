package service

import (
	"context"
	"log/slog"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
)

// AuditService writes audit entries to the structured log under the
// "audit" message, one record per action.
type AuditService struct {
	log *slog.Logger
	now func() time.Time
}

func NewAuditService() *AuditService {
	return &AuditService{now: time.Now}
}

func (s *AuditService) out() *slog.Logger {
	if s.log != nil {
		return s.log
	}
	return logger.Get()
}

func (s *AuditService) Log(ctx context.Context, e domain.AuditEntry) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now().UTC()
	}
	attrs := []any{
		"actor_id", e.ActorID,
		"action", e.Action,
		"category", e.Category,
		"at", e.CreatedAt,
	}
	if e.IP != "" {
		attrs = append(attrs, "ip", e.IP)
	}
	if e.UserAgent != "" {
		attrs = append(attrs, "user_agent", e.UserAgent)
	}
	if len(e.Details) > 0 {
		attrs = append(attrs, "details", e.Details)
	}
	s.out().InfoContext(ctx, "audit", attrs...)
}

// LogWithRequest is Log with the caller's IP and User-Agent.
func (s *AuditService) LogWithRequest(ctx context.Context, actorID int64, action, category, ip, userAgent string, details map[string]any) {
	s.Log(ctx, domain.AuditEntry{
		ActorID:   actorID,
		Action:    action,
		Category:  category,
		Details:   details,
		IP:        ip,
		UserAgent: userAgent,
	})
}

// LogAdmin records a change an admin made to another account.
func (s *AuditService) LogAdmin(ctx context.Context, actorID int64, action string, targetID int64, ip string) {
	s.Log(ctx, domain.AuditEntry{
		ActorID:  actorID,
		Action:   action,
		Category: domain.AuditCategoryAdmin,
		Details:  map[string]any{"target_id": targetID},
		IP:       ip,
	})
}
