package services

import (
	"context"

	"github.com/you/blogsvc/domain"
	"go.uber.org/zap"
)

// recordEvent hands an event to the audit logger. Audit is best-effort: a
// failure is logged and never reaches the caller.
func recordEvent(ctx context.Context, audit domain.AuditLogger, logger *zap.Logger, event *domain.AuditEvent) {
	if audit == nil {
		return
	}
	if err := audit.LogEvent(ctx, event); err != nil {
		logger.Warn("audit event dropped",
			zap.String("event_type", string(event.EventType)),
			zap.String("user_id", event.UserID),
			zap.Error(err),
		)
	}
}
