package rotorauth

import (
	"context"
	"time"

	internalaudit "github.com/rotorauth/rotorauth/internal/audit"
)

const (
	auditEventSignInSuccess     = "sign_in_success"
	auditEventSignInFailure     = "sign_in_failure"
	auditEventSignInRateLimited = "sign_in_rate_limited"
	auditEventSignUpSuccess     = "sign_up_success"
	auditEventSignUpFailure     = "sign_up_failure"
	auditEventRefreshSuccess    = "refresh_success"
	auditEventRefreshRejected   = "refresh_rejected"
	auditEventVerifyRejected    = "verify_rejected"
	auditEventLogout            = "logout"
)

type auditDispatcher = internalaudit.Dispatcher

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *auditDispatcher {
	return internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    cfg.Enabled,
		BufferSize: cfg.BufferSize,
		DropIfFull: cfg.DropIfFull,
	}, sink)
}

// emitAudit records one internally distinct condition. metadata is built
// lazily so disabled audit costs nothing on hot paths.
func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	principalID int64,
	email string,
	cause error,
	metadata func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp:   time.Now(),
		EventType:   eventType,
		PrincipalID: principalID,
		Email:       email,
		IP:          clientIPFromContext(ctx),
		Success:     success,
	}
	if cause != nil {
		event.Error = cause.Error()
	}
	if metadata != nil {
		event.Metadata = metadata()
	}

	e.audit.Emit(ctx, event)
}
