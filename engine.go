package rotorauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rotorauth/rotorauth/internal/flows"
	"github.com/rotorauth/rotorauth/internal/rate"
	"github.com/rotorauth/rotorauth/password"
	"github.com/rotorauth/rotorauth/session"
	"github.com/rotorauth/rotorauth/token"
)

// Engine is the credential engine. Build one through [Builder.Build]; all
// methods are safe for concurrent use afterwards.
type Engine struct {
	config     Config
	codec      *token.Codec
	hasher     *password.Hasher
	sessions   *session.Store
	principals PrincipalStore
	limiter    *rate.Limiter
	audit      *auditDispatcher
	metrics    *Metrics
	now        func() time.Time
}

// Close flushes and stops the audit dispatcher. The engine must not be used
// after Close.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped returns the number of audit events discarded under
// backpressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time deep copy of all metrics.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// VerifyAccess validates a bearer token's signature and expiry against the
// access secret and returns its claims. Every failure — malformed, bad
// signature, expired — collapses to [ErrUnauthorized]; the distinct cause is
// recorded in metrics and audit only, so clients learn nothing about why a
// token was rejected.
func (e *Engine) VerifyAccess(ctx context.Context, bearer string) (*token.Claims, error) {
	if e == nil || e.codec == nil {
		return nil, ErrEngineNotReady
	}

	start := time.Now()
	claims, err := e.codec.VerifyAccess(bearer)
	e.metrics.Observe(MetricVerifyLatency, time.Since(start))

	if err != nil {
		switch {
		case errors.Is(err, token.ErrExpired):
			e.metricInc(MetricVerifyExpired)
		case errors.Is(err, token.ErrBadSignature):
			e.metricInc(MetricVerifySignatureInvalid)
		default:
			e.metricInc(MetricVerifyMalformed)
		}
		e.emitAudit(ctx, auditEventVerifyRejected, false, 0, "", err, nil)
		return nil, ErrUnauthorized
	}

	e.metricInc(MetricVerifySuccess)
	return claims, nil
}

// CurrentPrincipal verifies the bearer token and loads the principal record
// behind it. This is the one place [ErrPrincipalNotFound] surfaces to
// callers: the lookup is already authenticated, so the existence of the
// account is not a secret.
func (e *Engine) CurrentPrincipal(ctx context.Context, bearer string) (Principal, error) {
	claims, err := e.VerifyAccess(ctx, bearer)
	if err != nil {
		return Principal{}, err
	}

	principal, err := e.principals.FindByID(ctx, claims.PrincipalID)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			return Principal{}, ErrPrincipalNotFound
		}
		return Principal{}, fmt.Errorf("principal lookup: %w", err)
	}

	return principal, nil
}

// Logout deletes the email's session slot and returns the removed count
// (0 or 1). Zero means nothing was stored, which is not an error.
func (e *Engine) Logout(ctx context.Context, email string) (int64, error) {
	if e == nil || e.sessions == nil {
		return 0, ErrEngineNotReady
	}

	removed, err := flows.RunLogout(ctx, email, flows.LogoutDeps{
		DeleteSession: e.sessions.Delete,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}

	e.metricInc(MetricLogout)
	e.emitAudit(ctx, auditEventLogout, true, 0, email, nil, func() map[string]string {
		return map[string]string{"removed": fmt.Sprintf("%d", removed)}
	})

	return removed, nil
}

// issue is the claims basis → TokenPair path shared by sign-in and refresh.
// Its session write is the only writer of session slots.
func (e *Engine) issue(ctx context.Context, id int64, email, role string) (string, string, error) {
	access, refresh, err := flows.RunIssue(ctx, id, email, role, flows.IssueDeps{
		SignAccess:  e.codec.SignAccess,
		SignRefresh: e.codec.SignRefresh,
		PutSession:  e.sessions.Put,
	})
	if err != nil {
		return "", "", err
	}

	e.metricInc(MetricSessionCreated)
	return access, refresh, nil
}
