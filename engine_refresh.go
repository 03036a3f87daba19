package rotorauth

import (
	"context"
	"fmt"

	"github.com/rotorauth/rotorauth/internal/flows"
	"github.com/rotorauth/rotorauth/session"
)

// Refresh exchanges a presented refresh token for a replacement pair. The
// presented token is decoded WITHOUT signature verification only to locate
// the session slot; authenticity comes from exact equality against the
// stored token. On match the re-issue overwrites the slot, which permanently
// revokes the presented token.
//
// The role is re-resolved from the principal store on every rotation, so a
// role change takes effect at the next refresh rather than surviving until
// the refresh token finally expires.
//
// Every protocol failure — malformed token, no stored session, mismatch,
// vanished principal — returns [ErrUnauthorized] without revealing which
// check failed. Store faults return wrapped errors instead; they are the
// caller's outage, not the client's fault.
func (e *Engine) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if e == nil || e.sessions == nil || e.principals == nil {
		return TokenPair{}, ErrEngineNotReady
	}

	result := flows.RunRefresh(ctx, refreshToken, flows.RefreshDeps{
		Decode:      e.decodeRefreshHint,
		GetSession:  e.sessions.Get,
		NoSession:   session.ErrNoSession,
		ResolveRole: e.resolveRole,
		NotFound:    ErrPrincipalNotFound,
		Issue:       e.issue,
	})

	switch result.Failure {
	case flows.RefreshFailureNone:
		e.metricInc(MetricRefreshSuccess)
		e.emitAudit(ctx, auditEventRefreshSuccess, true, result.PrincipalID, result.Email, nil, nil)
		return TokenPair{
			ID:           result.PrincipalID,
			Email:        result.Email,
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
		}, nil

	case flows.RefreshFailureMalformed:
		e.metricInc(MetricRefreshMalformed)
		e.emitAudit(ctx, auditEventRefreshRejected, false, 0, "", result.Err, func() map[string]string {
			return map[string]string{"reason": "malformed"}
		})
		return TokenPair{}, ErrUnauthorized

	case flows.RefreshFailureNoSession:
		e.metricInc(MetricRefreshNoSession)
		e.emitAudit(ctx, auditEventRefreshRejected, false, result.PrincipalID, result.Email, result.Err, func() map[string]string {
			return map[string]string{"reason": "no_active_session"}
		})
		return TokenPair{}, ErrUnauthorized

	case flows.RefreshFailureMismatch:
		e.metricInc(MetricRefreshMismatch)
		e.emitAudit(ctx, auditEventRefreshRejected, false, result.PrincipalID, result.Email, nil, func() map[string]string {
			return map[string]string{"reason": "session_mismatch"}
		})
		return TokenPair{}, ErrUnauthorized

	case flows.RefreshFailurePrincipalGone:
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshRejected, false, result.PrincipalID, result.Email, result.Err, func() map[string]string {
			return map[string]string{"reason": "principal_gone"}
		})
		return TokenPair{}, ErrUnauthorized

	default:
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshRejected, false, result.PrincipalID, result.Email, result.Err, func() map[string]string {
			return map[string]string{"reason": "internal"}
		})
		return TokenPair{}, fmt.Errorf("refresh: %w", result.Err)
	}
}

// decodeRefreshHint adapts the codec's unauthenticated decode to the flow
// signature.
func (e *Engine) decodeRefreshHint(tokenStr string) (int64, string, error) {
	hint, err := e.codec.DecodeUnverified(tokenStr)
	if err != nil {
		return 0, "", err
	}
	return hint.PrincipalID, hint.Email, nil
}

// resolveRole re-reads the principal's current role for the rotated claims.
func (e *Engine) resolveRole(ctx context.Context, id int64, email string) (string, error) {
	principal, err := e.principals.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if principal.Email != email {
		// The decoded email located a slot, but the principal behind the id
		// no longer carries that email. Treat it as gone rather than issue
		// tokens for a stale identity.
		return "", ErrPrincipalNotFound
	}
	return string(principal.Role), nil
}
