package rotorauth

import (
	"context"
	"fmt"

	"github.com/rotorauth/rotorauth/internal/flows"
)

// PasswordRehasher is an optional [PrincipalStore] capability. When the store
// implements it and [PasswordConfig.RehashOnSignIn] is enabled, hashes
// derived with weaker parameters are transparently upgraded after a
// successful sign-in.
type PasswordRehasher interface {
	UpdatePasswordHash(ctx context.Context, id int64, newHash string) error
}

// SignIn validates the credentials and issues a fresh token pair, writing the
// refresh token as the principal's sole valid session. Unknown email and
// wrong password both return [ErrInvalidCredentials]; audit and metrics keep
// them distinct.
func (e *Engine) SignIn(ctx context.Context, email, plaintext string) (TokenPair, error) {
	if e == nil || e.principals == nil || e.hasher == nil {
		return TokenPair{}, ErrEngineNotReady
	}

	deps := flows.SignInDeps{
		FindByEmail:    e.findPrincipalRecord,
		NotFound:       ErrPrincipalNotFound,
		VerifyPassword: e.hasher.Verify,
		ClientIP:       clientIPFromContext,
		Issue:          e.issue,
		Warn:           warnf,
	}

	if e.limiter != nil {
		deps.CheckRate = e.limiter.Check
		deps.IncrementRate = e.limiter.Increment
		deps.ResetRate = e.limiter.Reset
	}

	if e.config.Password.RehashOnSignIn {
		if rehasher, ok := e.principals.(PasswordRehasher); ok {
			deps.NeedsRehash = e.hasher.NeedsRehash
			deps.HashPassword = e.hasher.Hash
			deps.UpdateHash = rehasher.UpdatePasswordHash
		}
	}

	result := flows.RunSignIn(ctx, email, plaintext, deps)

	switch result.Failure {
	case flows.SignInFailureNone:
		e.metricInc(MetricSignInSuccess)
		e.emitAudit(ctx, auditEventSignInSuccess, true, result.PrincipalID, result.Email, nil, nil)
		return TokenPair{
			ID:           result.PrincipalID,
			Email:        result.Email,
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
		}, nil

	case flows.SignInFailureRateLimited:
		e.metricInc(MetricSignInRateLimited)
		e.emitAudit(ctx, auditEventSignInRateLimited, false, 0, email, result.Err, nil)
		return TokenPair{}, ErrSignInRateLimited

	case flows.SignInFailurePrincipalNotFound:
		e.metricInc(MetricSignInFailure)
		e.emitAudit(ctx, auditEventSignInFailure, false, 0, email, result.Err, func() map[string]string {
			return map[string]string{"reason": "principal_not_found"}
		})
		return TokenPair{}, ErrInvalidCredentials

	case flows.SignInFailureBadPassword:
		e.metricInc(MetricSignInFailure)
		e.emitAudit(ctx, auditEventSignInFailure, false, result.PrincipalID, email, nil, func() map[string]string {
			return map[string]string{"reason": "bad_password"}
		})
		return TokenPair{}, ErrInvalidCredentials

	default:
		e.emitAudit(ctx, auditEventSignInFailure, false, result.PrincipalID, email, result.Err, func() map[string]string {
			return map[string]string{"reason": "internal"}
		})
		return TokenPair{}, fmt.Errorf("sign-in: %w", result.Err)
	}
}

// findPrincipalRecord adapts PrincipalStore lookups to the flow-local model.
func (e *Engine) findPrincipalRecord(ctx context.Context, email string) (flows.PrincipalRecord, error) {
	principal, err := e.principals.FindByEmail(ctx, email)
	if err != nil {
		return flows.PrincipalRecord{}, err
	}

	return flows.PrincipalRecord{
		ID:           principal.ID,
		Email:        principal.Email,
		Role:         string(principal.Role),
		PasswordHash: principal.PasswordHash,
	}, nil
}
