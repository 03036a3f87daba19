package rotorauth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rotorauth/rotorauth/internal/flows"
)

// ErrSignUpDisabled is returned when account creation is switched off.
var ErrSignUpDisabled = errors.New("sign-up disabled")

// SignUp hashes the password in this core and asks the principal store to
// create the account. Email uniqueness is the store's contract; a conflict
// returns [ErrEmailTaken]. Sign-up never issues tokens — the new principal
// signs in like everyone else.
func (e *Engine) SignUp(ctx context.Context, input SignUpInput) (Principal, error) {
	if e == nil || e.principals == nil || e.hasher == nil {
		return Principal{}, ErrEngineNotReady
	}
	if !e.config.Account.SignUpEnabled {
		return Principal{}, ErrSignUpDisabled
	}
	if input.Email == "" {
		return Principal{}, fmt.Errorf("%w: empty email", ErrInvalidCredentials)
	}

	role := input.Role
	if role == "" {
		role = e.config.Account.DefaultRole
	}
	if !role.Valid() {
		e.emitAudit(ctx, auditEventSignUpFailure, false, 0, input.Email, ErrInvalidRole, func() map[string]string {
			return map[string]string{"reason": "invalid_role"}
		})
		return Principal{}, ErrInvalidRole
	}

	result := flows.RunSignUp(ctx, input.Email, input.Password, string(role), flows.SignUpDeps{
		HashPassword: e.hasher.Hash,
		Create:       e.createPrincipalRecord,
		EmailTaken:   ErrEmailTaken,
	})

	switch result.Failure {
	case flows.SignUpFailureNone:
		e.metricInc(MetricSignUpSuccess)
		e.emitAudit(ctx, auditEventSignUpSuccess, true, result.Principal.ID, result.Principal.Email, nil, nil)
		return Principal{
			ID:           result.Principal.ID,
			Email:        result.Principal.Email,
			Role:         Role(result.Principal.Role),
			PasswordHash: result.Principal.PasswordHash,
		}, nil

	case flows.SignUpFailureConflict:
		e.metricInc(MetricSignUpConflict)
		e.emitAudit(ctx, auditEventSignUpFailure, false, 0, input.Email, result.Err, func() map[string]string {
			return map[string]string{"reason": "email_taken"}
		})
		return Principal{}, ErrEmailTaken

	case flows.SignUpFailureWeakPassword:
		e.emitAudit(ctx, auditEventSignUpFailure, false, 0, input.Email, result.Err, func() map[string]string {
			return map[string]string{"reason": "password_policy"}
		})
		return Principal{}, result.Err

	default:
		e.emitAudit(ctx, auditEventSignUpFailure, false, 0, input.Email, result.Err, func() map[string]string {
			return map[string]string{"reason": "internal"}
		})
		return Principal{}, fmt.Errorf("sign-up: %w", result.Err)
	}
}

// createPrincipalRecord adapts PrincipalStore.Create to the flow-local model.
func (e *Engine) createPrincipalRecord(ctx context.Context, record flows.PrincipalRecord) (flows.PrincipalRecord, error) {
	created, err := e.principals.Create(ctx, Principal{
		Email:        record.Email,
		Role:         Role(record.Role),
		PasswordHash: record.PasswordHash,
	})
	if err != nil {
		return flows.PrincipalRecord{}, err
	}

	return flows.PrincipalRecord{
		ID:           created.ID,
		Email:        created.Email,
		Role:         string(created.Role),
		PasswordHash: created.PasswordHash,
	}, nil
}
