package flows

import (
	"context"
	"errors"
)

// SignUpFailureKind classifies sign-up failures for root-level mapping.
type SignUpFailureKind int

const (
	SignUpFailureNone SignUpFailureKind = iota
	SignUpFailureWeakPassword
	SignUpFailureConflict
	SignUpFailureCreate
)

// SignUpResult carries the created principal or failure metadata.
type SignUpResult struct {
	Failure   SignUpFailureKind
	Err       error
	Principal PrincipalRecord
}

// SignUpDeps captures sign-up flow dependencies. Hashing happens in this
// core; the store only ever sees the finished hash.
type SignUpDeps struct {
	HashPassword func(password string) (string, error)
	Create       func(ctx context.Context, p PrincipalRecord) (PrincipalRecord, error)
	EmailTaken   error
}

// RunSignUp hashes the password and creates the principal. Email uniqueness
// is the store's job; a conflict surfaces as its own failure kind.
func RunSignUp(ctx context.Context, email, password, role string, deps SignUpDeps) SignUpResult {
	hash, err := deps.HashPassword(password)
	if err != nil {
		return SignUpResult{Failure: SignUpFailureWeakPassword, Err: err}
	}

	created, err := deps.Create(ctx, PrincipalRecord{
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	})
	if err != nil {
		if deps.EmailTaken != nil && errors.Is(err, deps.EmailTaken) {
			return SignUpResult{Failure: SignUpFailureConflict, Err: err}
		}
		return SignUpResult{Failure: SignUpFailureCreate, Err: err}
	}

	return SignUpResult{Failure: SignUpFailureNone, Principal: created}
}
