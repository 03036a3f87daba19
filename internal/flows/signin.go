package flows

import (
	"context"
	"errors"
)

// SignInFailureKind classifies sign-in failures for root-level mapping.
// PrincipalNotFound and BadPassword are distinct here and merged into one
// invalid-credentials signal at the public boundary.
type SignInFailureKind int

const (
	SignInFailureNone SignInFailureKind = iota
	SignInFailureRateLimited
	SignInFailurePrincipalNotFound
	SignInFailureBadPassword
	SignInFailureLookup
	SignInFailureIssue
)

// SignInResult carries either the issued token pair or failure metadata.
type SignInResult struct {
	Failure      SignInFailureKind
	Err          error
	PrincipalID  int64
	Email        string
	Role         string
	AccessToken  string
	RefreshToken string
}

// SignInDeps captures sign-in flow dependencies. CheckRate, IncrementRate,
// and ResetRate are nil when throttling is disabled; UpdateHash is nil when
// the principal store does not support rehash-on-sign-in.
type SignInDeps struct {
	FindByEmail    func(ctx context.Context, email string) (PrincipalRecord, error)
	NotFound       error
	VerifyPassword func(password, hash string) (bool, error)
	NeedsRehash    func(hash string) (bool, error)
	HashPassword   func(password string) (string, error)
	UpdateHash     func(ctx context.Context, id int64, newHash string) error
	CheckRate      func(ctx context.Context, email, ip string) error
	IncrementRate  func(ctx context.Context, email, ip string) error
	ResetRate      func(ctx context.Context, email, ip string) error
	ClientIP       func(ctx context.Context) string
	Issue          func(ctx context.Context, id int64, email, role string) (string, string, error)
	Warn           func(string, ...any)
}

// RunSignIn validates the credentials and issues a token pair. The password
// comparison happens only after a principal is found; both miss cases produce
// distinct failure kinds so the engine can log them separately while still
// answering the caller uniformly.
func RunSignIn(ctx context.Context, email, password string, deps SignInDeps) SignInResult {
	if deps.Warn == nil {
		deps.Warn = func(string, ...any) {}
	}

	ip := ""
	if deps.ClientIP != nil {
		ip = deps.ClientIP(ctx)
	}

	if deps.CheckRate != nil {
		if err := deps.CheckRate(ctx, email, ip); err != nil {
			return SignInResult{Failure: SignInFailureRateLimited, Err: err, Email: email}
		}
	}

	principal, err := deps.FindByEmail(ctx, email)
	if err != nil {
		if deps.NotFound != nil && errors.Is(err, deps.NotFound) {
			if deps.IncrementRate != nil {
				if rateErr := deps.IncrementRate(ctx, email, ip); rateErr != nil {
					deps.Warn("rotorauth: sign-in rate increment failed")
				}
			}
			return SignInResult{Failure: SignInFailurePrincipalNotFound, Err: err, Email: email}
		}
		return SignInResult{Failure: SignInFailureLookup, Err: err, Email: email}
	}

	ok, err := deps.VerifyPassword(password, principal.PasswordHash)
	if err != nil {
		return SignInResult{Failure: SignInFailureLookup, Err: err, Email: email}
	}
	if !ok {
		if deps.IncrementRate != nil {
			if rateErr := deps.IncrementRate(ctx, email, ip); rateErr != nil {
				deps.Warn("rotorauth: sign-in rate increment failed")
			}
		}
		return SignInResult{
			Failure:     SignInFailureBadPassword,
			PrincipalID: principal.ID,
			Email:       principal.Email,
		}
	}

	if deps.ResetRate != nil {
		if err := deps.ResetRate(ctx, email, ip); err != nil {
			deps.Warn("rotorauth: sign-in rate reset failed")
		}
	}

	maybeRehash(ctx, principal, password, deps)

	access, refresh, err := deps.Issue(ctx, principal.ID, principal.Email, principal.Role)
	if err != nil {
		return SignInResult{
			Failure:     SignInFailureIssue,
			Err:         err,
			PrincipalID: principal.ID,
			Email:       principal.Email,
			Role:        principal.Role,
		}
	}

	return SignInResult{
		Failure:      SignInFailureNone,
		PrincipalID:  principal.ID,
		Email:        principal.Email,
		Role:         principal.Role,
		AccessToken:  access,
		RefreshToken: refresh,
	}
}

// maybeRehash upgrades the stored hash to the current parameters after a
// successful verification. Failures are logged, never surfaced: the sign-in
// already succeeded.
func maybeRehash(ctx context.Context, principal PrincipalRecord, password string, deps SignInDeps) {
	if deps.NeedsRehash == nil || deps.HashPassword == nil || deps.UpdateHash == nil {
		return
	}

	needs, err := deps.NeedsRehash(principal.PasswordHash)
	if err != nil || !needs {
		return
	}

	newHash, err := deps.HashPassword(password)
	if err != nil {
		deps.Warn("rotorauth: password rehash failed")
		return
	}
	if err := deps.UpdateHash(ctx, principal.ID, newHash); err != nil {
		deps.Warn("rotorauth: password rehash store failed")
	}
}
