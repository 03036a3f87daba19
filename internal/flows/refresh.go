package flows

import (
	"context"
	"errors"
)

// RefreshFailureKind classifies rotation failures for root-level mapping.
// Every kind except the store faults collapses to one unauthorized signal at
// the public boundary.
type RefreshFailureKind int

const (
	RefreshFailureNone RefreshFailureKind = iota
	RefreshFailureMalformed
	RefreshFailureNoSession
	RefreshFailureMismatch
	RefreshFailurePrincipalGone
	RefreshFailureStore
	RefreshFailureIssue
)

// RefreshResult carries either the replacement token pair or failure metadata.
type RefreshResult struct {
	Failure      RefreshFailureKind
	Err          error
	PrincipalID  int64
	Email        string
	Role         string
	AccessToken  string
	RefreshToken string
}

// RefreshDeps captures rotation dependencies.
type RefreshDeps struct {
	Decode      func(token string) (int64, string, error)
	GetSession  func(ctx context.Context, email string) (string, error)
	NoSession   error
	ResolveRole func(ctx context.Context, id int64, email string) (string, error)
	NotFound    error
	Issue       func(ctx context.Context, id int64, email, role string) (string, string, error)
}

// RunRefresh executes one rotation transition: decode the presented token
// without verification (only to learn which slot to read — authenticity comes
// from the equality check, not the decode), compare it to the stored slot,
// and on match re-issue through the issuance path whose Put overwrites the
// just-matched record. The overwrite is the revocation: the old refresh token
// becomes permanently unusable without any denylist.
//
// Two rotations racing for the same email may both pass the equality check
// before either Put lands; the last completed Put owns the slot and the other
// pair's refresh token dies at its next use. Accepted narrow race, by the
// same last-writer-wins rule the session store documents.
func RunRefresh(ctx context.Context, presented string, deps RefreshDeps) RefreshResult {
	id, email, err := deps.Decode(presented)
	if err != nil {
		return RefreshResult{Failure: RefreshFailureMalformed, Err: err}
	}

	stored, err := deps.GetSession(ctx, email)
	if err != nil {
		if deps.NoSession != nil && errors.Is(err, deps.NoSession) {
			return RefreshResult{
				Failure:     RefreshFailureNoSession,
				Err:         err,
				PrincipalID: id,
				Email:       email,
			}
		}
		return RefreshResult{
			Failure:     RefreshFailureStore,
			Err:         err,
			PrincipalID: id,
			Email:       email,
		}
	}

	// Exact string equality against the stored slot. A mismatch covers both
	// an already-rotated token and a token forged for someone else's slot.
	if stored != presented {
		return RefreshResult{
			Failure:     RefreshFailureMismatch,
			PrincipalID: id,
			Email:       email,
		}
	}

	role, err := deps.ResolveRole(ctx, id, email)
	if err != nil {
		if deps.NotFound != nil && errors.Is(err, deps.NotFound) {
			return RefreshResult{
				Failure:     RefreshFailurePrincipalGone,
				Err:         err,
				PrincipalID: id,
				Email:       email,
			}
		}
		return RefreshResult{
			Failure:     RefreshFailureStore,
			Err:         err,
			PrincipalID: id,
			Email:       email,
		}
	}

	access, refresh, err := deps.Issue(ctx, id, email, role)
	if err != nil {
		return RefreshResult{
			Failure:     RefreshFailureIssue,
			Err:         err,
			PrincipalID: id,
			Email:       email,
			Role:        role,
		}
	}

	return RefreshResult{
		Failure:      RefreshFailureNone,
		PrincipalID:  id,
		Email:        email,
		Role:         role,
		AccessToken:  access,
		RefreshToken: refresh,
	}
}
