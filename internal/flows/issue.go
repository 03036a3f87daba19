package flows

import "context"

// IssueDeps captures token-issuance dependencies.
type IssueDeps struct {
	SignAccess  func(id int64, email, role string) (string, error)
	SignRefresh func(id int64, email, role string) (string, error)
	PutSession  func(ctx context.Context, email, refreshToken string) error
}

// RunIssue mints a fresh {access, refresh} pair for the claims basis and
// persists the refresh token as the email's sole valid session. This is the
// ONLY path that writes a session slot; the single-session invariant holds
// exactly as long as every sign-in and rotation routes through here.
func RunIssue(ctx context.Context, id int64, email, role string, deps IssueDeps) (string, string, error) {
	access, err := deps.SignAccess(id, email, role)
	if err != nil {
		return "", "", err
	}

	refresh, err := deps.SignRefresh(id, email, role)
	if err != nil {
		return "", "", err
	}

	// The overwrite here is what revokes any previously issued refresh token.
	if err := deps.PutSession(ctx, email, refresh); err != nil {
		return "", "", err
	}

	return access, refresh, nil
}
