package flows

import "context"

// LogoutDeps captures logout flow dependencies.
type LogoutDeps struct {
	DeleteSession func(ctx context.Context, email string) (int64, error)
}

// RunLogout removes the email's session slot and returns the removed count.
// Zero means nothing was stored, which is not an error: the desired end state
// (no valid refresh token) already holds.
func RunLogout(ctx context.Context, email string, deps LogoutDeps) (int64, error) {
	return deps.DeleteSession(ctx, email)
}
