package rotorauth

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func signedInPrincipal(t *testing.T, engine *Engine) TokenPair {
	t.Helper()

	seedPrincipal(t, engine, "alice@example.com", "correct-horse-battery", RoleUser)
	pair, err := engine.SignIn(context.Background(), "alice@example.com", "correct-horse-battery")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	return pair
}

func TestRefreshRotatesPair(t *testing.T) {
	store := newMockStore()
	engine, rdb := newTestEngine(t, testEngineConfig(), store)
	ctx := context.Background()

	pair := signedInPrincipal(t, engine)

	rotated, err := engine.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatal("expected a fresh refresh token")
	}
	if rotated.ID != pair.ID || rotated.Email != pair.Email {
		t.Fatalf("rotation changed identity: %+v", rotated)
	}

	// The slot now holds the replacement.
	stored, err := rdb.Get(ctx, sessionKey("alice@example.com")).Result()
	if err != nil {
		t.Fatalf("slot read failed: %v", err)
	}
	if stored != rotated.RefreshToken {
		t.Fatal("expected slot to hold the rotated token")
	}

	// The new access token verifies.
	if _, err := engine.VerifyAccess(ctx, rotated.AccessToken); err != nil {
		t.Fatalf("rotated access token rejected: %v", err)
	}
}

func TestRefreshRevokesPresentedToken(t *testing.T) {
	store := newMockStore()
	engine, _ := newTestEngine(t, testEngineConfig(), store)
	ctx := context.Background()

	pair := signedInPrincipal(t, engine)

	if _, err := engine.Refresh(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	// The rotation overwrote the slot, so the old token is dead.
	if _, err := engine.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for rotated-out token, got %v", err)
	}
	if got := counterValue(engine, MetricRefreshMismatch); got != 1 {
		t.Fatalf("expected 1 mismatch count, got %d", got)
	}
}

func TestRefreshAfterLogout(t *testing.T) {
	store := newMockStore()
	engine, _ := newTestEngine(t, testEngineConfig(), store)
	ctx := context.Background()

	pair := signedInPrincipal(t, engine)

	if _, err := engine.Logout(ctx, "alice@example.com"); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if _, err := engine.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after logout, got %v", err)
	}
	if got := counterValue(engine, MetricRefreshNoSession); got != 1 {
		t.Fatalf("expected 1 no-session count, got %d", got)
	}
}

func TestRefreshMalformedToken(t *testing.T) {
	engine, _ := newTestEngine(t, testEngineConfig(), newMockStore())

	for _, input := range []string{"", "garbage", "a.b.c"} {
		if _, err := engine.Refresh(context.Background(), input); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("input %q: expected ErrUnauthorized, got %v", input, err)
		}
	}
	if got := counterValue(engine, MetricRefreshMalformed); got != 3 {
		t.Fatalf("expected 3 malformed counts, got %d", got)
	}
}

func TestRefreshPrincipalGone(t *testing.T) {
	store := newMockStore()
	engine, _ := newTestEngine(t, testEngineConfig(), store)
	ctx := context.Background()

	pair := signedInPrincipal(t, engine)
	store.remove(pair.ID)

	if _, err := engine.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for vanished principal, got %v", err)
	}
	if got := counterValue(engine, MetricRefreshFailure); got != 1 {
		t.Fatalf("expected 1 refresh failure count, got %d", got)
	}
}

func TestRefreshPicksUpRoleChange(t *testing.T) {
	store := newMockStore()
	engine, _ := newTestEngine(t, testEngineConfig(), store)
	ctx := context.Background()

	pair := signedInPrincipal(t, engine)

	// Promote the principal, then rotate.
	store.setRole(pair.ID, RoleAdmin)

	rotated, err := engine.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	claims, err := engine.VerifyAccess(ctx, rotated.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccess failed: %v", err)
	}
	if claims.Role != string(RoleAdmin) {
		t.Fatalf("expected rotated claims to carry the new role, got %q", claims.Role)
	}
}

func TestConcurrentRotationLastWriterWins(t *testing.T) {
	store := newMockStore()
	engine, rdb := newTestEngine(t, testEngineConfig(), store)
	ctx := context.Background()

	pair := signedInPrincipal(t, engine)

	const n = 8
	results := make(chan TokenPair, n)
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			rotated, err := engine.Refresh(ctx, pair.RefreshToken)
			if err == nil {
				results <- rotated
				return
			}
			if !errors.Is(err, ErrUnauthorized) {
				t.Errorf("unexpected refresh error: %v", err)
			}
		}()
	}
	wg.Wait()
	close(results)

	issued := map[string]bool{}
	for rotated := range results {
		issued[rotated.RefreshToken] = true
	}
	if len(issued) == 0 {
		t.Fatal("expected at least one rotation to succeed")
	}

	// Whatever the interleaving, the slot holds exactly one of the issued
	// tokens and that token is usable; all others are dead.
	stored, err := rdb.Get(ctx, sessionKey("alice@example.com")).Result()
	if err != nil {
		t.Fatalf("slot read failed: %v", err)
	}
	if !issued[stored] {
		t.Fatal("stored token is not one of the issued rotations")
	}

	for token := range issued {
		if token == stored {
			continue
		}
		if _, err := engine.Refresh(ctx, token); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected losing rotation to be dead, got %v", err)
		}
	}

	if _, err := engine.Refresh(ctx, stored); err != nil {
		t.Fatalf("winning token failed to rotate: %v", err)
	}
}
