package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, cfg Config) (*Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(client, cfg), mr
}

func TestNilLimiterIsNoOp(t *testing.T) {
	var l *Limiter
	ctx := context.Background()

	if err := l.Check(ctx, "a@example.com", "1.2.3.4"); err != nil {
		t.Fatalf("nil Check failed: %v", err)
	}
	if err := l.Increment(ctx, "a@example.com", "1.2.3.4"); err != nil {
		t.Fatalf("nil Increment failed: %v", err)
	}
	if err := l.Reset(ctx, "a@example.com", "1.2.3.4"); err != nil {
		t.Fatalf("nil Reset failed: %v", err)
	}
}

func TestLimiterExhaustsBudget(t *testing.T) {
	l, _ := newTestLimiter(t, Config{MaxAttempts: 3, Cooldown: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := l.Check(ctx, "a@example.com", ""); err != nil {
			t.Fatalf("Check #%d failed: %v", i+1, err)
		}
		if err := l.Increment(ctx, "a@example.com", ""); err != nil {
			t.Fatalf("Increment #%d failed: %v", i+1, err)
		}
	}

	// The budget is spent; the next attempt trips the limiter.
	if err := l.Increment(ctx, "a@example.com", ""); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if err := l.Check(ctx, "a@example.com", ""); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected Check to report ErrRateLimited, got %v", err)
	}

	// Other emails are unaffected.
	if err := l.Check(ctx, "b@example.com", ""); err != nil {
		t.Fatalf("unrelated email throttled: %v", err)
	}
}

func TestLimiterResetClearsCounters(t *testing.T) {
	l, _ := newTestLimiter(t, Config{MaxAttempts: 1, Cooldown: time.Minute})
	ctx := context.Background()

	if err := l.Increment(ctx, "a@example.com", ""); err != nil {
		t.Fatalf("Increment failed: %v", err)
	}
	if err := l.Increment(ctx, "a@example.com", ""); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	if err := l.Reset(ctx, "a@example.com", ""); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if err := l.Check(ctx, "a@example.com", ""); err != nil {
		t.Fatalf("expected clean slate after reset, got %v", err)
	}
}

func TestLimiterWindowExpires(t *testing.T) {
	l, mr := newTestLimiter(t, Config{MaxAttempts: 1, Cooldown: time.Minute})
	ctx := context.Background()

	if err := l.Increment(ctx, "a@example.com", ""); err != nil {
		t.Fatalf("Increment failed: %v", err)
	}
	if err := l.Increment(ctx, "a@example.com", ""); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	mr.FastForward(time.Minute + time.Second)

	if err := l.Check(ctx, "a@example.com", ""); err != nil {
		t.Fatalf("expected window to expire, got %v", err)
	}
}

func TestLimiterIPThrottle(t *testing.T) {
	l, _ := newTestLimiter(t, Config{EnableIPThrottle: true, MaxAttempts: 2, Cooldown: time.Minute})
	ctx := context.Background()

	// Distinct emails behind one IP share the IP budget.
	if err := l.Increment(ctx, "a@example.com", "1.2.3.4"); err != nil {
		t.Fatalf("Increment failed: %v", err)
	}
	if err := l.Increment(ctx, "b@example.com", "1.2.3.4"); err != nil {
		t.Fatalf("Increment failed: %v", err)
	}
	if err := l.Increment(ctx, "c@example.com", "1.2.3.4"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected IP budget exhaustion, got %v", err)
	}

	// A different IP is unaffected.
	if err := l.Check(ctx, "d@example.com", "5.6.7.8"); err != nil {
		t.Fatalf("unrelated IP throttled: %v", err)
	}
}
