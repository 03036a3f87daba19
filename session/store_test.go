package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, "rs", ttl), mr
}

func TestPutGetRoundTrip(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	if err := store.Put(ctx, "alice@example.com", "token-1"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "token-1" {
		t.Fatalf("expected token-1, got %q", got)
	}
}

func TestGetAbsentSlot(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	if _, err := store.Get(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestPutOverwritesSlot(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	if err := store.Put(ctx, "alice@example.com", "token-1"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, "alice@example.com", "token-2"); err != nil {
		t.Fatalf("Put overwrite failed: %v", err)
	}

	got, err := store.Get(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "token-2" {
		t.Fatalf("expected latest token to win, got %q", got)
	}
}

func TestPutResetsTTL(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	if err := store.Put(ctx, "alice@example.com", "token-1"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	mr.FastForward(30 * time.Minute)

	// Overwriting restores the full lifetime.
	if err := store.Put(ctx, "alice@example.com", "token-2"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	remaining, err := store.TTL(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("TTL failed: %v", err)
	}
	if remaining != time.Hour {
		t.Fatalf("expected full TTL after overwrite, got %v", remaining)
	}
}

func TestSlotExpires(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	if err := store.Put(ctx, "alice@example.com", "token-1"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	mr.FastForward(time.Hour + time.Second)

	if _, err := store.Get(ctx, "alice@example.com"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after expiry, got %v", err)
	}
}

func TestSlotsAreKeyedPerEmail(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	if err := store.Put(ctx, "alice@example.com", "token-a"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, "bob@example.com", "token-b"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "alice@example.com")
	if err != nil || got != "token-a" {
		t.Fatalf("alice slot corrupted: %q %v", got, err)
	}
	got, err = store.Get(ctx, "bob@example.com")
	if err != nil || got != "token-b" {
		t.Fatalf("bob slot corrupted: %q %v", got, err)
	}
}
