package token

import (
	"testing"
	"time"
)

// FuzzVerifyAccess exercises the verifier with arbitrary token strings.
// Goal: no panics; invalid inputs must be rejected with errors.
func FuzzVerifyAccess(f *testing.F) {
	codec, err := NewCodec(Config{
		AccessSecret:  []byte("fuzz-access-secret-0123456789abcdef"),
		RefreshSecret: []byte("fuzz-refresh-secret-0123456789abcde"),
		AccessTTL:     5 * time.Minute,
		RefreshTTL:    time.Hour,
		Issuer:        "fuzz-test",
		Leeway:        30 * time.Second,
	})
	if err != nil {
		f.Fatal(err)
	}

	valid, err := codec.SignAccess(1, "fuzz@example.com", "USER")
	if err != nil {
		f.Fatal(err)
	}

	f.Add(valid)
	f.Add("")
	f.Add("not.a.jwt")
	f.Add("eyJhbGciOiJIUzI1NiJ9.eyJpZCI6MX0.invalid")
	f.Add("eyJhbGciOiJub25lIn0.eyJpZCI6MX0.")

	f.Fuzz(func(t *testing.T, input string) {
		claims, err := codec.VerifyAccess(input)
		if err != nil {
			if claims != nil {
				t.Fatal("claims must be nil on verification error")
			}
			return
		}
		if claims == nil {
			t.Fatal("nil claims without error")
		}

		// The same guarantee holds for the unauthenticated decode path.
		if _, err := codec.DecodeUnverified(input); err != nil {
			t.Fatalf("verified token must also decode: %v", err)
		}
	})
}
