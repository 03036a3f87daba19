// Package session persists the single refresh-session slot each principal is
// allowed to hold. The slot is one Redis key per email whose value is the
// currently valid refresh-token string and whose TTL equals the refresh
// token's lifetime.
//
// # Design
//
// Put always overwrites: there is no merge, no append, and no lock. Two Puts
// racing for the same email resolve last-writer-wins, which is exactly the
// single-session invariant — whichever write lands last is the one session
// that remains valid. Redis's per-key write atomicity is the only coordination
// relied upon.
//
// # What this package must NOT do
//
//   - Inspect or validate the token value it stores; it is an opaque string.
//   - Hold more than one slot per email.
package session
