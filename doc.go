// Package rotorauth provides a credential engine with dual-secret JWT issuance,
// Redis-backed single-slot refresh sessions, rotation-by-overwrite, and role-based
// authorization for a closed role set.
//
// The package enforces one invariant above all others: at most one refresh token is
// valid per principal at any time. Every sign-in and every refresh routes through a
// single issuance path whose session write overwrites the previous slot, so the old
// refresh token stops working the moment a new one exists.
//
// # Architecture boundaries
//
// rotorauth is the public surface. It exposes [Engine], [Builder], [Config], the
// [PrincipalStore] collaborator interface, and value types (TokenPair, Principal,
// SecurityReport). Flow orchestration, audit dispatch, metric storage, and
// throttling live under internal/ and are never exported.
//
// # What this package must NOT do
//
//   - Expose Redis clients, internal stores, or token internals in its public API.
//   - Persist principal records; account storage belongs to the [PrincipalStore]
//     collaborator.
//   - Reveal which sub-check failed when verification or rotation is rejected;
//     callers see [ErrUnauthorized] and nothing more.
//
// # Performance contract
//
// VerifyAccess is the hot path: pure CPU, no Redis round-trip, no allocation beyond
// the returned claims. SignIn, Refresh, and Logout are allowed one session-store
// round-trip each (plus principal-store lookups).
package rotorauth
