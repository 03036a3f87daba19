// Package token signs and verifies the compact claims tokens issued by
// rotorauth. Both token classes (access, refresh) share one claims shape but
// are signed with independent HS256 secrets and independent TTLs, so
// compromise of one secret never forges the other class.
//
// # Architecture boundaries
//
// This package owns claim layout, signing, verification, and the explicitly
// unauthenticated [Codec.DecodeUnverified]. It holds no mutable state and
// performs no I/O; session persistence belongs to the session package.
//
// # What this package must NOT do
//
//   - Authorize anything from DecodeUnverified output. The decode exists only
//     so the rotation flow knows which session slot to look up; authenticity
//     comes from the stored-token equality check, never from the decode.
//   - Accept any signing algorithm other than HS256 during verification.
package token
