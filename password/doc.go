// Package password hashes and verifies principal passwords with argon2id,
// encoded in the standard PHC string format. Verification is constant-time
// over the derived keys.
package password
