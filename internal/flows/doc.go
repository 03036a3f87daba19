// Package flows contains the pure orchestration logic for sign-in, sign-up,
// token issuance, refresh rotation, and logout. Each flow takes a Deps struct
// of functions and small interfaces supplied by the root engine and returns a
// Result carrying either tokens or a failure kind; the engine maps kinds to
// its public sentinel errors, metrics, and audit events. Flows never import
// the root package.
package flows
