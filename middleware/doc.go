// Package middleware provides net/http glue for rotorauth.
//
// [Guard] is the strict gate: it requires a valid bearer token, checks the
// route's declared role set, and injects the verified claims into the request
// context. [Optional] preserves the optional-auth behavior where a missing
// token lets the request proceed anonymously while a present-but-invalid
// token is still rejected; it performs no role checks, so role-gated routes
// must use Guard.
package middleware
