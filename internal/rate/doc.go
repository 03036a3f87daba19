// Package rate enforces the optional sign-in throttle with fixed-window
// Redis counters keyed by email and, optionally, by client IP. The window TTL
// is set on the first hit; counters reset on successful sign-in.
package rate
