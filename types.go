package rotorauth

import (
	"context"
	"io"

	internalaudit "github.com/rotorauth/rotorauth/internal/audit"
	internalmetrics "github.com/rotorauth/rotorauth/internal/metrics"
)

// Role is the closed role enumeration carried in claims and checked by the
// authorization gate. Anything outside the declared constants is treated as
// no role at all and denies every gated route.
type Role string

const (
	// RoleUser is the default role for self-registered principals.
	RoleUser Role = "USER"
	// RoleAdmin grants access to administrative routes.
	RoleAdmin Role = "ADMIN"
	// RoleDev grants access to developer/operational routes.
	RoleDev Role = "DEV"
)

// Valid reports whether r is one of the declared role constants.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleDev:
		return true
	}
	return false
}

// ParseRole converts a stored role string into a [Role], rejecting anything
// outside the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Principal is the authenticated subject. The engine reads principals through
// [PrincipalStore] and never persists them itself; PasswordHash is produced by
// this package's argon2id hasher before Create is called.
type Principal struct {
	ID           int64
	Email        string
	Role         Role
	PasswordHash string
}

// Identity is the verified {id, email, role} triple used as the claims basis
// for token issuance.
type Identity struct {
	ID    int64
	Email string
	Role  Role
}

// TokenPair is the transient output of sign-in and refresh. It is never
// persisted beyond the response that carries it; only RefreshToken has a
// server-side shadow (the session slot).
type TokenPair struct {
	ID           int64
	Email        string
	AccessToken  string
	RefreshToken string
}

// SignUpInput is the input for [Engine.SignUp]. Role defaults to
// [Config.Account.DefaultRole] when empty.
type SignUpInput struct {
	Email    string
	Password string
	Role     Role
}

// PrincipalStore is the collaborator interface callers must implement to
// integrate rotorauth with their account database.
//
// FindByEmail and FindByID return [ErrPrincipalNotFound] for absent records.
// Create receives a Principal whose PasswordHash is already computed and must
// return [ErrEmailTaken] when the email is not unique; the returned Principal
// carries the assigned ID.
type PrincipalStore interface {
	FindByEmail(ctx context.Context, email string) (Principal, error)
	FindByID(ctx context.Context, id int64) (Principal, error)
	Create(ctx context.Context, p Principal) (Principal, error)
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer], one object per line.
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// Metrics holds atomic counters and the optional verify-latency histogram.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time deep copy of all metrics.
type MetricsSnapshot = internalmetrics.Snapshot
