package rotorauth

import "errors"

var (
	// ErrUnauthorized is the uniform boundary signal for every verification and
	// rotation failure. Callers cannot distinguish which sub-check failed;
	// metrics and audit events record the internal cause.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials is returned by SignIn for both unknown email and
	// wrong password, merged to avoid account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPrincipalNotFound is returned by PrincipalStore lookups for absent
	// records. It surfaces only on authenticated self-lookups, never sign-in.
	ErrPrincipalNotFound = errors.New("principal not found")
	// ErrEmailTaken is returned by PrincipalStore.Create when the email is
	// already registered.
	ErrEmailTaken = errors.New("email already taken")
	// ErrInvalidRole marks a role value outside the closed enumeration.
	ErrInvalidRole = errors.New("invalid role")
	// ErrSignInRateLimited is returned when the sign-in throttle denies an
	// attempt before credentials are checked.
	ErrSignInRateLimited = errors.New("sign-in rate limited")
	// ErrSessionUnavailable wraps session-store transport failures.
	ErrSessionUnavailable = errors.New("session store unavailable")
	// ErrEngineNotReady is returned when an Engine method is called on an
	// engine missing a required collaborator.
	ErrEngineNotReady = errors.New("engine not initialized")
)
