package internaldefs

import (
	rotorauth "github.com/rotorauth/rotorauth"
)

// CounterDef names one exported counter.
type CounterDef struct {
	ID   rotorauth.MetricID
	Name string
	Help string
}

// HistogramDef names one exported histogram.
type HistogramDef struct {
	ID   rotorauth.MetricID
	Name string
	Help string
}

// CounterDefs lists every counter in exposition order.
var CounterDefs = []CounterDef{
	{ID: rotorauth.MetricSignInSuccess, Name: "rotorauth_sign_in_success_total", Help: "Successful sign-in attempts."},
	{ID: rotorauth.MetricSignInFailure, Name: "rotorauth_sign_in_failure_total", Help: "Sign-in attempts rejected for unknown email or wrong password."},
	{ID: rotorauth.MetricSignInRateLimited, Name: "rotorauth_sign_in_rate_limited_total", Help: "Throttled sign-in attempts."},
	{ID: rotorauth.MetricSignUpSuccess, Name: "rotorauth_sign_up_success_total", Help: "Created principals."},
	{ID: rotorauth.MetricSignUpConflict, Name: "rotorauth_sign_up_conflict_total", Help: "Sign-up attempts rejected for a taken email."},
	{ID: rotorauth.MetricRefreshSuccess, Name: "rotorauth_refresh_success_total", Help: "Successful refresh rotations."},
	{ID: rotorauth.MetricRefreshMalformed, Name: "rotorauth_refresh_malformed_total", Help: "Refresh attempts whose token did not decode."},
	{ID: rotorauth.MetricRefreshNoSession, Name: "rotorauth_refresh_no_session_total", Help: "Refresh attempts with no stored session slot."},
	{ID: rotorauth.MetricRefreshMismatch, Name: "rotorauth_refresh_mismatch_total", Help: "Refresh attempts whose token differed from the stored slot."},
	{ID: rotorauth.MetricRefreshFailure, Name: "rotorauth_refresh_failure_total", Help: "Refresh attempts that failed for any other reason."},
	{ID: rotorauth.MetricVerifySuccess, Name: "rotorauth_verify_success_total", Help: "Accepted bearer tokens."},
	{ID: rotorauth.MetricVerifyExpired, Name: "rotorauth_verify_expired_total", Help: "Bearer tokens rejected as expired."},
	{ID: rotorauth.MetricVerifySignatureInvalid, Name: "rotorauth_verify_signature_invalid_total", Help: "Bearer tokens with invalid signatures."},
	{ID: rotorauth.MetricVerifyMalformed, Name: "rotorauth_verify_malformed_total", Help: "Bearer tokens that did not decode."},
	{ID: rotorauth.MetricForbidden, Name: "rotorauth_forbidden_total", Help: "Role-gate denials."},
	{ID: rotorauth.MetricSessionCreated, Name: "rotorauth_session_created_total", Help: "Session-slot writes (sign-in and rotation)."},
	{ID: rotorauth.MetricLogout, Name: "rotorauth_logout_total", Help: "Logout operations."},
}

// HistogramDefs lists every histogram in exposition order.
var HistogramDefs = []HistogramDef{
	{ID: rotorauth.MetricVerifyLatency, Name: "rotorauth_verify_latency", Help: "VerifyAccess latency distribution."},
}

// HistogramBounds are the rendered le labels, matching the internal bucket
// layout (last bucket is +Inf).
var HistogramBounds = [8]string{
	"0.0001", "0.00025", "0.0005", "0.001", "0.005", "0.025", "0.1", "+Inf",
}

// HistogramBoundSuffix provides OTel-safe instrument name suffixes for each
// bucket bound.
var HistogramBoundSuffix = [8]string{
	"100us", "250us", "500us", "1ms", "5ms", "25ms", "100ms", "inf",
}

// NormalizeBuckets pads or truncates a snapshot bucket slice to the fixed
// bucket count.
func NormalizeBuckets(buckets []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(buckets); i++ {
		out[i] = buckets[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative counts
// Prometheus histograms expect.
func CumulativeBuckets(buckets [8]uint64) [8]uint64 {
	var out [8]uint64
	var sum uint64
	for i, v := range buckets {
		sum += v
		out[i] = sum
	}
	return out
}
