package rotorauth

import (
	internalmetrics "github.com/rotorauth/rotorauth/internal/metrics"
)

// MetricID identifies a specific counter or histogram in the in-process
// metrics system.
type MetricID = internalmetrics.MetricID

const (
	// MetricSignInSuccess counts successful sign-ins.
	MetricSignInSuccess = internalmetrics.MetricSignInSuccess
	// MetricSignInFailure counts sign-ins rejected for unknown email or wrong
	// password (merged at the boundary, distinct in audit).
	MetricSignInFailure = internalmetrics.MetricSignInFailure
	// MetricSignInRateLimited counts throttled sign-in attempts.
	MetricSignInRateLimited = internalmetrics.MetricSignInRateLimited
	// MetricSignUpSuccess counts created principals.
	MetricSignUpSuccess = internalmetrics.MetricSignUpSuccess
	// MetricSignUpConflict counts sign-ups rejected for a taken email.
	MetricSignUpConflict = internalmetrics.MetricSignUpConflict
	// MetricRefreshSuccess counts successful rotations.
	MetricRefreshSuccess = internalmetrics.MetricRefreshSuccess
	// MetricRefreshMalformed counts rotations rejected at decode.
	MetricRefreshMalformed = internalmetrics.MetricRefreshMalformed
	// MetricRefreshNoSession counts rotations with no stored slot.
	MetricRefreshNoSession = internalmetrics.MetricRefreshNoSession
	// MetricRefreshMismatch counts rotations whose presented token differs
	// from the stored slot (already rotated or forged).
	MetricRefreshMismatch = internalmetrics.MetricRefreshMismatch
	// MetricRefreshFailure counts rotations that failed for any other reason.
	MetricRefreshFailure = internalmetrics.MetricRefreshFailure
	// MetricVerifySuccess counts accepted bearer tokens.
	MetricVerifySuccess = internalmetrics.MetricVerifySuccess
	// MetricVerifyExpired counts bearer tokens rejected as expired.
	MetricVerifyExpired = internalmetrics.MetricVerifyExpired
	// MetricVerifySignatureInvalid counts bearer tokens with bad signatures.
	MetricVerifySignatureInvalid = internalmetrics.MetricVerifySignatureInvalid
	// MetricVerifyMalformed counts bearer tokens that did not decode.
	MetricVerifyMalformed = internalmetrics.MetricVerifyMalformed
	// MetricForbidden counts role-gate denials.
	MetricForbidden = internalmetrics.MetricForbidden
	// MetricSessionCreated counts session-slot writes.
	MetricSessionCreated = internalmetrics.MetricSessionCreated
	// MetricLogout counts logout operations.
	MetricLogout = internalmetrics.MetricLogout
	// MetricVerifyLatency is the verify-path latency histogram.
	MetricVerifyLatency = internalmetrics.MetricVerifyLatency
)

// NewMetrics creates a new [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return internalmetrics.New(internalmetrics.Config{
		Enabled:       cfg.Enabled,
		EnableLatency: cfg.EnableLatencyHistograms,
	})
}
