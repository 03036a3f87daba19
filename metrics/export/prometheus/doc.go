// Package prometheus renders rotorauth metrics in Prometheus text exposition
// format.
//
// [NewExporter] accepts a [rotorauth.Engine] and exposes an [net/http.Handler]
// that serves all counters and the verify-latency histogram. Counter names are
// prefixed rotorauth_*_total; the single histogram is rotorauth_verify_latency.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry. Callers mount the
//     Handler wherever they want it.
//   - Mutate engine state.
package prometheus
