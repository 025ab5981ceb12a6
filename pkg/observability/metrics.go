// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package observability

import "github.com/prometheus/client_golang/prometheus"

// Label values for credential-layer metrics.
const (
	RealmClient = "client"
	RealmUser   = "user"

	ResultOK              = "ok"
	ResultUnauthenticated = "unauthenticated"
	ResultNotFound        = "not_found"
	ResultError           = "error"
)

// AuthAttempts is the counter for Authorization-header verifications.
// Use RegisterMetrics to register this with a Prometheus registry.
var AuthAttempts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "keyrail_auth_attempts_total",
		Help: "Total number of credential verifications by realm and result",
	},
	[]string{"realm", "result"},
)

// TokenRotations is the counter for access-token rotations at login.
// Use RegisterMetrics to register this with a Prometheus registry.
var TokenRotations = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "keyrail_token_rotations_total",
		Help: "Total number of access-token rotations",
	},
)

// ResetRequests is the counter for password-reset requests.
// Use RegisterMetrics to register this with a Prometheus registry.
var ResetRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "keyrail_reset_requests_total",
		Help: "Total number of password-reset requests by result",
	},
	[]string{"result"},
)

// RegisterMetrics registers credential-layer metrics with the given
// Prometheus registry. NewServer calls this for its own registry; call it
// directly when exposing metrics through a different exporter.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(AuthAttempts)
	reg.MustRegister(TokenRotations)
	reg.MustRegister(ResetRequests)
}

// RecordAuthAttempt increments the verification counter.
// Called by the authenticator for every header verification.
// Parameters:
//   - realm: which credential was verified (use Realm* constants)
//   - result: verification outcome (use Result* constants)
func RecordAuthAttempt(realm, result string) {
	AuthAttempts.WithLabelValues(realm, result).Inc()
}

// RecordTokenRotation increments the rotation counter.
// Called on every successful access-token rotation.
func RecordTokenRotation() {
	TokenRotations.Inc()
}

// RecordResetRequest increments the password-reset request counter.
// Parameters:
//   - result: request outcome (use Result* constants)
func RecordResetRequest(result string) {
	ResetRequests.WithLabelValues(result).Inc()
}
