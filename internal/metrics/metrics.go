// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Authentication failure reasons.
const (
	AuthReasonMissingCredentials = "missing_credentials"
	AuthReasonUnknownIdentity    = "unknown_identity"
	AuthReasonBadSecret          = "bad_secret"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// User metrics
	IncUserCreated()

	// Course metrics
	IncCourseCreated()
	IncCourseUpdated()
	IncCourseDeleted()
	IncOwnershipDenied()

	// Authentication metrics
	IncAuthSuccess()
	IncAuthFailure(reason string)
	ObserveAuthDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
