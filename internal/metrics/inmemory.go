package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersCreated        uint64
	CoursesCreated      uint64
	CoursesUpdated      uint64
	CoursesDeleted      uint64
	OwnershipDenied     uint64
	AuthSuccess         uint64
	AuthFailures        map[string]uint64
	AuthDurationCount   uint64
	AuthDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	usersCreated        uint64
	coursesCreated      uint64
	coursesUpdated      uint64
	coursesDeleted      uint64
	ownershipDenied     uint64
	authSuccess         uint64
	authMissing         uint64
	authUnknown         uint64
	authBadSecret       uint64
	authDurationCount   uint64
	authDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersCreated:    atomic.LoadUint64(&m.usersCreated),
		CoursesCreated:  atomic.LoadUint64(&m.coursesCreated),
		CoursesUpdated:  atomic.LoadUint64(&m.coursesUpdated),
		CoursesDeleted:  atomic.LoadUint64(&m.coursesDeleted),
		OwnershipDenied: atomic.LoadUint64(&m.ownershipDenied),
		AuthSuccess:     atomic.LoadUint64(&m.authSuccess),
		AuthFailures: map[string]uint64{
			AuthReasonMissingCredentials: atomic.LoadUint64(&m.authMissing),
			AuthReasonUnknownIdentity:    atomic.LoadUint64(&m.authUnknown),
			AuthReasonBadSecret:          atomic.LoadUint64(&m.authBadSecret),
		},
		AuthDurationCount:   atomic.LoadUint64(&m.authDurationCount),
		AuthDurationTotalNs: atomic.LoadInt64(&m.authDurationTotalNs),
	}
}

// IncUserCreated increments the user created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}

// IncCourseCreated increments the course created counter.
func (m *InMemoryRecorder) IncCourseCreated() {
	atomic.AddUint64(&m.coursesCreated, 1)
}

// IncCourseUpdated increments the course updated counter.
func (m *InMemoryRecorder) IncCourseUpdated() {
	atomic.AddUint64(&m.coursesUpdated, 1)
}

// IncCourseDeleted increments the course deleted counter.
func (m *InMemoryRecorder) IncCourseDeleted() {
	atomic.AddUint64(&m.coursesDeleted, 1)
}

// IncOwnershipDenied increments the forbidden mutation counter.
func (m *InMemoryRecorder) IncOwnershipDenied() {
	atomic.AddUint64(&m.ownershipDenied, 1)
}

// IncAuthSuccess increments the successful authentication counter.
func (m *InMemoryRecorder) IncAuthSuccess() {
	atomic.AddUint64(&m.authSuccess, 1)
}

// IncAuthFailure increments the failure counter for reason. Unknown reasons are ignored.
func (m *InMemoryRecorder) IncAuthFailure(reason string) {
	switch reason {
	case AuthReasonMissingCredentials:
		atomic.AddUint64(&m.authMissing, 1)
	case AuthReasonUnknownIdentity:
		atomic.AddUint64(&m.authUnknown, 1)
	case AuthReasonBadSecret:
		atomic.AddUint64(&m.authBadSecret, 1)
	}
}

// ObserveAuthDuration records time spent authenticating.
func (m *InMemoryRecorder) ObserveAuthDuration(duration time.Duration) {
	atomic.AddUint64(&m.authDurationCount, 1)
	atomic.AddInt64(&m.authDurationTotalNs, duration.Nanoseconds())
}
