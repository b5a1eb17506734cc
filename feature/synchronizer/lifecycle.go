package synchronizer

import (
	"sync"
	"time"

	"asset-sync/core/manifest"
)

// State is the lifecycle state of the candidate build.
type State string

const (
	StateParsed     State = "parsed"
	StateInstalling State = "installing"
	StateInstalled  State = "installed"
	StateActivating State = "activating"
	StateActivated  State = "activated"
	StateRedundant  State = "redundant"
)

// Snapshot is a point in time view of the lifecycle.
type Snapshot struct {
	State            State     `json:"state"`
	SkipWaiting      bool      `json:"skip_waiting"`
	Claimed          bool      `json:"claimed"`
	ActiveVersion    string    `json:"active_version"`
	CandidateVersion string    `json:"candidate_version"`
	ActiveResources  int       `json:"active_resources"`
	LastError        string    `json:"last_error,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Lifecycle tracks the candidate build through install and activation and
// the build currently controlling reads.
type Lifecycle struct {
	mu          sync.RWMutex
	state       State
	skipWaiting bool
	claimed     bool
	candidate   *manifest.Build
	active      *manifest.Build
	lastErr     string
	updatedAt   time.Time
}

func newLifecycle(candidate *manifest.Build) *Lifecycle {
	return &Lifecycle{state: StateParsed, candidate: candidate, updatedAt: time.Now().UTC()}
}

func (l *Lifecycle) set(s State) {
	l.state = s
	l.updatedAt = time.Now().UTC()
}

// stage replaces the candidate build.
func (l *Lifecycle) stage(b *manifest.Build) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.candidate = b
	l.skipWaiting = false
	l.lastErr = ""
	l.set(StateParsed)
}

// beginInstall moves to installing and returns the state to restore on failure.
func (l *Lifecycle) beginInstall() (*manifest.Build, State, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.candidate == nil {
		return nil, l.state, ErrInvalidState
	}
	prev := l.state
	l.set(StateInstalling)
	return l.candidate, prev, nil
}

func (l *Lifecycle) installed() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastErr = ""
	l.set(StateInstalled)
}

func (l *Lifecycle) restore(prev State, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastErr = err.Error()
	l.set(prev)
}

func (l *Lifecycle) beginActivate() (*manifest.Build, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateInstalled {
		return nil, ErrInvalidState
	}
	l.set(StateActivating)
	return l.candidate, nil
}

// activated makes b the controlling build and claims reads.
func (l *Lifecycle) activated(b *manifest.Build) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.active = b
	l.claimed = true
	l.skipWaiting = false
	l.lastErr = ""
	l.set(StateActivated)
}

func (l *Lifecycle) rolledBack(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastErr = err.Error()
	l.set(StateRedundant)
}

// SkipWaiting lets an installed candidate activate even when another build is active.
func (l *Lifecycle) SkipWaiting() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.skipWaiting = true
}

// ShouldActivate reports whether an installed candidate may activate now.
func (l *Lifecycle) ShouldActivate() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == StateInstalled && (l.skipWaiting || l.active == nil)
}

// State returns the current state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Controller returns the build controlling reads, or nil before the first claim.
func (l *Lifecycle) Controller() *manifest.Build {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.claimed {
		return nil
	}
	return l.active
}

// Candidate returns the staged build.
func (l *Lifecycle) Candidate() *manifest.Build {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.candidate
}

// Snapshot returns a copy of the lifecycle state.
func (l *Lifecycle) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s := Snapshot{
		State:       l.state,
		SkipWaiting: l.skipWaiting,
		Claimed:     l.claimed,
		LastError:   l.lastErr,
		UpdatedAt:   l.updatedAt,
	}
	if l.active != nil {
		s.ActiveVersion = l.active.Version
		s.ActiveResources = len(l.active.Resources)
	}
	if l.candidate != nil {
		s.CandidateVersion = l.candidate.Version
	}
	return s
}
