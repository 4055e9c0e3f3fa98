package submission

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/edushetra/edushetra-api/internal/forms"
)

// State is the position of a form instance in its submit lifecycle
type State string

const (
	Idle       State = "idle"
	Submitting State = "submitting"
	Success    State = "success"
	// Failure is only ever reported in an Outcome; the machine itself goes back to Idle
	Failure State = "failure"
)

// ErrInFlight is returned when a submit arrives while another one is being persisted
var ErrInFlight = errors.New("submission already in flight")

// DefaultPersistTimeout bounds a persist call once it has been detached from the request
const DefaultPersistTimeout = 15 * time.Second

// ValidateFunc checks the record; a non-empty result keeps the machine Idle
type ValidateFunc func() forms.Errors

// PersistFunc writes the record and returns the stored id
type PersistFunc func(ctx context.Context) (string, error)

// Outcome is the result of one submit
type Outcome struct {
	State    State
	RecordID string
	// Replayed is set when the instance had already succeeded and persist was skipped
	Replayed bool
	Errors   forms.Errors
	Err      error
}

// Machine drives one form instance: Idle -> Submitting -> Success, or back to Idle
// through Failure. Success is terminal.
type Machine struct {
	mu             sync.Mutex
	state          State
	recordID       string
	persistTimeout time.Duration
}

// NewMachine creates a machine in Idle
func NewMachine(persistTimeout time.Duration) *Machine {
	if persistTimeout <= 0 {
		persistTimeout = DefaultPersistTimeout
	}
	return &Machine{state: Idle, persistTimeout: persistTimeout}
}

// State returns the current state
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Submit runs validate and, when it passes, persist. At most one persist runs at a
// time. Persist gets a context that outlives ctx so an abandoned request still
// finishes with a known result.
func (m *Machine) Submit(ctx context.Context, validate ValidateFunc, persist PersistFunc) (Outcome, error) {
	m.mu.Lock()
	switch m.state {
	case Success:
		id := m.recordID
		m.mu.Unlock()
		return Outcome{State: Success, RecordID: id, Replayed: true}, nil
	case Submitting:
		m.mu.Unlock()
		return Outcome{State: Submitting}, ErrInFlight
	}

	if errs := validate(); !errs.Valid() {
		m.mu.Unlock()
		return Outcome{State: Idle, Errors: errs}, nil
	}
	m.state = Submitting
	m.mu.Unlock()

	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.persistTimeout)
	defer cancel()

	id, err := persist(persistCtx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = Idle
		return Outcome{State: Failure, Err: err}, nil
	}
	m.state = Success
	m.recordID = id
	return Outcome{State: Success, RecordID: id}, nil
}
