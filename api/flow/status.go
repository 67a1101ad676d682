/* status.go
 * Contains the submission state machine shared by the registration and interest flows, plus the user facing
 * messages and sentinel errors each transition can produce
 */

package flow

import (
	"errors"
	"sync"
	"sync/atomic"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

const (
	MsgMissingFields   = "Please fill in your name and email."
	MsgMissingEmail    = "Please enter your email."
	MsgInvalidEmail    = "Please enter a valid email address."
	MsgMissingToken    = "Please complete the captcha"
	MsgCaptchaRejected = "Captcha verification failed. Please try again."
	MsgGeneric         = "Something went wrong. Please try again."
)

var (
	ErrMissingFields      = errors.New("required fields are missing")
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrInvalidOption      = errors.New("option is not recognised")
	ErrMissingToken       = errors.New("captcha token is missing")
	ErrCaptchaRejected    = errors.New("captcha verification failed")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)

// IsUserError reports whether err was caused by the submitted input rather than by a dependency
func IsUserError(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrInvalidOption) ||
		errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrCaptchaRejected)
}

// TransitionFunc is called after every status change
type TransitionFunc func(from Status, to Status)

// machine holds a flow's status and message. inFlight stands in for the disabled submit button.
type machine struct {
	mu           sync.Mutex
	status       Status
	message      string
	onTransition TransitionFunc

	inFlight atomic.Bool
}

func (m *machine) setup(onTransition TransitionFunc) {
	m.status = StatusIdle
	m.onTransition = onTransition
}

// Status returns the current status
func (m *machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Message returns the user facing message for the current status, empty unless the status is error
func (m *machine) Message() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.message
}

func (m *machine) transition(to Status, message string) {
	m.mu.Lock()
	from := m.status
	m.status = to
	m.message = message
	fn := m.onTransition
	m.mu.Unlock()

	if fn != nil && from != to {
		fn(from, to)
	}
}

func (m *machine) fail(message string) {
	m.transition(StatusError, message)
}

// acquire marks a submission as started. The returned release must be called when it ends.
func (m *machine) acquire() (release func(), err error) {
	if !m.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	return func() { m.inFlight.Store(false) }, nil
}
