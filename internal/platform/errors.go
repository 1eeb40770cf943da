package platform

import (
	"errors"
	"fmt"
)

var (
	// ErrEventsLoopClosed is returned by EventsLoopProxy.Wakeup once the
	// owning loop has been closed.
	ErrEventsLoopClosed = errors.New("events loop closed")

	// ErrNotSupported marks a refusal the platform cannot work around.
	ErrNotSupported = errors.New("not supported by backend")

	ErrTooManyWindows     = errors.New("backend window limit reached")
	ErrInvalidAttributes  = errors.New("invalid window attributes")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrUnknownBackend     = errors.New("unknown backend")
)

// CreationError reports that a window or a backend could not be
// materialized. It is never retried internally.
type CreationError struct {
	Backend string
	Op      string
	Err     error
}

// NewCreationError wraps err. If err already is a *CreationError it is
// returned unchanged.
func NewCreationError(backend, op string, err error) error {
	var ce *CreationError
	if errors.As(err, &ce) {
		return err
	}
	return &CreationError{Backend: backend, Op: op, Err: err}
}

func (e *CreationError) Error() string {
	if e.Backend == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Op, e.Backend, e.Err)
}

func (e *CreationError) Unwrap() error { return e.Err }

// CapabilityError is a recoverable refusal of a cursor operation.
type CapabilityError struct {
	Op     string
	Reason string
}

// Refuse builds the error returned by GrabCursor and SetCursorPosition on
// platforms that forbid the operation.
func Refuse(op, reason string) error {
	return &CapabilityError{Op: op, Reason: reason}
}

func (e *CapabilityError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v", e.Op, ErrNotSupported)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *CapabilityError) Is(target error) bool {
	return target == ErrNotSupported
}

// UnsupportedError is the panic value of FatalUnsupported. It is kept
// distinct from ordinary panics so callers and tests can tell the documented
// capability gap apart from a bug.
type UnsupportedError struct {
	Backend string
	Op      string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s has no meaning on the %s backend", e.Op, e.Backend)
}

// FatalUnsupported aborts a query for which no safe sentinel exists, such
// as the absolute position of the only surface of an embedded target.
func FatalUnsupported(backend, op string) {
	panic(&UnsupportedError{Backend: backend, Op: op})
}

// IsFatalUnsupported reports whether a recovered panic value came from
// FatalUnsupported.
func IsFatalUnsupported(recovered any) bool {
	_, ok := recovered.(*UnsupportedError)
	return ok
}
