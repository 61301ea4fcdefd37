package engine

import "errors"

// ErrNotReady reports that an entity a system depends on does not exist
// yet, or has already been removed. Systems skip their work for the tick
// when they see it.
var ErrNotReady = errors.New("not ready")

// NotReadyError names the missing role. It matches ErrNotReady with
// errors.Is.
type NotReadyError struct {
	Role string
}

// NotReady returns a NotReadyError for role.
func NotReady(role string) *NotReadyError {
	return &NotReadyError{Role: role}
}

func (e *NotReadyError) Error() string {
	return e.Role + " not ready"
}

func (e *NotReadyError) Is(target error) bool {
	return target == ErrNotReady
}

// IsNotReady reports whether err is a not-ready result.
func IsNotReady(err error) bool {
	return errors.Is(err, ErrNotReady)
}
