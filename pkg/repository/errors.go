package repository

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all layers. NotFound and validation failures are
// expected conditions the caller can recover from; anything else is treated
// as unexpected at the boundary.

// ErrIDMismatch is raised by the request handler when the path id and the
// body id disagree, before the service is invoked.
var ErrIDMismatch = errors.New("Id mismatch")

// NotFoundError reports an absent employee. ID is zero for search misses,
// which carry their own message.
type NotFoundError struct {
	ID      int64
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Employee id: %d was not found in database", e.ID)
}

// NewNotFound reports a missing employee id.
func NewNotFound(id int64) *NotFoundError {
	return &NotFoundError{ID: id}
}

// NewSearchNotFound reports a name search with zero matches. The message is
// fixed; the query terms are not echoed back.
func NewSearchNotFound() *NotFoundError {
	return &NotFoundError{Message: "Employee was not found in database"}
}

// ValidationError carries the first violated rule's message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
