package faces

import "fmt"

// ValidationError reports a request that is invalid before any network call
// is made, e.g. submitting an empty face list for assignment.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StateError reports an action attempted from a disallowed controller state,
// e.g. a double submit while a previous one is still in flight.
type StateError struct {
	Op    string
	State string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Op, e.State)
}
