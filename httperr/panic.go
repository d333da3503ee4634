package httperr

import "fmt"

// PanicError wraps a non-error value recovered from a panic on the
// request path so it can travel through classification like any other
// error.
type PanicError struct {
	Value any
}

// Error returns the panic value's string form.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
