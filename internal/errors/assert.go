package errors

import "fmt"

// AssertionError is the panic value raised when a pipeline precondition does not hold.
// It is never returned as an error; only process boundaries recover it.
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("internal assertion failed: %s", e.Message)
}

// Assert aborts the current run with an *AssertionError when cond is false
func Assert(cond bool, message string) {
	if !cond {
		panic(&AssertionError{Message: message})
	}
}

// Recover converts a recovered panic value into an error. Panics that are not
// assertions are re-raised. Use as:
//
//	defer func() { err = errors.Recover(recover(), err) }()
func Recover(r any, err error) error {
	if r == nil {
		return err
	}
	if ae, ok := r.(*AssertionError); ok {
		return ae
	}
	panic(r)
}
