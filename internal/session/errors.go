package session

import "fmt"

// ValidationError reports input text that could not be coerced to the
// requested type.
type ValidationError struct {
	Input string
	Kind  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is not a valid %s.", e.Input, e.Kind)
}

// InputError reports that the input stream itself failed.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return "read input: " + e.Err.Error()
}

func (e *InputError) Unwrap() error { return e.Err }
