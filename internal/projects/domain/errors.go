package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that no project exists for an id. FetchByID returns it
// as an ordinary outcome; Update and Delete return it wrapped in a StoreError.
var ErrNotFound = errors.New("project not found")

// StoreError wraps a failure of the persistence layer.
type StoreError struct {
	Op  string
	ID  int
	Err error
}

func (e *StoreError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s project %d: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s project: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError wraps err unless it is nil or already a StoreError.
func NewStoreError(op string, id int, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, ID: id, Err: err}
}
