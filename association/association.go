// Package association holds values that are loaded outside the object they
// belong to. A loader fills the slot before resolution starts; generated
// association accessors read it back with TryUnwrap.
package association

import (
	"errors"
	"fmt"
)

// ErrNotLoaded is returned when an association is read before it was
// loaded, or when loading it failed.
var ErrNotLoaded = errors.New("association not loaded")

// State is the load state of an association.
type State int

const (
	Unset State = iota
	Loaded
	Failed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unset:
		return "unset"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Slot is an association of type T. The zero value is Unset.
//
// A Slot has no locking: the loader writes it once before any reader
// starts.
type Slot[T any] struct {
	state State
	value T
	err   error
}

// HasOne is a single associated value.
type HasOne[T any] = Slot[T]

// HasMany is a list of associated values.
type HasMany[T any] = Slot[[]T]

// Of returns a loaded slot holding v.
func Of[T any](v T) Slot[T] {
	return Slot[T]{state: Loaded, value: v}
}

// Set stores v and marks the slot loaded.
func (s *Slot[T]) Set(v T) {
	s.state, s.value, s.err = Loaded, v, nil
}

// Fail records that loading failed with err.
func (s *Slot[T]) Fail(err error) {
	var zero T

	s.state, s.value, s.err = Failed, zero, err
}

// Reset returns the slot to Unset.
func (s *Slot[T]) Reset() {
	*s = Slot[T]{}
}

// State returns the load state.
func (s *Slot[T]) State() State {
	return s.state
}

// IsLoaded reports whether a value is available.
func (s *Slot[T]) IsLoaded() bool {
	return s.state == Loaded
}

// TryUnwrap returns a pointer to the loaded value. Unset and failed slots
// return an error matching ErrNotLoaded; a failed slot also wraps the
// loader's error.
func (s *Slot[T]) TryUnwrap() (*T, error) {
	switch s.state {
	case Loaded:
		return &s.value, nil
	case Failed:
		if s.err == nil {
			return nil, ErrNotLoaded
		}

		return nil, fmt.Errorf("%w: %w", ErrNotLoaded, s.err)
	default:
		return nil, ErrNotLoaded
	}
}

// Get returns the value, or the zero value if the slot is not loaded.
func (s *Slot[T]) Get() T {
	if s.state != Loaded {
		var zero T
		return zero
	}

	return s.value
}
