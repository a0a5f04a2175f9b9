// Package optional provides a JSON field that tells apart an omitted key, an
// explicit null and a value. Patch payloads use it so that omitting a field
// leaves the stored value alone while sending null clears it.
package optional

import (
	"bytes"
	"encoding/json"
)

type state uint8

const (
	absent state = iota
	null
	present
)

// Field is one of Absent, Null or Value(T). The zero value is Absent.
type Field[T any] struct {
	state state
	value T
}

// Value returns a Field holding v.
func Value[T any](v T) Field[T] {
	return Field[T]{state: present, value: v}
}

// Null returns an explicitly null Field.
func Null[T any]() Field[T] {
	return Field[T]{state: null}
}

// IsAbsent reports whether the field was omitted.
func (f Field[T]) IsAbsent() bool { return f.state == absent }

// IsNull reports whether the field was supplied as null.
func (f Field[T]) IsNull() bool { return f.state == null }

// IsSet reports whether the field was supplied at all, null included.
func (f Field[T]) IsSet() bool { return f.state != absent }

// Get returns the value and true when the field holds a value.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.state == present
}

// UnmarshalJSON is only invoked for keys present in the document, which is
// what makes an omitted key distinguishable from null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.state, f.value = null, zero
		return nil
	}
	if err := json.Unmarshal(data, &f.value); err != nil {
		return err
	}
	f.state = present
	return nil
}

// Ptr returns a pointer to the value, or nil when the field is not a value.
func (f Field[T]) Ptr() *T {
	if f.state != present {
		return nil
	}
	v := f.value
	return &v
}
