package db

import (
	"bytes"
	"encoding/json"
)

// Nullable is a tri-state value for sparse updates and nullable-FK filters:
// unset (leave alone / no filter), explicitly null, or a value.
//
// Decoding JSON only touches fields present in the document, so a missing key
// stays unset while `null` becomes Null.
type Nullable[T any] struct {
	value T
	set   bool
	null  bool
}

// Some returns a Nullable holding v.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{value: v, set: true}
}

// Null returns an explicitly null Nullable.
func Null[T any]() Nullable[T] {
	return Nullable[T]{set: true, null: true}
}

// FromPtr maps nil to Null and a non-nil pointer to Some.
func FromPtr[T any](p *T) Nullable[T] {
	if p == nil {
		return Null[T]()
	}
	return Some(*p)
}

// IsSet reports whether the caller supplied the field at all.
func (n Nullable[T]) IsSet() bool { return n.set }

// IsNull reports whether the caller explicitly supplied null.
func (n Nullable[T]) IsNull() bool { return n.set && n.null }

// Get returns the value when one is present.
func (n Nullable[T]) Get() (T, bool) {
	if !n.set || n.null {
		var zero T
		return zero, false
	}
	return n.value, true
}

// Ptr returns nil for unset or null, else a pointer to a copy of the value.
func (n Nullable[T]) Ptr() *T {
	v, ok := n.Get()
	if !ok {
		return nil
	}
	return &v
}

// Param is the bind parameter for the value: nil when null.
func (n Nullable[T]) Param() any {
	if v, ok := n.Get(); ok {
		return v
	}
	return nil
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.null = true
		var zero T
		n.value = zero
		return nil
	}
	n.null = false
	return json.Unmarshal(data, &n.value)
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if v, ok := n.Get(); ok {
		return json.Marshal(v)
	}
	return []byte("null"), nil
}
