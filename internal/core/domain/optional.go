package domain

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes a JSON key that was absent from one that was sent,
// including one sent as null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Value: value}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}

	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}

	return json.Marshal(o.Value)
}

func (o Optional[T]) collect(into map[string]any, column string) {
	if !o.Set {
		return
	}

	if o.Null {
		into[column] = nil
		return
	}

	into[column] = o.Value
}
