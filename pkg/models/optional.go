package models

import "encoding/json"

// Optional distinguishes a field that was absent from a JSON document from
// one that was present, including an explicit null. Set is true when the key
// appeared; Value is nil for null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a present Optional holding JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v

	return nil
}

// Arg returns the value for binding as a query argument: nil for null.
func (o Optional[T]) Arg() any {
	if o.Value == nil {
		return nil
	}
	return *o.Value
}
