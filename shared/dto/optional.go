package dto

import "encoding/json"

// Optional distinguishes a JSON field that was absent from one that was
// explicitly null. Partial updates need the distinction: sending
// {"table_number": null} unassigns the table, while omitting the key leaves
// it untouched.
type Optional[T any] struct {
	Present bool
	Valid   bool
	Value   T
}

func NewOptional[T any](value T) Optional[T] {
	return Optional[T]{Present: true, Valid: true, Value: value}
}

func NullOptional[T any]() Optional[T] {
	return Optional[T]{Present: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(data) == "null" {
		return nil
	}

	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}

	o.Valid = true

	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(o.Value)
}

// Interface returns the value as a named-query argument, nil when the field
// was set to null.
func (o Optional[T]) Interface() any {
	if !o.Valid {
		return nil
	}

	return o.Value
}

func (o Optional[T]) IsPresent() bool {
	return o.Present
}

// OptionalField is the reflection hook TransformFields uses to tell an
// explicitly-null field apart from an absent one.
type OptionalField interface {
	IsPresent() bool
	Interface() any
}
