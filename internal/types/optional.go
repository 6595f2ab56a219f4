package types

import (
	"encoding/json"
)

// Optional is a tri-state JSON field for PATCH bodies: absent, explicit null,
// or a value. Partial updates need all three states, since "null" and
// "not sent" mean different things for fields like lang_code.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON implements the json.Unmarshaler interface. It is only invoked
// when the key is present, so Set is always true here.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON implements the json.Marshaler interface.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
