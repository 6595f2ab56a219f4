package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexID is a numeric identifier that accepts either a JSON number or a JSON
// string, so clients that stringify ids keep working.
type FlexID uint64

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	var n uint64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexID(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		val, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("FlexID: invalid id string %q: %w", s, err)
		}
		*f = FlexID(val)
		return nil
	}

	return fmt.Errorf("FlexID: expected number or string")
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexID) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint64(f))
}

// FlexIDList accepts a single id or an array of ids. Assign/unassign bodies
// commonly send a bare id for the one-word case.
type FlexIDList []FlexID

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexIDList) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '[' {
		var ids []FlexID
		if err := json.Unmarshal(data, &ids); err != nil {
			return err
		}
		*f = FlexIDList(ids)
		return nil
	}

	var id FlexID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*f = FlexIDList{id}
	return nil
}

// Uint64s converts the list back to plain uint64 values.
func (f FlexIDList) Uint64s() []uint64 {
	out := make([]uint64, len(f))
	for i, id := range f {
		out[i] = uint64(id)
	}
	return out
}
