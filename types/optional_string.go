package types

import (
	"encoding/json"
)

// OptionalString is able to represent JSON's null or a string, so that an unset
// filter can be told apart from an empty one. The contract side type is Option<String>.
type OptionalString struct {
	Set bool
	// Value is only meaningful when Set is true.
	Value string
}

// None returns an unset OptionalString.
func None() OptionalString {
	return OptionalString{}
}

// Some returns an OptionalString holding value.
func Some(value string) OptionalString {
	return OptionalString{Set: true, Value: value}
}

// Get returns the value and whether it was set.
func (o OptionalString) Get() (string, bool) {
	return o.Value, o.Set
}

// String maps unset to the empty string. Use it when the difference no longer matters.
func (o OptionalString) String() string {
	if !o.Set {
		return ""
	}
	return o.Value
}

// MarshalJSON encodes a set OptionalString to a JSON string and an unset one to null
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON decodes a JSON string to a set OptionalString and null to an unset one
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = None()
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*o = Some(value)
	return nil
}
