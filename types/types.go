package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Uint64 is a wrapper for uint64, but it is marshalled to and from JSON as a string
type Uint64 uint64

func (u Uint64) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(u), 10))
}

func (u *Uint64) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("cannot unmarshal %s into Uint64, expected string-encoded integer", data)
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("cannot unmarshal %s into Uint64, failed to parse integer", data)
	}
	*u = Uint64(v)
	return nil
}

// HumanAddress is a printable (typically bech32 encoded) address string. Just use it as a label for developers.
type HumanAddress = string

// Coin is a string representation of the sdk.Coin type (more portable than sdk.Int)
type Coin struct {
	Denom  string `json:"denom" yaml:"denom"`   // type, eg. "uscrt"
	Amount string `json:"amount" yaml:"amount"` // string encoding of an unsigned integer, eg. "100"
}

func NewCoin(amount uint64, denom string) Coin {
	return Coin{
		Denom:  denom,
		Amount: strconv.FormatUint(amount, 10),
	}
}

// Coins is the JSON list form of a set of coins. It always encodes as "[]" when empty.
type Coins = Array[Coin]

// Array is a wrapper around a slice that ensures that we get "[]" JSON for nil values.
// When unmarshalling, we get an empty slice for "[]" and "null".
//
// This is needed for fields that are "Vec<C>" on the contract side because `null` values
// will result in an error there.
type Array[C any] []C

// MarshalJSON ensures that we get "[]" for nil arrays
func (a Array[C]) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return []byte("[]"), nil
	}
	var raw []C = a
	return json.Marshal(raw)
}

// UnmarshalJSON ensures that we get an empty slice for "[]" and "null"
func (a *Array[C]) UnmarshalJSON(data []byte) error {
	var raw []C
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	// make sure we deserialize [] back to empty slice
	if len(raw) == 0 {
		raw = []C{}
	}
	*a = raw
	return nil
}
