package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"github.com/shamaton/msgpack/v2"
)

// Codec turns values of type V into bytes and back.
type Codec[V any] interface {
	Encode(value V) ([]byte, error)
	Decode(data []byte) (V, error)
}

// JSON stores values as JSON, the default for contract state.
type JSON[V any] struct{}

func (JSON[V]) Encode(value V) ([]byte, error) {
	bz, err := json.Marshal(value)
	if err != nil {
		return nil, errorsmod.Wrap(ErrCodec, err.Error())
	}
	return bz, nil
}

func (JSON[V]) Decode(data []byte) (V, error) {
	var value V
	if err := json.Unmarshal(data, &value); err != nil {
		return value, errorsmod.Wrap(ErrCodec, err.Error())
	}
	return value, nil
}

// Msgpack stores values with msgpack, more compact than JSON.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(value V) ([]byte, error) {
	bz, err := msgpack.Marshal(value)
	if err != nil {
		return nil, errorsmod.Wrap(ErrCodec, err.Error())
	}
	return bz, nil
}

func (Msgpack[V]) Decode(data []byte) (V, error) {
	var value V
	if err := msgpack.Unmarshal(data, &value); err != nil {
		return value, errorsmod.Wrap(ErrCodec, err.Error())
	}
	return value, nil
}

// KeyCodec encodes map keys. Encodings must preserve order, so that ranging
// over a Map visits keys in their natural order.
type KeyCodec[K any] interface {
	Encode(key K) []byte
	Decode(data []byte) (K, error)
}

type StringKey struct{}

func (StringKey) Encode(key string) []byte { return []byte(key) }

func (StringKey) Decode(data []byte) (string, error) { return string(data), nil }

type BytesKey struct{}

func (BytesKey) Encode(key []byte) []byte { return key }

func (BytesKey) Decode(data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Uint64Key encodes big-endian, which keeps numeric order.
type Uint64Key struct{}

func (Uint64Key) Encode(key uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, key)
}

func (Uint64Key) Decode(data []byte) (uint64, error) {
	if len(data) != 8 {
		return 0, errorsmod.Wrap(ErrCodec, fmt.Sprintf("uint64 key must be 8 bytes, got %d", len(data)))
	}
	return binary.BigEndian.Uint64(data), nil
}
