package storage

import (
	errorsmod "cosmossdk.io/errors"
)

// Item is a single value stored under a fixed key.
type Item[V any] struct {
	key   []byte
	codec Codec[V]
}

func NewItem[V any](key string, codec Codec[V]) Item[V] {
	if key == "" {
		panic("storage: empty item key")
	}
	return Item[V]{key: []byte(key), codec: codec}
}

func (i Item[V]) Save(store KVStore, value V) error {
	bz, err := i.codec.Encode(value)
	if err != nil {
		return err
	}
	return store.Set(i.key, bz)
}

// Load returns the stored value or ErrNotFound.
func (i Item[V]) Load(store KVStore) (V, error) {
	value, ok, err := i.MayLoad(store)
	if err != nil {
		return value, err
	}
	if !ok {
		return value, errorsmod.Wrap(ErrNotFound, string(i.key))
	}
	return value, nil
}

// MayLoad returns the stored value and whether it was present.
func (i Item[V]) MayLoad(store KVStore) (V, bool, error) {
	var zero V
	bz, err := store.Get(i.key)
	if err != nil {
		return zero, false, err
	}
	if bz == nil {
		return zero, false, nil
	}
	value, err := i.codec.Decode(bz)
	if err != nil {
		return zero, false, errorsmod.Wrap(err, string(i.key))
	}
	return value, true, nil
}

func (i Item[V]) Exists(store KVStore) (bool, error) {
	return store.Has(i.key)
}

func (i Item[V]) Remove(store KVStore) error {
	return store.Delete(i.key)
}

// Update loads the value, applies fn and saves the result.
// fn receives the zero value and false when nothing is stored yet.
func (i Item[V]) Update(store KVStore, fn func(value V, found bool) (V, error)) (V, error) {
	value, found, err := i.MayLoad(store)
	if err != nil {
		return value, err
	}
	value, err = fn(value, found)
	if err != nil {
		return value, err
	}
	return value, i.Save(store, value)
}
