package storage

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
)

// Map is a collection of values under a namespace. Its keys are the
// length-prefixed namespace followed by the encoded map key.
type Map[K, V any] struct {
	prefix []byte
	keys   KeyCodec[K]
	values Codec[V]
}

func NewMap[K, V any](namespace string, keys KeyCodec[K], values Codec[V]) Map[K, V] {
	return Map[K, V]{prefix: namespaceKey(namespace), keys: keys, values: values}
}

func (m Map[K, V]) storeKey(key K) []byte {
	return concat(m.prefix, m.keys.Encode(key))
}

func (m Map[K, V]) Save(store KVStore, key K, value V) error {
	bz, err := m.values.Encode(value)
	if err != nil {
		return err
	}
	return store.Set(m.storeKey(key), bz)
}

// Load returns the value under key or ErrNotFound.
func (m Map[K, V]) Load(store KVStore, key K) (V, error) {
	value, ok, err := m.MayLoad(store, key)
	if err != nil {
		return value, err
	}
	if !ok {
		return value, errorsmod.Wrap(ErrNotFound, fmt.Sprintf("%v", key))
	}
	return value, nil
}

func (m Map[K, V]) MayLoad(store KVStore, key K) (V, bool, error) {
	var zero V
	bz, err := store.Get(m.storeKey(key))
	if err != nil {
		return zero, false, err
	}
	if bz == nil {
		return zero, false, nil
	}
	value, err := m.values.Decode(bz)
	if err != nil {
		return zero, false, err
	}
	return value, true, nil
}

func (m Map[K, V]) Has(store KVStore, key K) (bool, error) {
	return store.Has(m.storeKey(key))
}

func (m Map[K, V]) Remove(store KVStore, key K) error {
	return store.Delete(m.storeKey(key))
}

// Range calls fn for every entry in ascending key order until fn returns false.
func (m Map[K, V]) Range(store KVStore, fn func(key K, value V) (bool, error)) error {
	it, err := store.Iterator(m.prefix, prefixEnd(m.prefix))
	if err != nil {
		return err
	}
	defer it.Close()

	for ; it.Valid(); it.Next() {
		key, err := m.keys.Decode(it.Key()[len(m.prefix):])
		if err != nil {
			return err
		}
		value, err := m.values.Decode(it.Value())
		if err != nil {
			return err
		}
		more, err := fn(key, value)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
	return it.Error()
}
