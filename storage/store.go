// Package storage provides namespaced, typed key/value slots for contract state.
//
// An Item is a single value under a fixed key. A Map is a keyed collection under a
// length-prefixed namespace. Both are plain values describing where and how data is
// stored; the store itself is passed to every call, so the same Item can be used
// against a writable store during execution and a read-only view during queries.
package storage

import (
	errorsmod "cosmossdk.io/errors"
	dbm "github.com/cometbft/cometbft-db"
)

const Codespace = "ensemble_storage"

var (
	ErrNotFound = errorsmod.Register(Codespace, 2, "not found")
	ErrReadOnly = errorsmod.Register(Codespace, 3, "store is read-only")
	ErrCodec    = errorsmod.Register(Codespace, 4, "codec error")
)

// KVStore is the subset of a cometbft-db DB that contract state needs.
// Get returns nil for a missing key.
type KVStore interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Iterator(start, end []byte) (dbm.Iterator, error)
}

var _ KVStore = (dbm.DB)(nil)

// ReadOnly wraps store so that every write fails with ErrReadOnly.
func ReadOnly(store KVStore) KVStore {
	if ro, ok := store.(readOnly); ok {
		return ro
	}
	return readOnly{store}
}

type readOnly struct {
	KVStore
}

func (readOnly) Set(key, _ []byte) error {
	return errorsmod.Wrapf(ErrReadOnly, "set %x", key)
}

func (readOnly) Delete(key []byte) error {
	return errorsmod.Wrapf(ErrReadOnly, "delete %x", key)
}

// namespaceKey returns the two byte big-endian length of namespace followed by namespace.
func namespaceKey(namespace string) []byte {
	if len(namespace) > 0xFFFF {
		panic("storage: namespace longer than 65535 bytes")
	}
	out := make([]byte, 0, 2+len(namespace))
	out = append(out, byte(len(namespace)>>8), byte(len(namespace)))
	return append(out, namespace...)
}

// prefixEnd returns the smallest key greater than every key starting with prefix,
// or nil if there is none.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

func concat(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// Prefix returns the part of db under the length-prefixed namespace. Keys
// written through it are isolated from every other namespace of db.
func Prefix(db dbm.DB, namespace string) dbm.DB {
	return dbm.NewPrefixDB(db, namespaceKey(namespace))
}
