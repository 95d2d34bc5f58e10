// Package store persists predictions, the active-prediction pointer,
// save slots, and settings through a small key-value gateway. Values are
// JSON-serialized strings; write failures always propagate because silent
// data loss defeats the point of the tool.
package store

import "errors"

// ErrNotFound marks a missing key or prediction.
var ErrNotFound = errors.New("not found")

// KV is the byte-store interface the core depends on. Implementations
// are synchronous; concurrent writers from separate processes are
// serialized by the implementation (see SQLite) or last-write-wins.
type KV interface {
	// Get returns the value for key, with ok=false when absent.
	Get(key string) (value string, ok bool, err error)
	// Set stores the value, reporting quota or I/O failures.
	Set(key, value string) error
	// Delete removes the key; deleting an absent key is not an error.
	Delete(key string) error
	// Keys returns all keys with the given prefix, sorted.
	Keys(prefix string) ([]string, error)
	// Close releases the underlying resources.
	Close() error
}
