// Package store is the flat key/value port the trainer persists through.
// Values are small JSON documents; every key is read and written on its own.
package store

import (
	"errors"
	"fmt"
	"log"
)

var ErrNotFound = errors.New("store: key not found")

type Store interface {
	// Get returns ErrNotFound when key has never been written or was deleted.
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(keys ...string) error
	Close() error
}

// Kinds accepted by Open.
const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
)

// Open picks an adapter by kind, rooted at dir.
func Open(kind, dir string, logger *log.Logger) (Store, error) {
	switch kind {
	case KindJSON:
		return OpenJSONFileStore(dir, logger)
	case KindSQLite:
		return OpenSQLiteStore(dir)
	default:
		return nil, fmt.Errorf("store: unknown kind %q", kind)
	}
}
