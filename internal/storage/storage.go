// Package storage provides the string-keyed key/value stores backing the task lists.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ErrInvalidKey is returned for keys that are empty or contain path separators.
var ErrInvalidKey = errors.New("invalid key")

// KV is a process-local, string-keyed store.
// Writes to the same key apply in call order.
type KV interface {
	// Get returns the value stored under key.
	// ok is false if the key has never been written.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Close releases resources held by the store.
	Close() error
}

// Params selects and configures a backend.
type Params struct {
	Backend string // memory, file or sqlite
	DataDir string // directory for the file backend
	DBPath  string // database file for the sqlite backend
}

// Open creates the KV selected by p.Backend.
func Open(p Params) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(p.Backend)) {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		return NewFile(p.DataDir)
	case BackendSQLite:
		return NewSQLite(p.DBPath)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", p.Backend)
	}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
