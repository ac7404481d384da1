package storage

import (
	"errors"
	"fmt"
)

var (
	// DefaultDir is where file backed stores keep their records.
	DefaultDir = "."
)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Key is the storage key for a general implementation
type Key struct {
	Prefix string `json:"prefix"`
	Label  string `json:"label"`
}

// Path is the flat name of the key, stable across backends.
func (k Key) Path() string {
	if k.Prefix == "" {
		return k.Label
	}
	return fmt.Sprintf("%s_%s", k.Prefix, k.Label)
}

// Persistence stores values as json records under a key.
// Load wraps NotFoundErr when nothing was stored under the key,
// and CouldNotLoadErr when the stored bytes cannot be decoded into value.
// Remove of a missing key is not an error.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
	Remove(k Key) error
}
