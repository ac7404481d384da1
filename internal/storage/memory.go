package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStorage keeps the encoded records in a map.
type MemoryStorage struct {
	files map[Key][]byte
	mutex *sync.RWMutex
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		files: make(map[Key][]byte),
		mutex: new(sync.RWMutex),
	}
}

func (m *MemoryStorage) Store(k Key, value interface{}) error {
	bb, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal value: %w", err)
	}
	m.Put(k, bb)
	return nil
}

func (m *MemoryStorage) Load(k Key, value interface{}) error {
	bb, ok := m.Raw(k)
	if !ok {
		return fmt.Errorf("key '%s': %w", k.Path(), NotFoundErr)
	}
	if err := json.Unmarshal(bb, value); err != nil {
		return fmt.Errorf("could not unmarshal '%s': %v: %w", k.Path(), err, CouldNotLoadErr)
	}
	return nil
}

func (m *MemoryStorage) Remove(k Key) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.files, k)
	return nil
}

// Put stores the raw bytes under the key.
func (m *MemoryStorage) Put(k Key, bb []byte) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.files[k] = append([]byte(nil), bb...)
}

// Raw returns the bytes stored under the key.
func (m *MemoryStorage) Raw(k Key) ([]byte, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	bb, ok := m.files[k]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), bb...), true
}
