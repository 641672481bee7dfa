package storage

import (
	"context"
	"strings"
	"sync"
)

type memoryStorage struct {
	lock sync.Mutex
	data map[string][]byte
}

// NewMemoryStorage returns an in-memory storage system, mostly useful for
// tests and fixtures.
func NewMemoryStorage() *memoryStorage {
	return &memoryStorage{data: make(map[string][]byte)}
}

// Put seeds the storage with a log under the given key.
func (m *memoryStorage) Put(key string, data []byte) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.data[key] = data
}

func (m *memoryStorage) Read(ctx context.Context, key string) ([]byte, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	data, ok := m.data[key]
	if !ok {
		return nil, ErrDoesNotExist
	}

	return data, nil
}

func (m *memoryStorage) Keys(ctx context.Context, prefix string) ([]string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	ret := []string{}

	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			ret = append(ret, k)
		}
	}

	return ret, nil
}
