// Package filestoretest provides an in-memory filestore.Store.
package filestoretest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/matt-dz/foodgram/internal/filestore"
)

// URLPrefix is prepended to keys by Memory.FileURL.
const URLPrefix = "http://files.test/"

// Memory hands out predictable keys: the n-th write gets "recipes/" followed
// by n letters k and the suffix.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte
	next    int
}

var _ filestore.Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

func (m *Memory) WriteRecipeImage(_ context.Context, suffix, _ string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	key := "recipes/" + strings.Repeat("k", m.next) + suffix
	m.objects[key] = data
	return key, nil
}

func (m *Memory) DeleteKey(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return filestore.ErrNotExist
	}
	delete(m.objects, key)
	return nil
}

func (m *Memory) FileURL(key string) string {
	if key == "" {
		return ""
	}
	return URLPrefix + key
}

// Put stores data under key directly.
func (m *Memory) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
}

// Keys returns the stored keys in sorted order.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
