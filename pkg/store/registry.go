package store

import (
	"context"
	"sort"
	"sync"

	"github.com/hackbot/hackbot/pkg/config"
)

// Constructor is a function that returns a new store.
type Constructor func(ctx context.Context, cfg *config.Config) (Store, error)

var (
	registry = map[string]Constructor{}
	mtx      sync.RWMutex
)

// Register registers a store driver.
func Register(name string, fn Constructor) {
	mtx.Lock()
	defer mtx.Unlock()

	registry[name] = fn
}

// New returns a new store using the named driver.
func New(ctx context.Context, cfg *config.Config, name string) (Store, error) {
	mtx.RLock()
	fn, ok := registry[name]
	mtx.RUnlock()

	if !ok {
		return nil, ErrStoreNotFound
	}

	return fn(ctx, cfg)
}

// List returns the registered drivers, sorted by name.
func List() []string {
	mtx.RLock()
	defer mtx.RUnlock()
	stores := make([]string, 0, len(registry))
	for name := range registry {
		stores = append(stores, name)
	}
	sort.Strings(stores)
	return stores
}
