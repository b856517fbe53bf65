// Package testutil provides in-memory fakes for testing the cache layers
// without a real Redis server.
package testutil

import (
	"context"
	"sync"

	"feedback-cache/cache"
	"feedback-cache/internal/common/errors"
)

// FakeRemote implements cache.RemoteStore for testing. It starts unreachable;
// tests drive connectivity with FireReady and FireError.
type FakeRemote struct {
	mu       sync.RWMutex
	data     map[string]fakeEntry
	up       bool
	watchers []func(up bool, err error)

	// Control error injection
	ErrorOnMethod map[string]error

	// Call counters, incremented on every attempt including failed ones
	GetCalls    int
	SetCalls    int
	DeleteCalls int
	ClearCalls  int
	SizeCalls   int
}

type fakeEntry struct {
	value      string
	ttlSeconds int64
}

// NewFakeRemote creates a new fake remote store
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		data:          make(map[string]fakeEntry),
		ErrorOnMethod: make(map[string]error),
	}
}

func (f *FakeRemote) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.GetCalls++
	if err := f.ErrorOnMethod["Get"]; err != nil {
		return "", false, err
	}

	entry, exists := f.data[key]
	if !exists {
		return "", false, nil
	}
	return entry.value, true, nil
}

func (f *FakeRemote) Set(ctx context.Context, key, value string, ttlSeconds int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.SetCalls++
	if err := f.ErrorOnMethod["Set"]; err != nil {
		return err
	}
	if ttlSeconds < 1 {
		return errors.ValidationError("fake remote ttl must be at least one second")
	}

	f.data[key] = fakeEntry{value: value, ttlSeconds: ttlSeconds}
	return nil
}

func (f *FakeRemote) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.DeleteCalls++
	if err := f.ErrorOnMethod["Delete"]; err != nil {
		return err
	}

	delete(f.data, key)
	return nil
}

func (f *FakeRemote) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ClearCalls++
	if err := f.ErrorOnMethod["Clear"]; err != nil {
		return err
	}

	f.data = make(map[string]fakeEntry)
	return nil
}

func (f *FakeRemote) Size(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.SizeCalls++
	if err := f.ErrorOnMethod["Size"]; err != nil {
		return 0, err
	}

	return int64(len(f.data)), nil
}

// Notify registers a watcher, replaying the current state when the fake is
// already up
func (f *FakeRemote) Notify(fn func(up bool, err error)) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.watchers = append(f.watchers, fn)
	if f.up {
		fn(true, nil)
	}
}

// FireReady reports the backend as reachable to all watchers
func (f *FakeRemote) FireReady() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.up = true
	for _, watcher := range f.watchers {
		watcher(true, nil)
	}
}

// FireError reports the backend as failed to all watchers
func (f *FakeRemote) FireError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.up = false
	for _, watcher := range f.watchers {
		watcher(false, err)
	}
}

// Seed stores a raw payload directly, bypassing Set validation
func (f *FakeRemote) Seed(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data[key] = fakeEntry{value: value, ttlSeconds: 60}
}

// Stored returns the raw payload recorded for key
func (f *FakeRemote) Stored(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entry, exists := f.data[key]
	return entry.value, exists
}

// StoredTTL returns the ttlSeconds recorded for key
func (f *FakeRemote) StoredTTL(key string) (int64, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entry, exists := f.data[key]
	return entry.ttlSeconds, exists
}

// Len returns the number of stored keys
func (f *FakeRemote) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return len(f.data)
}

// Ensure FakeRemote implements cache.RemoteStore
var _ cache.RemoteStore = (*FakeRemote)(nil)
