package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"feedback-cache/internal/common/errors"
	"feedback-cache/logging"
)

// RemoteStore is a shared cache backend the Manager can layer over the local
// store. Implementations must be safe for concurrent use.
//
// Get reports a missing key as ("", false, nil); errors are reserved for
// transport and server failures. Set receives the retention window in whole
// seconds. Notify registers a connectivity watcher: implementations must call
// it with up=true when the backend becomes reachable (replaying the current
// state if it is already reachable at registration time) and with up=false
// plus the triggering error when it becomes unreachable, in transition order.
type RemoteStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttlSeconds int64) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Size(ctx context.Context) (int64, error)
	Notify(fn func(up bool, err error))
}

// State describes the Manager's view of the remote backend.
type State int

const (
	// StateUninitialized means no remote store was configured; the Manager
	// serves from the local store permanently.
	StateUninitialized State = iota

	// StateConnecting means a remote store is configured but has not yet
	// reported ready; operations serve from the local store.
	StateConnecting

	// StateAvailable means the remote store is serving traffic.
	StateAvailable

	// StateDegraded means a remote failure was observed; operations serve
	// from the local store until the backend reports ready again.
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConnecting:
		return "connecting"
	case StateAvailable:
		return "available"
	case StateDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// Config controls Manager construction
type Config struct {
	// Remote is the shared backend. Nil disables remote caching entirely.
	Remote RemoteStore

	// DefaultTTL is the retention window used by SetDefault. Non-positive
	// values fall back to DefaultTTL.
	DefaultTTL time.Duration

	// CleanupInterval is how often the local janitor sweeps expired
	// entries. Non-positive values fall back to DefaultCleanupInterval.
	CleanupInterval time.Duration

	// Logger receives state transition and fallback logs. Nil falls back
	// to the global logger.
	Logger logging.Logger
}

// DefaultConfig returns a local-only configuration with the standard
// retention and cleanup windows
func DefaultConfig() Config {
	return Config{
		DefaultTTL:      DefaultTTL,
		CleanupInterval: DefaultCleanupInterval,
	}
}

// Manager fronts a local TTL store with an optional remote backend.
//
// Remote failures never reach callers: every operation that cannot be served
// remotely completes against the local store within the same call, and the
// Manager returns to the remote path only once the backend itself reports
// ready again. Hit, miss and size counters accumulate across state
// transitions and reset only on Clear.
type Manager struct {
	local      *SimpleCache
	remote     RemoteStore
	logger     logging.Logger
	defaultTTL time.Duration

	mu     sync.Mutex
	state  State
	hits   int64
	misses int64
	size   int64
}

// NewManager creates a Manager from the given configuration. When a remote
// store is configured the Manager starts in StateConnecting and serves from
// the local store until the backend reports ready; construction never blocks
// on the backend.
func NewManager(cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	defaultTTL := cfg.DefaultTTL
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}

	cleanupInterval := cfg.CleanupInterval
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}

	m := &Manager{
		local:      NewSimpleCache(defaultTTL, cleanupInterval),
		remote:     cfg.Remote,
		logger:     logger,
		defaultTTL: defaultTTL,
	}

	if m.remote == nil {
		m.state = StateUninitialized
		m.logger.Info("cache manager running local-only, no remote store configured")
		return m
	}

	m.state = StateConnecting
	m.logger.Info("cache manager waiting for remote store")
	m.remote.Notify(m.handleRemoteEvent)

	return m
}

// Get retrieves the cached value for key. The boolean reports whether a live
// entry was found. Remote failures fall back to the local store and
// undecodable remote payloads count as misses; no error ever surfaces.
func (m *Manager) Get(ctx context.Context, key string) (interface{}, bool) {
	if m.remoteAvailable() {
		if value, found, served := m.remoteGet(ctx, key); served {
			if found {
				m.recordHit()
			} else {
				m.recordMiss()
			}
			return value, found
		}
	}

	value, found := m.local.Get(key)
	if found {
		m.recordHit()
	} else {
		m.recordMiss()
	}
	return value, found
}

// Set stores value under key for the given retention window. Negative
// windows are clamped to zero, which expires the entry on next access.
func (m *Manager) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if ttl < 0 {
		ttl = 0
	}

	if m.remoteAvailable() && m.remoteSet(ctx, key, value, ttl) {
		return
	}

	m.local.Set(key, value, ttl)
	m.setSize(int64(m.local.Size()))
}

// SetDefault stores value under key using the Manager's default retention
// window
func (m *Manager) SetDefault(ctx context.Context, key string, value interface{}) {
	m.Set(ctx, key, value, m.defaultTTL)
}

// Delete removes key from the cache. Deleting a missing key is a no-op.
func (m *Manager) Delete(ctx context.Context, key string) {
	if m.remoteAvailable() && m.remoteDelete(ctx, key) {
		return
	}

	m.local.Delete(key)
	m.setSize(int64(m.local.Size()))
}

// Clear empties the remote store when it is available, otherwise the local
// store, and resets the hit and miss counters.
func (m *Manager) Clear(ctx context.Context) {
	if m.remoteAvailable() && m.remoteClear(ctx) {
		return
	}

	m.local.Clear()
	m.resetStats()
}

// Stats returns a snapshot of the aggregated counters
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return newStats(m.hits, m.misses, m.size)
}

// TTLFor returns the retention window for a data category
func (m *Manager) TTLFor(category string) time.Duration {
	return TTLFor(category)
}

// State reports the Manager's current view of the remote backend
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Close stops the local janitor. The remote store's lifecycle belongs to the
// caller and is left untouched. Safe to call more than once.
func (m *Manager) Close() {
	m.local.Stop()
}

// handleRemoteEvent reacts to connectivity transitions reported by the
// remote store. Ready events restore the remote path from any state; error
// events only degrade an Available manager, so a store that fails while
// still connecting keeps the Manager in StateConnecting.
func (m *Manager) handleRemoteEvent(up bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if up {
		if m.state == StateAvailable {
			return
		}
		previous := m.state
		m.state = StateAvailable
		m.logger.Info("remote cache store ready",
			logging.String("previous_state", previous.String()))
		return
	}

	if m.state != StateAvailable {
		return
	}
	m.state = StateDegraded
	m.logger.Warn("remote cache store unavailable, serving from local store",
		logging.Err(err))
}

// degrade records an operation-scoped remote failure. Cancellation by the
// caller is not a backend fault and leaves the state untouched. Only an
// Available manager transitions, so a burst of concurrent failures logs once.
func (m *Manager) degrade(operation string, err error) {
	if errors.IsCanceled(err) {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAvailable {
		return
	}
	m.state = StateDegraded
	m.logger.Warn("remote cache operation failed, serving from local store",
		logging.String("operation", operation),
		logging.String("error_type", string(errors.GetType(err))),
		logging.Err(err))
}

func (m *Manager) remoteAvailable() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remote != nil && m.state == StateAvailable
}

// remoteGet returns the decoded value and whether the remote store served the
// lookup at all. served=false sends the caller to the local store.
func (m *Manager) remoteGet(ctx context.Context, key string) (value interface{}, found bool, served bool) {
	payload, exists, err := m.remote.Get(ctx, key)
	if err != nil {
		m.degrade("get", err)
		return nil, false, false
	}
	if !exists {
		return nil, false, true
	}

	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		m.degrade("get", errors.InternalError("remote payload decode failed", err))
		return nil, false, false
	}
	return value, true, true
}

func (m *Manager) remoteSet(ctx context.Context, key string, value interface{}, ttl time.Duration) bool {
	payload, err := json.Marshal(value)
	if err != nil {
		m.degrade("set", errors.InternalError("cache value encode failed", err))
		return false
	}

	if err := m.remote.Set(ctx, key, string(payload), ttl.Milliseconds()/1000); err != nil {
		m.degrade("set", err)
		return false
	}

	size, err := m.remote.Size(ctx)
	if err != nil {
		m.degrade("set", err)
		return false
	}
	m.setSize(size)

	return true
}

func (m *Manager) remoteDelete(ctx context.Context, key string) bool {
	if err := m.remote.Delete(ctx, key); err != nil {
		m.degrade("delete", err)
		return false
	}

	size, err := m.remote.Size(ctx)
	if err != nil {
		m.degrade("delete", err)
		return false
	}
	m.setSize(size)

	return true
}

func (m *Manager) remoteClear(ctx context.Context) bool {
	if err := m.remote.Clear(ctx); err != nil {
		m.degrade("clear", err)
		return false
	}

	m.resetStats()
	return true
}

func (m *Manager) recordHit() {
	m.mu.Lock()
	m.hits++
	m.mu.Unlock()
}

func (m *Manager) recordMiss() {
	m.mu.Lock()
	m.misses++
	m.mu.Unlock()
}

func (m *Manager) setSize(size int64) {
	m.mu.Lock()
	m.size = size
	m.mu.Unlock()
}

func (m *Manager) resetStats() {
	m.mu.Lock()
	m.hits = 0
	m.misses = 0
	m.size = 0
	m.mu.Unlock()
}
