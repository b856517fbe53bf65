// Package redis implements the cache.RemoteStore interface on top of a Redis
// server, with background connection supervision so callers never block on an
// unreachable server.
package redis

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"feedback-cache/cache"
	"feedback-cache/internal/common/errors"
	"feedback-cache/internal/common/utils"
	"feedback-cache/logging"
)

// Client wraps a Redis connection with connectivity supervision
type Client struct {
	rdb    *redis.Client
	config *Config
	logger logging.Logger

	mu        sync.Mutex
	connected bool
	watchers  []func(up bool, err error)

	probeCh   chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// Config holds Redis client configuration
type Config struct {
	Address      string        `json:"address"`
	Password     string        `json:"password"`
	DB           int           `json:"db"`
	PoolSize     int           `json:"pool_size"`
	DialTimeout  time.Duration `json:"dial_timeout"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	MaxRetries   int           `json:"max_retries"`

	// ReconnectMinDelay and ReconnectMaxDelay bound the backoff between
	// connection probes while the server is unreachable.
	ReconnectMinDelay time.Duration `json:"reconnect_min_delay"`
	ReconnectMaxDelay time.Duration `json:"reconnect_max_delay"`

	// HealthCheckInterval is how often the supervisor pings the server while
	// it is reachable, so outages are noticed even when no operation is in
	// flight to report one.
	HealthCheckInterval time.Duration `json:"health_check_interval"`
}

// NewClient creates a new Redis client and starts its connection supervisor.
// Construction never blocks on the server: the client probes in the
// background and announces readiness through Notify once a ping succeeds.
func NewClient(config *Config, logger logging.Logger) (*Client, error) {
	if config == nil {
		return nil, errors.ConfigError("redis config is required")
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	if config.Address == "" {
		config.Address = "localhost:6379"
	}
	if config.PoolSize == 0 {
		config.PoolSize = 10
	}
	if config.DialTimeout <= 0 {
		config.DialTimeout = 5 * time.Second
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.ReconnectMinDelay <= 0 {
		config.ReconnectMinDelay = 250 * time.Millisecond
	}
	if config.ReconnectMaxDelay <= 0 {
		config.ReconnectMaxDelay = 5 * time.Second
	}
	if config.HealthCheckInterval <= 0 {
		config.HealthCheckInterval = 30 * time.Second
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         config.Address,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		MaxRetries:   config.MaxRetries,
	})

	ctx, cancel := context.WithCancel(context.Background())

	client := &Client{
		rdb:     rdb,
		config:  config,
		logger:  logger,
		probeCh: make(chan struct{}, 1),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	go client.supervise()

	return client, nil
}

// Get retrieves the raw value stored at key. A missing key reports found
// false with no error.
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		c.reportFailure(err)
		return "", false, errors.ConnectionError("redis get failed", err).WithContext("key", key)
	}
	return value, true, nil
}

// Set stores value at key with a TTL in whole seconds. TTLs below one second
// are rejected without reaching the server, matching SETEX semantics.
func (c *Client) Set(ctx context.Context, key, value string, ttlSeconds int64) error {
	if ttlSeconds < 1 {
		return errors.ValidationError("redis ttl must be at least one second").
			WithContext("key", key).
			WithContext("ttl_seconds", ttlSeconds)
	}

	if err := c.rdb.SetEX(ctx, key, value, time.Duration(ttlSeconds)*time.Second).Err(); err != nil {
		c.reportFailure(err)
		return errors.ConnectionError("redis set failed", err).WithContext("key", key)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.reportFailure(err)
		return errors.ConnectionError("redis delete failed", err).WithContext("key", key)
	}
	return nil
}

// Clear removes every key in the database
func (c *Client) Clear(ctx context.Context) error {
	if err := c.rdb.FlushAll(ctx).Err(); err != nil {
		c.reportFailure(err)
		return errors.ConnectionError("redis clear failed", err)
	}
	return nil
}

// Size returns the number of keys in the database
func (c *Client) Size(ctx context.Context) (int64, error) {
	size, err := c.rdb.DBSize(ctx).Result()
	if err != nil {
		c.reportFailure(err)
		return 0, errors.ConnectionError("redis size query failed", err)
	}
	return size, nil
}

// Notify registers a connectivity watcher. If the server is already
// reachable the watcher is invoked immediately with up=true; afterwards it
// runs once per transition, in transition order.
func (c *Client) Notify(fn func(up bool, err error)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.watchers = append(c.watchers, fn)
	if c.connected {
		fn(true, nil)
	}
}

// Health verifies that the server answers a ping
func (c *Client) Health(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errors.ConnectionError("redis health check failed", err)
	}
	return nil
}

// Close stops the supervisor and releases the connection pool. Safe to call
// more than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		<-c.done
		err = c.rdb.Close()
	})
	return err
}

// supervise probes the server until it answers, announces the transition,
// then keeps pinging on the health check interval until the server stops
// answering, an operation reports a failure, or the client is closed.
func (c *Client) supervise() {
	defer close(c.done)

	for {
		retryCfg := utils.DefaultRetryConfig()
		retryCfg.MaxAttempts = 0 // probe until the server answers
		retryCfg.InitialDelay = c.config.ReconnectMinDelay
		retryCfg.MaxDelay = c.config.ReconnectMaxDelay

		if err := utils.RetryWithBackoff(c.ctx, retryCfg, c.probe); err != nil {
			return
		}

		c.markUp()

		if !c.holdWhileUp() {
			return
		}
	}
}

// holdWhileUp watches a reachable server: it pings on the health check
// interval and wakes early when an operation reports a failure. It returns
// true when the supervisor should re-enter the probe loop and false when the
// client is closing.
func (c *Client) holdWhileUp() bool {
	healthCheck := time.NewTicker(c.config.HealthCheckInterval)
	defer healthCheck.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return false
		case <-c.probeCh:
			return true
		case <-healthCheck.C:
			if err := c.probe(); err != nil {
				if errors.IsCanceled(err) {
					return false
				}
				c.markDown(err)
				return true
			}
		}
	}
}

func (c *Client) probe() error {
	ctx, cancel := context.WithTimeout(c.ctx, c.config.DialTimeout)
	defer cancel()

	if err := c.rdb.Ping(ctx).Err(); err != nil {
		c.logger.Debug("redis probe failed", logging.Err(err))
		return err
	}
	return nil
}

// reportFailure marks the connection down and wakes the supervisor, which
// re-announces readiness once a probe succeeds. Cancellation by the caller
// is not a server failure and is ignored.
func (c *Client) reportFailure(err error) {
	if errors.IsCanceled(err) {
		return
	}

	c.markDown(err)

	select {
	case c.probeCh <- struct{}{}:
	default:
	}
}

// markUp records the server as reachable, notifying watchers once per
// transition
func (c *Client) markUp() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return
	}
	c.connected = true
	c.logger.Info("redis connection ready",
		logging.String("address", c.config.Address))
	for _, watcher := range c.watchers {
		watcher(true, nil)
	}
}

// markDown records the server as unreachable, notifying watchers once per
// transition
func (c *Client) markDown(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return
	}
	c.connected = false
	c.logger.Warn("redis connection lost", logging.Err(err))
	for _, watcher := range c.watchers {
		watcher(false, err)
	}
}

// Ensure Client implements cache.RemoteStore
var _ cache.RemoteStore = (*Client)(nil)
