// Package cache provides a two-tier caching layer for feedback data: a local
// in-memory TTL store optionally fronted by a shared Redis backend.
//
// It provides two cache types:
//
// 1. SimpleCache - In-memory cache with per-entry TTL
//   - Lazy expiry on access plus a periodic background sweep
//   - Hit, miss and size statistics
//   - Per-category retention windows (company, stats, messages)
//
// 2. Manager - SimpleCache fronted by an optional RemoteStore
//   - Serves from the remote backend while it is reachable
//   - Falls back to the local store within the same call on any remote
//     failure; cache faults never surface to callers
//   - Returns to the remote path only when the backend reports ready again
//
// Usage:
//
//	// Local-only cache
//	manager := cache.NewManager(cache.DefaultConfig())
//	defer manager.Close()
//
//	manager.Set(ctx, "company:42", profile, cache.TTLFor(cache.CategoryCompany))
//	val, found := manager.Get(ctx, "company:42")
//
//	// With a Redis backend
//	client, err := redis.NewClient(&redis.Config{Address: "localhost:6379"}, logger)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	cfg := cache.DefaultConfig()
//	cfg.Remote = client
//	cfg.Logger = logger
//	manager := cache.NewManager(cfg)
//
//	// Typed reads
//	profile, found := cache.GetTyped[CompanyProfile](ctx, manager, "company:42")
package cache
