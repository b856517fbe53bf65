package cache

// Stats is a point-in-time snapshot of cache effectiveness counters.
//
// Size is opportunistic: it is refreshed after mutating operations (set,
// delete, clear, cleanup) and may lag behind the true entry count between
// them. HitRate is hits divided by total lookups, or 0 when nothing has been
// looked up yet.
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Size    int64   `json:"size"`
	HitRate float64 `json:"hitRate"`
}

func newStats(hits, misses, size int64) Stats {
	stats := Stats{
		Hits:   hits,
		Misses: misses,
		Size:   size,
	}
	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}
	return stats
}
