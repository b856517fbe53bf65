package cache

import "time"

// Data categories with dedicated retention windows.
const (
	CategoryCompany  = "company"
	CategoryStats    = "stats"
	CategoryMessages = "messages"
)

// Retention windows. Company profiles change rarely and cache longest;
// aggregated stats and message lists go stale quickly.
const (
	CompanyTTL  = 10 * time.Minute
	StatsTTL    = 2 * time.Minute
	MessagesTTL = 1 * time.Minute
	DefaultTTL  = 5 * time.Minute

	DefaultCleanupInterval = 10 * time.Minute
)

// TTLFor returns the retention window for a data category. Unrecognized
// categories get DefaultTTL.
func TTLFor(category string) time.Duration {
	switch category {
	case CategoryCompany:
		return CompanyTTL
	case CategoryStats:
		return StatsTTL
	case CategoryMessages:
		return MessagesTTL
	default:
		return DefaultTTL
	}
}
