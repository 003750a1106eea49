package redisx

import "time"

const (
	// Cached order lookup by public number: order:{order_number} -> order JSON
	KeyOrder = "order:%s"

	// Dedup for consumed notification events: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLOrderCache = 5 * time.Minute
	TTLDedup      = 48 * time.Hour
)
