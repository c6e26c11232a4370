package service

// WriteMode says how a paste is written: permanently, or with an expiry.
type WriteMode struct {
	Expiring bool
	Seconds  int64
}

// ResolveTTL maps an optional ttl in seconds to a write mode. A missing or
// non-positive ttl means permanent. There is no upper bound.
func ResolveTTL(ttl *int64) WriteMode {
	if ttl == nil || *ttl <= 0 {
		return WriteMode{}
	}
	return WriteMode{Expiring: true, Seconds: *ttl}
}
