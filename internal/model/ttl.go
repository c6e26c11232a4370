package model

import (
	"math"
	"time"
)

// TTL is the remaining lifetime of a key in whole seconds. Negative values
// are sentinels and use the same numbers redis replies with.
type TTL int64

const (
	TTLPermanent TTL = -1
	TTLAbsent    TTL = -2
)

// TTLFromDuration converts a remaining lifetime to seconds, rounding up so a
// live key never reports zero.
func TTLFromDuration(d time.Duration) TTL {
	if d <= 0 {
		return TTLAbsent
	}
	return TTL(math.Ceil(d.Seconds()))
}

func (t TTL) IsPermanent() bool { return t == TTLPermanent }

func (t TTL) IsAbsent() bool { return t == TTLAbsent }
