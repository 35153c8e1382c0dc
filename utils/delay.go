package utils

import (
	"context"
	"math/rand"
	"time"
)

// SleepJitter pauses for a random duration in [min, max], returning early
// when the context is cancelled. Used as the politeness delay between
// pages and between sites.
func SleepJitter(ctx context.Context, min, max time.Duration) {
	d := min
	if max > min {
		d += time.Duration(rand.Int63n(int64(max - min)))
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
