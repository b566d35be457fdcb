package raft

import (
	"math/rand"
	"time"
)

// randElectionTimeout draws a duration uniformly from [min, max], per
// spec.md §4.1's randomized election timeout.
func randElectionTimeout(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)+1))
}
