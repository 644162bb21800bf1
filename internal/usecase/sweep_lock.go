package usecase

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const sweepLockTTL = 10 * time.Minute

// acquireSweepLock takes an advisory redis lock keyed by sweep name so a
// manual trigger cannot race a scheduled one. The conditional ledger update
// is the correctness guarantee; this lock just avoids wasted duplicate scans.
// A redis outage does not block the sweep.
func acquireSweepLock(ctx context.Context, client *redis.Client, name string) (bool, func()) {
	if client == nil {
		return true, func() {}
	}

	key := "sweep_lock:" + name
	acquired, err := client.SetNX(ctx, key, "1", sweepLockTTL).Result()
	if err != nil {
		return true, func() {}
	}
	if !acquired {
		return false, func() {}
	}

	return true, func() {
		client.Del(context.Background(), key)
	}
}
