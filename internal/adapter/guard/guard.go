// Package guard serializes duplicate-submission checks. The freshness window
// itself is a repository query; this lock only closes the check-then-create
// race between two near-simultaneous submissions for the same location and
// sector.
package guard

import (
	"context"
	"time"

	"facilitydesk/internal/apperr"
	"facilitydesk/internal/domain/complaint"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type RedisGuard struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

func NewRedisGuard(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisGuard {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisGuard{rdb: rdb, ttl: ttl, log: log}
}

func lockKey(locationRef string, sector complaint.Sector) string {
	return "dupe:" + locationRef + ":" + string(sector)
}

// Acquire takes a short-lived SetNX lock. A contended lock means another
// submission for the same pair is mid-flight, which the caller surfaces as
// rate limiting just like a fresh prior complaint.
func (g *RedisGuard) Acquire(ctx context.Context, locationRef string, sector complaint.Sector) (func(), error) {
	key := lockKey(locationRef, sector)

	ok, err := g.rdb.SetNX(ctx, key, "1", g.ttl).Result()
	if err != nil {
		return nil, apperr.Dependency("submission guard unavailable", err)
	}
	if !ok {
		return nil, apperr.RateLimited("a submission for this location is already being processed")
	}
	release := func() {
		if err := g.rdb.Del(context.Background(), key).Err(); err != nil {
			// TTL will reclaim the lock.
			g.log.Warn().Err(err).Str("key", key).Msg("guard release failed")
		}
	}
	return release, nil
}
