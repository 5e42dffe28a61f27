// Package redis enforces per-user daily usage quotas on Redis counters.
package redis

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/learnovatex/platform/internal/config"
	"github.com/learnovatex/platform/internal/domain"
)

// Keeper tracks daily action counters keyed by user, action, and UTC date.
// Counters reset at midnight UTC via key expiry. A nil client disables
// enforcement entirely, which keeps local development friction-free.
type Keeper struct {
	client *redis.Client
	cfg    config.Config
	now    func() time.Time
}

// New constructs a Keeper. client may be nil to disable quotas.
func New(client *redis.Client, cfg config.Config) *Keeper {
	return &Keeper{client: client, cfg: cfg, now: time.Now}
}

// Allow consumes one unit of the user's daily budget for action. It returns
// domain.ErrRateLimited once the configured limit is exceeded. Unknown
// actions and zero limits are unrestricted.
func (k *Keeper) Allow(ctx domain.Context, userID, action string) error {
	if k.client == nil {
		return nil
	}
	limit := k.cfg.QuotaFor(action)
	if limit <= 0 {
		return nil
	}
	now := k.now().UTC()
	key := fmt.Sprintf("quota:%s:%s:%s", userID, action, now.Format("2006-01-02"))

	n, err := k.client.Incr(ctx, key).Result()
	if err != nil {
		// Redis being down must not lock users out.
		return nil
	}
	if n == 1 {
		midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
		k.client.ExpireAt(ctx, key, midnight)
	}
	if n > int64(limit) {
		return fmt.Errorf("op=quota.allow action=%s: %w", action, domain.ErrRateLimited)
	}
	return nil
}

// Remaining reports how much of the day's budget is left for action.
func (k *Keeper) Remaining(ctx domain.Context, userID, action string) (int, error) {
	limit := k.cfg.QuotaFor(action)
	if k.client == nil || limit <= 0 {
		return limit, nil
	}
	key := fmt.Sprintf("quota:%s:%s:%s", userID, action, k.now().UTC().Format("2006-01-02"))
	n, err := k.client.Get(ctx, key).Int()
	if err == redis.Nil {
		return limit, nil
	}
	if err != nil {
		return 0, fmt.Errorf("op=quota.remaining: %w", err)
	}
	rem := limit - n
	if rem < 0 {
		rem = 0
	}
	return rem, nil
}
