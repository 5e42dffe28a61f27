package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnovatex/platform/internal/config"
	"github.com/learnovatex/platform/internal/domain"
)

func newKeeper(t *testing.T, cfg config.Config) (*Keeper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, cfg), mr
}

func TestAllowUnderLimit(t *testing.T) {
	k, _ := newKeeper(t, config.Config{MaxInterviewsPerDay: 3})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, k.Allow(ctx, "u-1", "interview"))
	}
	err := k.Allow(ctx, "u-1", "interview")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestAllowIsolatesUsersAndActions(t *testing.T) {
	k, _ := newKeeper(t, config.Config{MaxInterviewsPerDay: 1, MaxDailyAIRequests: 1})
	ctx := context.Background()

	require.NoError(t, k.Allow(ctx, "u-1", "interview"))
	assert.ErrorIs(t, k.Allow(ctx, "u-1", "interview"), domain.ErrRateLimited)

	// Different user and different action still have budget.
	assert.NoError(t, k.Allow(ctx, "u-2", "interview"))
	assert.NoError(t, k.Allow(ctx, "u-1", "ai_request"))
}

func TestAllowResetsAtMidnightUTC(t *testing.T) {
	k, mr := newKeeper(t, config.Config{MaxInterviewsPerDay: 1})
	base := time.Date(2026, 3, 10, 23, 50, 0, 0, time.UTC)
	k.now = func() time.Time { return base }
	ctx := context.Background()

	require.NoError(t, k.Allow(ctx, "u-1", "interview"))
	assert.ErrorIs(t, k.Allow(ctx, "u-1", "interview"), domain.ErrRateLimited)

	// Crossing midnight: the key expires and the date component changes.
	mr.FastForward(15 * time.Minute)
	k.now = func() time.Time { return base.Add(15 * time.Minute) }
	assert.NoError(t, k.Allow(ctx, "u-1", "interview"))
}

func TestAllowZeroLimitUnrestricted(t *testing.T) {
	k, _ := newKeeper(t, config.Config{})
	ctx := context.Background()
	for i := 0; i < 100; i++ {
		require.NoError(t, k.Allow(ctx, "u-1", "interview"))
	}
}

func TestAllowNilClientDisabled(t *testing.T) {
	k := New(nil, config.Config{MaxInterviewsPerDay: 1})
	ctx := context.Background()
	assert.NoError(t, k.Allow(ctx, "u-1", "interview"))
	assert.NoError(t, k.Allow(ctx, "u-1", "interview"))
}

func TestRemaining(t *testing.T) {
	k, _ := newKeeper(t, config.Config{MaxDailyAIRequests: 5})
	ctx := context.Background()

	rem, err := k.Remaining(ctx, "u-1", "ai_request")
	require.NoError(t, err)
	assert.Equal(t, 5, rem)

	require.NoError(t, k.Allow(ctx, "u-1", "ai_request"))
	require.NoError(t, k.Allow(ctx, "u-1", "ai_request"))

	rem, err = k.Remaining(ctx, "u-1", "ai_request")
	require.NoError(t, err)
	assert.Equal(t, 3, rem)
}
