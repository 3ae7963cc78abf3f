package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritmodivulga/promo-engine/internal/domain"
)

func setup(t *testing.T) (*miniredis.Miniredis, *DashboardCache) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return srv, NewDashboardCache(client, 30*time.Second)
}

func TestDashboardCache_RoundTrip(t *testing.T) {
	_, c := setup(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	revenue := decimal.RequireFromString("1250.50")
	variation := decimal.RequireFromString("-12.5")
	require.NoError(t, c.Set(ctx, &domain.DashboardMetrics{
		ActivePackages:          3,
		PendingVideos:           11,
		TotalRevenue:            &revenue,
		RevenueVariationPercent: &variation,
	}))

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, got.ActivePackages)
	assert.Equal(t, 11, got.PendingVideos)
	require.NotNil(t, got.TotalRevenue)
	assert.True(t, got.TotalRevenue.Equal(revenue))
	assert.True(t, got.RevenueVariationPercent.Equal(variation))

	require.NoError(t, c.Invalidate(ctx))
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDashboardCache_Expires(t *testing.T) {
	srv, c := setup(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, &domain.DashboardMetrics{ActivePackages: 1}))
	srv.FastForward(31 * time.Second)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
