package cache

import (
	"testing"
	"time"

	"insertion-route-service/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisSolutionCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisSolutionCache(client, ttl), mr
}

func testPlan() *domain.Plan {
	return &domain.Plan{
		ID:        "plan-1",
		Instance:  "c101",
		Fleet:     domain.FleetConfig{VehicleCapacity: 50, VehicleLimit: 25},
		CreatedAt: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
		Solution: domain.Solution{
			Routes: []domain.RouteRecord{{
				Route:  domain.Route{0, 1, 0},
				Time:   domain.Schedule{{Node: 0}, {Node: 1, Arrival: 5, Departure: 5}, {Node: 0, Arrival: 10, Departure: 10}},
				Demand: 3,
			}},
			Summary: domain.FleetSummary{NumberOfUsedVehicles: 1, UnvisitedNodes: []int{}},
		},
	}
}

func TestRedisSolutionCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	_, ok, err := c.Get(t.Context(), "plan:c101:50:25")
	require.NoError(t, err)
	require.False(t, ok)

	want := testPlan()
	require.NoError(t, c.Put(t.Context(), "plan:c101:50:25", want))

	got, ok, err := c.Get(t.Context(), "plan:c101:50:25")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestRedisSolutionCacheExpires(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)

	require.NoError(t, c.Put(t.Context(), "k", testPlan()))
	require.Equal(t, time.Minute, mr.TTL("k"))

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(t.Context(), "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisSolutionCacheDefaultsTTL(t *testing.T) {
	c, _ := newTestCache(t, 0)
	require.Equal(t, DefaultTTL, c.TTL)
}

func TestRedisSolutionCacheCorruptEntry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set("k", "{not json"))

	_, _, err := c.Get(t.Context(), "k")
	require.Error(t, err)
}

func TestRedisSolutionCacheServerDown(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	mr.Close()

	_, _, err := c.Get(t.Context(), "k")
	require.Error(t, err)
	require.Error(t, c.Put(t.Context(), "k", testPlan()))
}
