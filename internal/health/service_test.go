package health

import (
	"context"
	"testing"

	"karoo-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) Ping() error { return nil }

func testRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCollect_TrafficStats(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()

	require.NoError(t, rdb.Set(ctx, middleware.KeyReqTotal, 10, 0).Err())
	require.NoError(t, rdb.Set(ctx, middleware.KeyReqErrors, 2, 0).Err())
	require.NoError(t, rdb.Set(ctx, middleware.KeyResTime, 500, 0).Err())
	require.NoError(t, rdb.Set(ctx, middleware.KeyResCount, 10, 0).Err())

	res := Collect(ctx, rdb, okPinger{})

	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, 10, res.Traffic.TotalRequests)
	assert.Equal(t, 8, res.Traffic.SuccessCount)
	assert.Equal(t, 2, res.Traffic.FailedCount)
	assert.Equal(t, "80.0", res.Traffic.SuccessRate)
	assert.Equal(t, "50.00", res.Traffic.AvgResponseTime)
	assert.Equal(t, "connected", res.Dependencies["redis"].Status)
	assert.Equal(t, "connected", res.Dependencies["database"].Status)
}

func TestCollect_NoDatabase(t *testing.T) {
	rdb := testRedis(t)
	res := Collect(context.Background(), rdb, nil)

	assert.Equal(t, "issue", res.Status)
	assert.Equal(t, "disconnected", res.Dependencies["database"].Status)
}

func TestCollect_StampsStartTime(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()

	Collect(ctx, rdb, okPinger{})
	stamp, err := rdb.Get(ctx, middleware.KeyStartTime).Result()
	require.NoError(t, err)
	assert.NotEmpty(t, stamp)
}
