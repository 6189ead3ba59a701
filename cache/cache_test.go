package cache_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/zerocurve/bond"
	"github.com/meenmo/zerocurve/cache"
	"github.com/meenmo/zerocurve/curve"
	"github.com/meenmo/zerocurve/marketdata"
)

func TestKey_OrderIndependent(t *testing.T) {
	t.Parallel()

	quotes := marketdata.ReferenceQuotes()
	reversed := []bond.BondQuote{quotes[3], quotes[2], quotes[1], quotes[0]}

	k1 := cache.Key(quotes, curve.GapSkip)
	assert.Equal(t, k1, cache.Key(reversed, curve.GapSkip))
	assert.Regexp(t, `^zerocurve:[0-9a-f]{16}$`, k1)

	assert.NotEqual(t, k1, cache.Key(quotes, curve.GapFail))

	bumped := append([]bond.BondQuote(nil), quotes...)
	bumped[2].Price += 0.01
	assert.NotEqual(t, k1, cache.Key(bumped, curve.GapSkip))
}

func TestBootstrap_MemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mc := cache.NewMemoryCache()
	logger, _ := logtest.NewNullLogger()

	first, hit, err := cache.Bootstrap(ctx, mc, marketdata.ReferenceQuotes(), curve.DefaultConfig, logger)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := cache.Bootstrap(ctx, mc, marketdata.ReferenceQuotes(), curve.DefaultConfig, logger)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first.Points(), second.Points())
}

func TestBootstrap_NilCache(t *testing.T) {
	t.Parallel()

	logger, _ := logtest.NewNullLogger()
	c, hit, err := cache.Bootstrap(context.Background(), nil, marketdata.ReferenceQuotes(), curve.DefaultConfig, logger)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 4, c.Len())
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (curve.ZeroCurve, bool, error) {
	return curve.ZeroCurve{}, false, errors.New("connection refused")
}

func (brokenCache) Set(context.Context, string, curve.ZeroCurve) error {
	return errors.New("connection refused")
}

func TestBootstrap_CacheFailureFallsThrough(t *testing.T) {
	t.Parallel()

	logger, hook := logtest.NewNullLogger()

	c, hit, err := cache.Bootstrap(context.Background(), brokenCache{}, marketdata.ReferenceQuotes(), curve.DefaultConfig, logger)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 4, c.Len())

	var warnings int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	assert.Equal(t, 2, warnings)
}

func TestBootstrap_ErrorNotCached(t *testing.T) {
	t.Parallel()

	mc := cache.NewMemoryCache()
	logger, _ := logtest.NewNullLogger()
	bad := []bond.BondQuote{{Maturity: 1, CouponRate: 4, Price: -1, FaceValue: 100}}

	_, _, err := cache.Bootstrap(context.Background(), mc, bad, curve.DefaultConfig, logger)
	assert.ErrorIs(t, err, curve.ErrInvalidInput)

	_, ok, _ := mc.Get(context.Background(), cache.Key(bad, curve.GapSkip))
	assert.False(t, ok)
}

// Set ZEROCURVE_TEST_REDIS_ADDR (e.g. "localhost:6379") to run against Redis.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("ZEROCURVE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("ZEROCURVE_TEST_REDIS_ADDR not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rc := cache.NewRedisCache(addr, "", 0, time.Minute)
	defer rc.Close()
	require.NoError(t, rc.Ping(ctx))

	want, err := curve.Bootstrap(marketdata.ReferenceQuotes())
	require.NoError(t, err)

	key := cache.Key(marketdata.ReferenceQuotes(), curve.GapSkip) + ":test"
	require.NoError(t, rc.Set(ctx, key, want))

	got, ok, err := rc.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.Points(), got.Points())

	_, ok, err = rc.Get(ctx, key+":absent")
	require.NoError(t, err)
	assert.False(t, ok)
}
