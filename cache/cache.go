package cache

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/meenmo/zerocurve/bond"
	"github.com/meenmo/zerocurve/curve"
)

// KeyPrefix namespaces every cache key.
const KeyPrefix = "zerocurve:"

// CurveCache stores bootstrapped curves by quote-set key.
type CurveCache interface {
	Get(ctx context.Context, key string) (curve.ZeroCurve, bool, error)
	Set(ctx context.Context, key string, c curve.ZeroCurve) error
}

// Key fingerprints a quote set and gap policy. Quote order does not matter.
func Key(quotes []bond.BondQuote, policy curve.GapPolicy) string {
	sorted := append([]bond.BondQuote(nil), quotes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Maturity < sorted[j].Maturity
	})

	d := xxhash.New()
	var buf [8]byte
	put := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		d.Write(buf[:])
	}
	for _, q := range sorted {
		put(q.Maturity)
		put(q.CouponRate)
		put(q.Price)
		put(q.FaceValue)
	}
	d.WriteString(string(policy))
	return fmt.Sprintf("%s%016x", KeyPrefix, d.Sum64())
}

// MemoryCache is an in-process CurveCache.
type MemoryCache struct {
	mu     sync.RWMutex
	curves map[string]curve.ZeroCurve
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{curves: make(map[string]curve.ZeroCurve)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (curve.ZeroCurve, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.curves[key]
	return c, ok, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, c curve.ZeroCurve) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.curves[key] = c
	return nil
}
