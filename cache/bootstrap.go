package cache

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/meenmo/zerocurve/bond"
	"github.com/meenmo/zerocurve/curve"
)

// Bootstrap returns the cached curve for quotes, bootstrapping and storing
// it on a miss. Cache failures are logged and never fail the call. hit
// reports whether the curve came from the cache.
func Bootstrap(ctx context.Context, cc CurveCache, quotes []bond.BondQuote, cfg curve.Config, log logrus.FieldLogger) (c curve.ZeroCurve, hit bool, err error) {
	if cc == nil {
		c, err = curve.Bootstrap(quotes, curve.WithConfig(cfg))
		return c, false, err
	}

	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	key := Key(quotes, cfg.GapPolicy)
	entry := log.WithField("key", key)

	cached, ok, err := cc.Get(ctx, key)
	switch {
	case err != nil:
		entry.WithError(err).Warn("curve cache read failed")
	case ok:
		entry.Debug("curve cache hit")
		return cached, true, nil
	}

	c, err = curve.Bootstrap(quotes, curve.WithConfig(cfg))
	if err != nil {
		return curve.ZeroCurve{}, false, err
	}
	if err := cc.Set(ctx, key, c); err != nil {
		entry.WithError(err).Warn("curve cache write failed")
	}
	return c, false, nil
}
