package curve

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// GapPolicy controls what happens when an intermediate semi-annual point has
// no zero rate in the curve built so far.
type GapPolicy string

const (
	// GapSkip drops the unmatched coupon from the present value. The bond's
	// price residual then absorbs it, which distorts the solved rate.
	GapSkip GapPolicy = "skip"
	// GapFail stops the bootstrap with a *GapError.
	GapFail GapPolicy = "fail"
)

// ParseGapPolicy converts "skip" or "fail" (case-insensitive) to a GapPolicy.
// An empty string selects GapSkip.
func ParseGapPolicy(s string) (GapPolicy, error) {
	switch GapPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", GapSkip:
		return GapSkip, nil
	case GapFail:
		return GapFail, nil
	default:
		return "", fmt.Errorf("unknown gap policy %q (want skip or fail)", s)
	}
}

// Config holds bootstrap parameters.
type Config struct {
	// GapPolicy selects the handling of unquoted intermediate coupon dates.
	GapPolicy GapPolicy

	// Logger receives per-step debug output. Nil disables logging.
	Logger logrus.FieldLogger
}

// DefaultConfig reproduces the reference numerics: gaps are skipped silently.
var DefaultConfig = Config{
	GapPolicy: GapSkip,
}

// Option mutates a Config.
type Option func(*Config)

// WithGapPolicy sets the gap policy.
func WithGapPolicy(p GapPolicy) Option {
	return func(c *Config) {
		c.GapPolicy = p
	}
}

// WithLogger attaches a logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

func newConfig(opts []Option) (Config, error) {
	cfg := DefaultConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	policy, err := cfg.gapPolicy()
	if err != nil {
		return Config{}, err
	}
	cfg.GapPolicy = policy
	return cfg, nil
}

// gapPolicy normalises the configured policy; empty means GapSkip.
func (c Config) gapPolicy() (GapPolicy, error) {
	policy, err := ParseGapPolicy(string(c.GapPolicy))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return policy, nil
}
