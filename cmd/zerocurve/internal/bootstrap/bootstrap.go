package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/meenmo/zerocurve/bond"
	"github.com/meenmo/zerocurve/cache"
	"github.com/meenmo/zerocurve/cmd/zerocurve/internal/cli"
	"github.com/meenmo/zerocurve/curve"
	"github.com/meenmo/zerocurve/marketdata"
)

// Quote sources.
const (
	SourceFile      = "file"
	SourcePostgres  = "postgres"
	SourceReference = "reference"
)

// Output is the bootstrap result document.
type Output struct {
	CurveID   string          `json:"curve_id,omitempty" yaml:"curve_id,omitempty"`
	GapPolicy string          `json:"gap_policy" yaml:"gap_policy"`
	Cached    bool            `json:"cached" yaml:"cached"`
	Curve     curve.ZeroCurve `json:"curve" yaml:"curve"`
}

type options struct {
	input       string
	inputFormat string
	source      string
	curveID     string
	gap         string
	format      string
	decimals    int
	noCache     bool
}

// NewCommand returns the bootstrap subcommand.
func NewCommand(env *cli.Env) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Bootstrap a semi-annual zero curve from coupon bond quotes",
		Long: `Bootstrap a semi-annual zero curve from coupon bond quotes.

Quotes are read from a JSON or YAML file (--source file, the default), from the
PostgreSQL quote table (--source postgres --curve-id ID) or from the built-in
four-bond reference set (--source reference). Each quote has maturity (years)
or tenor ("6M", "1.5Y"), coupon_rate (percent), price and face_value
(default 100).

When redis.addr is configured, results are cached by quote-set fingerprint.`,
		Example: `  zerocurve bootstrap --input quotes.json
  zerocurve bootstrap --source reference --format text
  zerocurve bootstrap --source postgres --curve-id ust-2025-06-30 --gap fail`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), env, opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.input, "input", "", `quote file path ("-" or empty reads stdin)`)
	fs.StringVar(&opts.inputFormat, "input-format", "", "quote file format: json or yaml (default from extension)")
	fs.StringVar(&opts.source, "source", SourceFile, "quote source: file, postgres or reference")
	fs.StringVar(&opts.curveID, "curve-id", "", "curve id for the postgres source")
	fs.StringVar(&opts.gap, "gap", "", "gap policy for unquoted coupon dates: skip or fail (default from config)")
	fs.StringVar(&opts.format, "format", "json", "output format: json, yaml or table (text is an alias)")
	fs.IntVar(&opts.decimals, "decimals", -1, "percent decimals for text output (default from config)")
	fs.BoolVar(&opts.noCache, "no-cache", false, "bypass the curve cache")
	return cmd
}

func run(ctx context.Context, env *cli.Env, opts options) error {
	format := strings.ToLower(opts.format)
	switch format {
	case "table":
		format = "text"
	case "json", "yaml", "text":
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	cfg, err := env.Config.CurveConfig()
	if err != nil {
		return err
	}
	if opts.gap != "" {
		if cfg.GapPolicy, err = curve.ParseGapPolicy(opts.gap); err != nil {
			return err
		}
	}
	cfg.Logger = env.Logger

	quotes, curveID, err := loadQuotes(ctx, env, opts)
	if err != nil {
		return cli.Fail(err)
	}
	log := env.Logger.WithField("quotes", len(quotes))
	if curveID != "" {
		log = log.WithField("curve_id", curveID)
	}

	cc, closeCache := openCache(ctx, env, opts.noCache)
	defer closeCache()

	zc, hit, err := cache.Bootstrap(ctx, cc, quotes, cfg, log)
	if err != nil {
		return cli.Fail(err)
	}
	log.WithField("cached", hit).Info("zero curve ready")

	out := Output{CurveID: curveID, GapPolicy: string(cfg.GapPolicy), Cached: hit, Curve: zc}
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(env.Stdout)
		defer enc.Close()
		return enc.Encode(out)
	case "text":
		decimals := opts.decimals
		if decimals < 0 {
			decimals = env.Config.Bootstrap.Decimals
		}
		return zc.Format(env.Stdout, decimals)
	default:
		return env.WriteJSON(out)
	}
}

func loadQuotes(ctx context.Context, env *cli.Env, opts options) ([]bond.BondQuote, string, error) {
	switch strings.ToLower(opts.source) {
	case SourceFile, "":
		raw, err := env.ReadInput(opts.input)
		if err != nil {
			return nil, "", fmt.Errorf("read input: %w", err)
		}
		format := opts.inputFormat
		if format == "" {
			format = marketdata.FormatFromPath(opts.input)
		}
		quotes, err := marketdata.DecodeQuotes(bytes.NewReader(raw), format)
		return quotes, "", err

	case SourcePostgres:
		if env.Config.Postgres.DSN == "" {
			return nil, "", fmt.Errorf("postgres.dsn is not configured")
		}
		if opts.curveID == "" {
			return nil, "", fmt.Errorf("--curve-id is required for the postgres source")
		}
		db, err := marketdata.OpenPostgres(ctx, env.Config.Postgres.DSN)
		if err != nil {
			return nil, "", err
		}
		defer db.Close()
		src := marketdata.NewPostgresQuoteSource(db, env.Config.Postgres.Table)
		quotes, err := src.Quotes(ctx, opts.curveID)
		return quotes, opts.curveID, err

	case SourceReference:
		id := opts.curveID
		if id == "" {
			id = SourceReference
		}
		src := marketdata.NewStaticQuoteSource(map[string][]bond.BondQuote{
			SourceReference: marketdata.ReferenceQuotes(),
		})
		quotes, err := src.Quotes(ctx, id)
		return quotes, id, err

	default:
		return nil, "", fmt.Errorf("unknown quote source %q", opts.source)
	}
}

// openCache returns nil when caching is disabled or Redis is unreachable.
func openCache(ctx context.Context, env *cli.Env, disabled bool) (cache.CurveCache, func()) {
	rc := env.Config.Redis
	if disabled || rc.Addr == "" {
		return nil, func() {}
	}

	redisCache := cache.NewRedisCache(rc.Addr, rc.Password, rc.DB, rc.TTL)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		env.Logger.WithError(err).WithField("addr", rc.Addr).Warn("curve cache unavailable, bootstrapping without it")
		redisCache.Close()
		return nil, func() {}
	}
	return redisCache, func() { redisCache.Close() }
}
