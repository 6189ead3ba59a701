package quotes

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/meenmo/zerocurve/cmd/zerocurve/internal/cli"
	"github.com/meenmo/zerocurve/curve"
	"github.com/meenmo/zerocurve/marketdata"
)

// ImportOutput summarises a quote import.
type ImportOutput struct {
	CurveID  string `json:"curve_id"`
	Table    string `json:"table"`
	Imported int    `json:"imported"`
}

// NewCommand returns the quotes command group.
func NewCommand(env *cli.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quotes",
		Short: "Manage the PostgreSQL quote table",
	}
	cmd.AddCommand(newImportCommand(env))
	return cmd
}

func newImportCommand(env *cli.Env) *cobra.Command {
	var input, inputFormat, curveID string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Validate a quote file and upsert it into the quote table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if curveID == "" {
				return fmt.Errorf("--curve-id is required")
			}
			if env.Config.Postgres.DSN == "" {
				return cli.Failf("postgres.dsn is not configured")
			}
			return runImport(cmd.Context(), env, input, inputFormat, curveID)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&input, "input", "", `quote file path ("-" or empty reads stdin)`)
	fs.StringVar(&inputFormat, "input-format", "", "quote file format: json or yaml (default from extension)")
	fs.StringVar(&curveID, "curve-id", "", "curve id to store the quotes under")
	return cmd
}

func runImport(ctx context.Context, env *cli.Env, input, inputFormat, curveID string) error {
	raw, err := env.ReadInput(input)
	if err != nil {
		return cli.Failf("read input: %v", err)
	}
	if inputFormat == "" {
		inputFormat = marketdata.FormatFromPath(input)
	}
	quotes, err := marketdata.DecodeQuotes(bytes.NewReader(raw), inputFormat)
	if err != nil {
		return cli.Fail(err)
	}

	// Reject sets that could never bootstrap before they reach the table.
	if _, err := curve.Bootstrap(quotes); err != nil {
		return cli.Fail(err)
	}

	db, err := marketdata.OpenPostgres(ctx, env.Config.Postgres.DSN)
	if err != nil {
		return cli.Fail(err)
	}
	defer db.Close()

	src := marketdata.NewPostgresQuoteSource(db, env.Config.Postgres.Table)
	if err := src.EnsureTable(ctx); err != nil {
		return cli.Fail(err)
	}
	if err := src.Insert(ctx, curveID, quotes); err != nil {
		return cli.Fail(err)
	}

	table := env.Config.Postgres.Table
	if table == "" {
		table = marketdata.DefaultQuoteTable
	}
	env.Logger.WithFields(logrus.Fields{
		"curve_id": curveID,
		"quotes":   len(quotes),
	}).Info("quotes imported")
	return env.WriteJSON(ImportOutput{CurveID: curveID, Table: table, Imported: len(quotes)})
}
