package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/meenmo/zerocurve/cmd/zerocurve/internal/bootstrap"
	"github.com/meenmo/zerocurve/cmd/zerocurve/internal/cli"
	"github.com/meenmo/zerocurve/cmd/zerocurve/internal/price"
	"github.com/meenmo/zerocurve/cmd/zerocurve/internal/quotes"
	"github.com/meenmo/zerocurve/config"
	"github.com/meenmo/zerocurve/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit code: 0 on success,
// 1 when a computation fails (reported as JSON on stdout), 2 on usage errors.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	env := &cli.Env{Stdin: stdin, Stdout: stdout, Stderr: stderr}

	root := newRootCommand(env)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	var failure *cli.Failure
	switch {
	case err == nil:
		return 0
	case errors.As(err, &failure):
		if !failure.Reported {
			env.WriteError(failure.Error())
		}
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		fmt.Fprintln(stderr, "Run `zerocurve --help` for usage.")
		return 2
	}
}

func newRootCommand(env *cli.Env) *cobra.Command {
	var configPath, logLevel string

	root := &cobra.Command{
		Use:   "zerocurve",
		Short: "Zero-coupon bond pricing and semi-annual zero curve bootstrapping",
		Long: `zerocurve prices zero-coupon bonds and bootstraps semi-annual zero
curves from coupon bond quotes. Results are written to stdout as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			logger, err := logging.New(cfg.Log, env.Stdout, env.Stderr)
			if err != nil {
				return err
			}
			env.Config = cfg
			env.Logger = logger
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv(config.EnvPrefix+"CONFIG"), "YAML config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")

	root.AddCommand(
		price.NewCommand(env),
		bootstrap.NewCommand(env),
		quotes.NewCommand(env),
	)
	return root
}
