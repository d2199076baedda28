// cmd/assess/main.go
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"assessment-workers/internal/common/errors"
	"assessment-workers/internal/common/logger"
	"assessment-workers/internal/engine/benchmark"
)

func newRootCmd() *cobra.Command {
	var (
		logLevel string
		catalog  string
	)

	root := &cobra.Command{
		Use:   "assess",
		Short: "Score business assessments and financial health offline",
		Long: `Runs the scoring engines used by the workers against JSON files or stdin.

Examples:
  # Score one intake submission
  assess score --file intake.json

  # Score a batch and bucket it by risk
  assess report --file submissions.json

  # Compute a health score and keep a local history
  assess health --file inputs.json --history history.json

  # Insights against a custom benchmark catalogue
  assess insights --file inputs.json --industry bakery --catalog benchmarks.yaml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zap.ReplaceGlobals(logger.New(logLevel, "console", "stderr"))

			if catalog == "" {
				return nil
			}
			table, err := benchmark.LoadFile(catalog)
			if err != nil {
				return errors.NewBenchmarkCatalogError(err)
			}
			benchmark.Replace(table)
			zap.L().Debug("benchmark catalogue loaded",
				zap.String("path", catalog),
				zap.Int("industries", table.Len()),
			)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&catalog, "catalog", "", "YAML benchmark catalogue replacing the built-in table")

	root.AddCommand(
		newScoreCmd(),
		newReportCmd(),
		newRegionCmd(),
		newHealthCmd(),
		newInsightsCmd(),
		newIndustriesCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
