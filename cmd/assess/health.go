// cmd/assess/health.go
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"assessment-workers/internal/engine/benchmark"
	"assessment-workers/internal/engine/health"
	"assessment-workers/internal/engine/insight"
	"assessment-workers/internal/engine/intake"
	"assessment-workers/internal/engine/numeric"
	"assessment-workers/internal/models"
)

type healthOutput struct {
	HealthScore   int                         `json:"healthScore"`
	HealthLabel   models.HealthLabel          `json:"healthLabel"`
	HealthMetrics models.HealthMetrics        `json:"healthMetrics"`
	HealthHistory []models.HealthHistoryEntry `json:"healthHistory,omitempty"`
}

func newHealthCmd() *cobra.Command {
	var (
		file, historyPath, format string
		limit                     int
	)

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Compute the financial health score",
		Long: `Computes the 0-100 financial health score from monthly figures.

With --history the score is prepended to a newest-first JSON history file,
which is created if missing and capped at --limit entries.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			raw, err := decodeOne[models.RawHealthInputs](data)
			if err != nil {
				return err
			}

			result := health.Compute(intake.NormalizeHealthInputs(raw))
			out := healthOutput{
				HealthScore:   result.Score,
				HealthLabel:   result.Label,
				HealthMetrics: result.Metrics,
			}

			if historyPath != "" {
				history, err := readHistory(historyPath)
				if err != nil {
					return err
				}
				entry := models.HealthHistoryEntry{Score: result.Score, Timestamp: time.Now().UnixMilli()}
				out.HealthHistory = health.AppendHistory(history, entry, limit)
				if err := writeHistory(historyPath, out.HealthHistory); err != nil {
					return err
				}
				zap.L().Debug("health history updated",
					zap.String("path", historyPath),
					zap.Int("entries", len(out.HealthHistory)),
				)
			}

			if format == formatText {
				tw := newTable(cmd)
				fmt.Fprintf(tw, "Score:\t%d (%s)\n", out.HealthScore, out.HealthLabel)
				fmt.Fprintf(tw, "Margin:\t%s\n", numeric.FormatPercent(out.HealthMetrics.Margin*100, 1))
				fmt.Fprintf(tw, "Runway:\t%.1f months\n", out.HealthMetrics.Runway)
				fmt.Fprintf(tw, "Debt load:\t%.2f\n", out.HealthMetrics.DebtLoad)
				for _, e := range out.HealthHistory {
					fmt.Fprintf(tw, "History:\t%d (%s) %s\n",
						e.Score, health.LabelFor(e.Score), time.UnixMilli(e.Timestamp).UTC().Format(time.RFC3339))
				}
				return tw.Flush()
			}
			return writeJSON(cmd, out)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "-", "health inputs JSON (- for stdin)")
	f.StringVar(&historyPath, "history", "", "JSON history file to update")
	f.IntVar(&limit, "limit", health.DefaultHistoryLimit, "maximum history entries kept")
	f.StringVar(&format, "format", formatJSON, "output format: json or text")
	return cmd
}

func readHistory(path string) ([]models.HealthHistoryEntry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	var history []models.HealthHistoryEntry
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("decode history %s: %w", path, err)
	}
	return history, nil
}

func writeHistory(path string, history []models.HealthHistoryEntry) error {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

type insightsOutput struct {
	Insights            []models.Insight         `json:"insights"`
	PrioritizedInsights []models.Insight         `json:"prioritizedInsights"`
	Benchmark           models.IndustryBenchmark `json:"benchmark"`
	BenchmarkFallback   bool                     `json:"benchmarkFallback"`
	Metrics             models.InsightMetrics    `json:"insightMetrics"`
}

func newInsightsCmd() *cobra.Command {
	var file, industry, format string

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Generate advisory insights against an industry benchmark",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			raw, err := decodeOne[models.RawHealthInputs](data)
			if err != nil {
				return err
			}
			in := intake.NormalizeHealthInputs(raw)
			if industry == "" {
				industry = in.Industry
			}

			table := benchmark.Current()
			bm, found := table.Find(industry)
			if !found {
				bm = table.Default()
			}
			m := insight.DeriveMetrics(in, bm)
			insights := insight.Generate(m, bm)
			out := insightsOutput{
				Insights:            insights,
				PrioritizedInsights: insight.Prioritize(insights),
				Benchmark:           bm,
				BenchmarkFallback:   !found,
				Metrics:             m,
			}

			if format == formatText {
				tw := newTable(cmd)
				fmt.Fprintf(tw, "Benchmark:\t%s\n", bm.DisplayName)
				for _, i := range out.PrioritizedInsights {
					fmt.Fprintf(tw, "[%s]\t%s\t%s\n", i.Severity, i.Title, i.RecommendedAction)
				}
				return tw.Flush()
			}
			return writeJSON(cmd, out)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "-", "health inputs JSON (- for stdin)")
	f.StringVar(&industry, "industry", "", "benchmark key; defaults to the industry in the inputs")
	f.StringVar(&format, "format", formatJSON, "output format: json or text")
	return cmd
}

func newIndustriesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "industries",
		Short: "List the benchmark catalogue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			all := benchmark.Current().All()
			if format == formatJSON {
				return writeJSON(cmd, all)
			}
			tw := newTable(cmd)
			fmt.Fprintln(tw, "KEY\tNAME\tMARGIN\tRUNWAY\tDEBT LOAD\tCHURN")
			for _, b := range all {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f mo\t%s\t%s\n",
					b.Key, b.DisplayName,
					numeric.FormatPercent(b.Margin*100, 0),
					b.RunwayMonths,
					numeric.FormatPercent(b.DebtLoadRatio*100, 0),
					numeric.FormatPercent(b.ChurnRate*100, 0),
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "output format: json or text")
	return cmd
}
