// cmd/assess/score.go
package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"assessment-workers/internal/engine/geo"
	"assessment-workers/internal/engine/intake"
	"assessment-workers/internal/engine/mismatch"
	"assessment-workers/internal/engine/numeric"
	"assessment-workers/internal/engine/report"
	"assessment-workers/internal/models"
)

type scoredRecord struct {
	Record  models.IntakeRecord  `json:"record"`
	Scoring models.ScoringResult `json:"scoring"`
	Region  models.Region        `json:"region"`
}

func newScoreCmd() *cobra.Command {
	var file, format string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score intake submissions for banking mismatch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			raws, err := decodeOneOrMany[models.RawIntake](data)
			if err != nil {
				return err
			}

			out := make([]scoredRecord, 0, len(raws))
			for _, rec := range intake.NormalizeAll(raws) {
				out = append(out, scoredRecord{
					Record:  rec,
					Scoring: mismatch.Score(rec),
					Region:  geo.RegionFor(rec.ZipCode),
				})
			}
			zap.L().Debug("records scored", zap.Int("count", len(out)))

			if format == formatText {
				tw := newTable(cmd)
				fmt.Fprintln(tw, "EMAIL\tSCORE\tRISK\tFEES\tREGION\tREASONS")
				for _, s := range out {
					fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n",
						s.Record.Email,
						s.Scoring.MismatchScore,
						s.Scoring.RiskLabel,
						numeric.FormatPercent(s.Scoring.FeeWastePercent, 1),
						s.Region.Abbr,
						strings.Join(s.Scoring.KeyReasons, "; "),
					)
				}
				return tw.Flush()
			}
			if len(out) == 1 {
				return writeJSON(cmd, out[0])
			}
			return writeJSON(cmd, out)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "-", "intake JSON object or array (- for stdin)")
	f.StringVar(&format, "format", formatJSON, "output format: json or text")
	return cmd
}

type reportOutput struct {
	report.Summary
	AverageLabel models.RiskLabel `json:"averageLabel"`
}

func newReportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Count submissions per risk tier",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			raws, err := decodeOneOrMany[models.RawIntake](data)
			if err != nil {
				return err
			}
			summary := report.Summarize(intake.NormalizeAll(raws), nil)
			summary.AverageScore = numeric.Round1(summary.AverageScore)
			return writeJSON(cmd, reportOutput{
				Summary:      summary,
				AverageLabel: mismatch.RiskLabelFor(int(math.Round(summary.AverageScore))),
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "intake JSON array (- for stdin)")
	return cmd
}

func newRegionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "region <zip>",
		Short: "Resolve a ZIP code to its region and resource links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			region := geo.RegionFor(args[0])
			return writeJSON(cmd, map[string]interface{}{
				"region":           region,
				"regionIsFallback": region == geo.Default(),
			})
		},
	}
}
