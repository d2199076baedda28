// internal/workers/health/generate-insights/models.go
package generateinsights

import "assessment-workers/internal/models"

// Input takes the industry either at the top level or inside inputs; the
// top-level value wins. Without inputs, the inputs saved for UserID are used.
type Input struct {
	UserID   string                  `json:"userId"`
	Inputs   *models.RawHealthInputs `json:"inputs"`
	Industry string                  `json:"industry"`
}

type Output struct {
	Insights            []models.Insight         `json:"insights"`
	PrioritizedInsights []models.Insight         `json:"prioritizedInsights"`
	Benchmark           models.IndustryBenchmark `json:"benchmark"`
	BenchmarkFallback   bool                     `json:"benchmarkFallback"`
	Metrics             models.InsightMetrics    `json:"insightMetrics"`
}
