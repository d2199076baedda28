// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"assessment-workers/internal/models"
)

var scoreBuckets = prometheus.LinearBuckets(0, 10, 11)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	MismatchScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assessment_mismatch_score",
			Help:    "Distribution of banking mismatch scores",
			Buckets: scoreBuckets,
		},
	)

	RiskLabels = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_risk_label_total",
			Help: "Scored assessments by risk label",
		},
		[]string{"label"},
	)

	HealthScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assessment_health_score",
			Help:    "Distribution of financial health scores",
			Buckets: scoreBuckets,
		},
	)

	InsightsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_insights_generated_total",
			Help: "Generated insights by severity",
		},
		[]string{"severity"},
	)
)

func ObserveScoring(r models.ScoringResult) {
	MismatchScore.Observe(float64(r.MismatchScore))
	RiskLabels.WithLabelValues(string(r.RiskLabel)).Inc()
}

func ObserveHealth(r models.HealthResult) {
	HealthScore.Observe(float64(r.Score))
}

func ObserveInsights(insights []models.Insight) {
	for _, in := range insights {
		InsightsGenerated.WithLabelValues(string(in.Severity)).Inc()
	}
}
