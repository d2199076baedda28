// internal/workers/reporting/bucket-by-risk/handler.go
package bucketbyrisk

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"assessment-workers/internal/common/camunda"
	"assessment-workers/internal/common/errors"
	"assessment-workers/internal/common/logger"
	"assessment-workers/internal/common/metrics"
	"assessment-workers/internal/common/validation"
	"assessment-workers/internal/engine/intake"
	"assessment-workers/internal/engine/mismatch"
	"assessment-workers/internal/engine/numeric"
	"assessment-workers/internal/engine/report"
	"assessment-workers/internal/models"
	"assessment-workers/pkg/registry"
)

const TaskType = registry.TaskBucketByRisk

type AssessmentLister interface {
	List(ctx context.Context, limit int) ([]models.IntakeRecord, error)
}

type Handler struct {
	config       *Config
	scorer       *mismatch.Scorer
	store        AssessmentLister
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, store AssessmentLister, log logger.Logger) (*Handler, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", TaskType, err)
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		scorer:       mismatch.NewScorer(config.Weights),
		store:        store,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.run(ctx, job)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.AsStandardError(err).Code)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.AsStandardError(err).Code)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) run(ctx context.Context, job entities.Job) (*Output, error) {
	input, err := h.parseInput(job)
	if err != nil {
		return nil, err
	}
	return h.Execute(ctx, input)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	if _, err := validation.ValidateVariables(job.Variables, h.config.InputSchema); err != nil {
		return nil, err
	}
	var input Input
	if len(job.Variables) > 0 {
		if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
			return nil, errors.NewInvalidInputSchemaError(fmt.Sprintf("decode variables: %v", err))
		}
	}
	return &input, nil
}

// Execute buckets the records carried by the job, or every stored
// assessment when the job carries none.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	var (
		records []models.IntakeRecord
		source  = SourceVariables
	)

	if input.Records != nil {
		records = intake.NormalizeAll(input.Records)
	} else {
		if h.store == nil {
			return nil, errors.NewBusinessRuleError("No records supplied and no assessment store is configured", TaskType)
		}
		stored, err := h.store.List(ctx, h.config.ListLimit)
		if err != nil {
			return nil, err
		}
		records = stored
		source = SourceStore
	}

	summary := report.Summarize(records, h.scorer)

	h.logger.Info("records bucketed", map[string]interface{}{
		"source": source,
		"total":  summary.Total,
		"high":   summary.Buckets.High,
		"medium": summary.Buckets.Medium,
		"low":    summary.Buckets.Low,
	})

	return &Output{
		RiskBuckets:  summary.Buckets,
		TotalRecords: summary.Total,
		AverageScore: numeric.Round1(summary.AverageScore),
		Source:       source,
	}, nil
}
