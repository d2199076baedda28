// internal/workers/assessment/calculate-mismatch-score/handler.go
package calculatemismatchscore

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
	"assessment-workers/internal/models"
	"assessment-workers/pkg/registry"
)

const TaskType = registry.TaskCalculateMismatchScore

// AssessmentSaver persists normalized intake records.
type AssessmentSaver interface {
	Save(ctx context.Context, rec models.IntakeRecord) (models.IntakeRecord, error)
}

type Handler struct {
	config       *Config
	scorer       *mismatch.Scorer
	store        AssessmentSaver
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the worker. store may be nil, in which case jobs asking
// for persistence fail with a business rule error.
func NewHandler(config *Config, store AssessmentSaver, log logger.Logger) (*Handler, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
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

	input, err := h.parseInput(job)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, err)
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

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	code := errors.AsStandardError(err).Code
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(code)).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, err)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	if _, err := validation.ValidateVariables(job.Variables, h.config.InputSchema); err != nil {
		return nil, err
	}
	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInvalidInputSchemaError(fmt.Sprintf("decode variables: %v", err))
	}
	return &input, nil
}

// Execute normalizes and scores the record, persisting it when asked.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	rec := intake.Normalize(input.Record)
	result := h.scorer.Score(rec)
	metrics.ObserveScoring(result)

	output := &Output{ScoringResult: result, IntakeRecord: rec}

	if input.Persist {
		if h.store == nil {
			return nil, errors.NewBusinessRuleError("Persistence requested but no assessment store is configured", "persist=true")
		}
		saved, err := h.store.Save(ctx, rec)
		if err != nil {
			return nil, err
		}
		output.IntakeRecord = saved
		output.RecordID = saved.ID
	}

	h.logger.Info("mismatch score calculated", map[string]interface{}{
		"email":     rec.Email,
		"score":     result.MismatchScore,
		"riskLabel": string(result.RiskLabel),
		"reasons":   len(result.KeyReasons),
		"persisted": output.RecordID != "",
	})

	return output, nil
}
