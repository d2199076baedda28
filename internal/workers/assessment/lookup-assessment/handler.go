// internal/workers/assessment/lookup-assessment/handler.go
package lookupassessment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"assessment-workers/internal/common/camunda"
	"assessment-workers/internal/common/errors"
	"assessment-workers/internal/common/logger"
	"assessment-workers/internal/common/metrics"
	"assessment-workers/internal/common/validation"
	"assessment-workers/internal/engine/mismatch"
	"assessment-workers/internal/models"
	"assessment-workers/pkg/registry"
)

const TaskType = registry.TaskLookupAssessment

type AssessmentFinder interface {
	LatestByEmail(ctx context.Context, email string) (models.IntakeRecord, error)
}

type Handler struct {
	config       *Config
	scorer       *mismatch.Scorer
	store        AssessmentFinder
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, store AssessmentFinder, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		scorer:       mismatch.NewScorer(config.Weights),
		store:        store,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
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
	if _, err := validation.ValidateVariables(job.Variables, h.config.InputSchema); err != nil {
		return nil, err
	}
	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInvalidInputSchemaError(fmt.Sprintf("decode variables: %v", err))
	}
	return h.Execute(ctx, &input)
}

// Execute looks up the latest record for the email. A missing record is a
// normal outcome, reported as Found=false.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if h.store == nil {
		return nil, errors.NewBusinessRuleError("No assessment store is configured", TaskType)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	rec, err := h.store.LatestByEmail(ctx, email)
	if err != nil {
		if errors.AsStandardError(err).Code == errors.ErrCodeAssessmentNotFound {
			h.logger.Info("no assessment for email", map[string]interface{}{"email": email})
			return &Output{Found: false}, nil
		}
		return nil, err
	}

	result := h.scorer.Score(rec)
	h.logger.Info("assessment found", map[string]interface{}{
		"email":     email,
		"recordId":  rec.ID,
		"score":     result.MismatchScore,
		"riskLabel": string(result.RiskLabel),
	})

	return &Output{Found: true, Record: &rec, Scoring: &result}, nil
}
