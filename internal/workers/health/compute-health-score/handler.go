// internal/workers/health/compute-health-score/handler.go
package computehealthscore

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
	"assessment-workers/internal/engine/health"
	"assessment-workers/internal/engine/intake"
	"assessment-workers/internal/models"
	"assessment-workers/pkg/registry"
)

const TaskType = registry.TaskComputeHealthScore

// HealthRecorder stores inputs and score history per user.
type HealthRecorder interface {
	SaveInputs(ctx context.Context, userID string, in models.HealthInputs) error
	Inputs(ctx context.Context, userID string) (models.HealthInputs, bool, error)
	AppendHistory(ctx context.Context, userID string, entry models.HealthHistoryEntry) ([]models.HealthHistoryEntry, error)
	History(ctx context.Context, userID string) ([]models.HealthHistoryEntry, error)
}

type Handler struct {
	config       *Config
	scorer       *health.Scorer
	store        HealthRecorder
	now          func() time.Time
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, store HealthRecorder, log logger.Logger) (*Handler, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}

	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		scorer:       health.NewScorer(config.Weights),
		store:        store,
		now:          time.Now,
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
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInvalidInputSchemaError(fmt.Sprintf("decode variables: %v", err))
	}
	return &input, nil
}

// Execute scores the submitted inputs, or the inputs saved for the user
// when none are submitted. With Save set, the inputs are stored and the
// score is appended to the user's history; otherwise the stored history is
// returned unchanged.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	userID := strings.TrimSpace(input.UserID)

	in, err := h.resolveInputs(ctx, userID, input.Inputs)
	if err != nil {
		return nil, err
	}

	result := h.scorer.Compute(in)
	metrics.ObserveHealth(result)

	output := &Output{
		HealthScore:   result.Score,
		HealthLabel:   result.Label,
		HealthMetrics: result.Metrics,
	}

	switch {
	case input.Save:
		if userID == "" {
			return nil, errors.NewBusinessRuleError("userId is required to save a health check", "save=true")
		}
		if h.store == nil {
			return nil, errors.NewBusinessRuleError("Saving requested but no health store is configured", "save=true")
		}
		if input.Inputs != nil {
			if err := h.store.SaveInputs(ctx, userID, in); err != nil {
				return nil, err
			}
		}
		history, err := h.store.AppendHistory(ctx, userID, models.HealthHistoryEntry{
			Score:     result.Score,
			Timestamp: h.now().UnixMilli(),
		})
		if err != nil {
			return nil, err
		}
		output.HealthHistory = history

	case userID != "" && h.store != nil:
		history, err := h.store.History(ctx, userID)
		if err != nil {
			return nil, err
		}
		output.HealthHistory = history
	}

	h.logger.Info("health score computed", map[string]interface{}{
		"userId":  userID,
		"score":   result.Score,
		"label":   string(result.Label),
		"saved":   input.Save,
		"stored":  input.Inputs == nil,
		"history": len(output.HealthHistory),
	})

	return output, nil
}

func (h *Handler) resolveInputs(ctx context.Context, userID string, raw *models.RawHealthInputs) (models.HealthInputs, error) {
	if raw != nil {
		return intake.NormalizeHealthInputs(*raw), nil
	}
	if userID == "" {
		return models.HealthInputs{}, errors.NewInvalidInputSchemaError("inputs or userId is required")
	}
	if h.store == nil {
		return models.HealthInputs{}, errors.NewBusinessRuleError("No inputs submitted and no health store is configured", "userId="+userID)
	}
	in, found, err := h.store.Inputs(ctx, userID)
	if err != nil {
		return models.HealthInputs{}, err
	}
	if !found {
		return models.HealthInputs{}, errors.NewResourceNotFoundError("health store", fmt.Sprintf("no saved inputs for userId %s", userID))
	}
	return in, nil
}
