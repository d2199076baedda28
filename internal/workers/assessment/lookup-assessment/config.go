// internal/workers/assessment/lookup-assessment/config.go
package lookupassessment

import (
	"time"

	"assessment-workers/internal/common/validation"
	"assessment-workers/internal/engine/mismatch"
	"assessment-workers/pkg/registry"
)

type Config struct {
	Timeout     time.Duration
	Weights     mismatch.Weights
	InputSchema validation.JSONSchema
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:     10 * time.Second,
		Weights:     mismatch.DefaultWeights(),
		InputSchema: registry.Default().InputSchema(TaskType),
	}
}
