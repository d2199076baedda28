// internal/workers/assessment/calculate-mismatch-score/config.go
package calculatemismatchscore

import (
	"fmt"
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

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Weights.MediumRiskThreshold > c.Weights.HighRiskThreshold {
		return fmt.Errorf("medium risk threshold %d exceeds high risk threshold %d",
			c.Weights.MediumRiskThreshold, c.Weights.HighRiskThreshold)
	}
	return nil
}
