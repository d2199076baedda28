// internal/workers/health/compute-health-score/config.go
package computehealthscore

import (
	"fmt"
	"time"

	"assessment-workers/internal/common/validation"
	"assessment-workers/internal/engine/health"
	"assessment-workers/pkg/registry"
)

type Config struct {
	Timeout     time.Duration
	Weights     health.Weights
	InputSchema validation.JSONSchema
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:     10 * time.Second,
		Weights:     health.DefaultWeights(),
		InputSchema: registry.Default().InputSchema(TaskType),
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	w := c.Weights
	if w.Margin+w.Runway+w.Debt != 100 {
		return fmt.Errorf("health weights must sum to 100")
	}
	return nil
}
