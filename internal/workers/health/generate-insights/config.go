// internal/workers/health/generate-insights/config.go
package generateinsights

import (
	"time"

	"assessment-workers/internal/common/validation"
	"assessment-workers/internal/engine/insight"
	"assessment-workers/pkg/registry"
)

type Config struct {
	Timeout     time.Duration
	Thresholds  insight.Thresholds
	InputSchema validation.JSONSchema
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:     5 * time.Second,
		Thresholds:  insight.DefaultThresholds(),
		InputSchema: registry.Default().InputSchema(TaskType),
	}
}
