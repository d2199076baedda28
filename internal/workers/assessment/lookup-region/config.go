// internal/workers/assessment/lookup-region/config.go
package lookupregion

import (
	"time"

	"assessment-workers/internal/common/validation"
	"assessment-workers/pkg/registry"
)

type Config struct {
	Timeout     time.Duration
	InputSchema validation.JSONSchema
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:     5 * time.Second,
		InputSchema: registry.Default().InputSchema(TaskType),
	}
}
