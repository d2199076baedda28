// internal/workers/reporting/bucket-by-risk/config.go
package bucketbyrisk

import (
	"fmt"
	"time"

	"assessment-workers/internal/common/validation"
	"assessment-workers/internal/engine/mismatch"
	"assessment-workers/pkg/registry"
)

type Config struct {
	Timeout time.Duration
	Weights mismatch.Weights
	// ListLimit caps how many stored assessments are read when the job
	// carries no records. Zero reads all of them.
	ListLimit   int
	InputSchema validation.JSONSchema
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:     30 * time.Second,
		Weights:     mismatch.DefaultWeights(),
		InputSchema: registry.Default().InputSchema(TaskType),
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.ListLimit < 0 {
		return fmt.Errorf("list limit must not be negative")
	}
	return nil
}
