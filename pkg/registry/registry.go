// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"assessment-workers/internal/common/validation"
)

// LoadRegistry reads a registry JSON file and checks every activity.
func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}
	return &reg, nil
}

// Validate rejects duplicate or badly named task types and input schemas
// that do not compile.
func (r *ActivityRegistry) Validate() error {
	if len(r.Activities) == 0 {
		return fmt.Errorf("no activities defined")
	}
	seen := make(map[string]bool, len(r.Activities))
	for _, a := range r.Activities {
		if err := validation.ValidateActivityNaming(a.TaskType); err != nil {
			return err
		}
		if seen[a.TaskType] {
			return fmt.Errorf("duplicate task type %s", a.TaskType)
		}
		seen[a.TaskType] = true
		if _, err := validation.Compile(a.InputSchema); err != nil {
			return fmt.Errorf("activity %s: input schema: %w", a.TaskType, err)
		}
	}
	return nil
}

func (r *ActivityRegistry) Find(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// InputSchema returns the activity's schema, or an object schema accepting
// anything when the task type is unknown.
func (r *ActivityRegistry) InputSchema(taskType string) validation.JSONSchema {
	if a, ok := r.Find(taskType); ok {
		return a.InputSchema
	}
	return validation.JSONSchema{Type: "object"}
}

func (r *ActivityRegistry) TaskTypes() []string {
	out := make([]string, len(r.Activities))
	for i, a := range r.Activities {
		out[i] = a.TaskType
	}
	return out
}
