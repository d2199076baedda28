// pkg/registry/schema.go
package registry

import "assessment-workers/internal/common/validation"

type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	ID                   string                `json:"id"`
	DisplayName          string                `json:"displayName"`
	Description          string                `json:"description"`
	Category             string                `json:"category"`
	Version              string                `json:"version"`
	TaskType             string                `json:"taskType"`
	ImplementationStatus string                `json:"implementationStatus"`
	InputSchema          validation.JSONSchema `json:"inputSchema"`
	OutputVariables      []string              `json:"outputVariables"`
	ErrorCodes           []string              `json:"errorCodes"`
	Timeout              string                `json:"timeout"`
	Retries              int                   `json:"retries"`
	Tags                 []string              `json:"tags"`
}
