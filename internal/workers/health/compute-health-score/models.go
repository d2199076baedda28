// internal/workers/health/compute-health-score/models.go
package computehealthscore

import "assessment-workers/internal/models"

// Input carries the figures as submitted. When Inputs is absent the inputs
// last saved for UserID are scored.
type Input struct {
	UserID string                  `json:"userId"`
	Inputs *models.RawHealthInputs `json:"inputs"`
	Save   bool                    `json:"save"`
}

type Output struct {
	HealthScore   int                         `json:"healthScore"`
	HealthLabel   models.HealthLabel          `json:"healthLabel"`
	HealthMetrics models.HealthMetrics        `json:"healthMetrics"`
	HealthHistory []models.HealthHistoryEntry `json:"healthHistory,omitempty"`
}
