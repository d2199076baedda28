// internal/workers/reporting/bucket-by-risk/models.go
package bucketbyrisk

import "assessment-workers/internal/models"

// Input.Records is nil when the variable is absent, in which case the stored
// assessments are bucketed instead. An empty array buckets nothing.
type Input struct {
	Records []models.RawIntake `json:"records"`
}

type Output struct {
	RiskBuckets  models.RiskBuckets `json:"riskBuckets"`
	TotalRecords int                `json:"totalRecords"`
	AverageScore float64            `json:"averageScore"`
	Source       string             `json:"source"`
}

const (
	SourceVariables = "variables"
	SourceStore     = "store"
)
