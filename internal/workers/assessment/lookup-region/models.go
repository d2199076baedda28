// internal/workers/assessment/lookup-region/models.go
package lookupregion

import "assessment-workers/internal/models"

type Input struct {
	ZipCode string `json:"zipCode"`
}

type Output struct {
	Region     models.Region `json:"region"`
	IsFallback bool          `json:"regionIsFallback"`
}
