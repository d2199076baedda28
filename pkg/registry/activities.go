package registry

import "assessment-workers/internal/common/validation"

// Task types served by the worker manager.
const (
	TaskCalculateMismatchScore = "calculate-mismatch-score"
	TaskLookupRegion           = "lookup-region"
	TaskLookupAssessment       = "lookup-assessment"
	TaskComputeHealthScore     = "compute-health-score"
	TaskGenerateInsights       = "generate-insights"
	TaskBucketByRisk           = "bucket-by-risk"
)

const object = "object"

var (
	str     = validation.Property{Type: "string"}
	num     = validation.Property{Type: "number"}
	boolean = validation.Property{Type: "boolean"}
	loose   = validation.Property{}
	userID  = validation.Property{Type: "string", MaxLength: validation.IntPtr(200)}
)

// intakeRecord accepts the raw form payload. Numeric and flag fields are
// left untyped because the form sends strings, numbers or null.
var intakeRecord = validation.Property{
	Type: object,
	Properties: map[string]validation.Property{
		"email":            {Type: "string", MaxLength: validation.IntPtr(320)},
		"businessName":     str,
		"accountType":      str,
		"monthlyRevenue":   loose,
		"monthlyFees":      loose,
		"cashDeposits":     loose,
		"wantsGrants":      loose,
		"zipCode":          str,
		"veteranOwned":     loose,
		"immigrantFounder": loose,
		"bankSuggestion":   str,
		"grantSuggestion":  str,
	},
}

// healthInputs accepts the health form. Figures are untyped and optional:
// missing, null and numeric-string values are coerced to numbers later.
var healthInputs = validation.Property{
	Type: object,
	Properties: map[string]validation.Property{
		"revenue":        loose,
		"expenses":       loose,
		"debt":           loose,
		"cash":           loose,
		"industry":       str,
		"teamSize":       loose,
		"customers":      loose,
		"newCustomers":   loose,
		"marketingSpend": loose,
		"companyName":    str,
	},
}

// Default is the built-in registry.
func Default() *ActivityRegistry {
	return &ActivityRegistry{
		Version:     "1.0.0",
		LastUpdated: "2026-10-01",
		Activities: []Activity{
			{
				ID:                   "assessment.mismatch.score",
				DisplayName:          "Calculate Mismatch Score",
				Description:          "Normalizes an intake record and scores how poorly its banking setup fits the business",
				Category:             "assessment",
				Version:              "1.0.0",
				TaskType:             TaskCalculateMismatchScore,
				ImplementationStatus: "implemented",
				InputSchema: validation.JSONSchema{
					Type:     object,
					Required: []string{"record"},
					Properties: map[string]validation.Property{
						"record":  intakeRecord,
						"persist": boolean,
					},
				},
				OutputVariables: []string{"mismatchScore", "riskLabel", "keyReasons", "feeWastePercent", "bankSuggestion", "grantSuggestion", "recordId"},
				ErrorCodes:      []string{"INVALID_INPUT_SCHEMA", "INTAKE_VALIDATION_FAILED", "ASSESSMENT_STORE_FAILED"},
				Timeout:         "10s",
				Retries:         3,
				Tags:            []string{"scoring", "intake"},
			},
			{
				ID:                   "assessment.region.lookup",
				DisplayName:          "Lookup Region",
				Description:          "Maps a ZIP code to a state and its small business resource links",
				Category:             "assessment",
				Version:              "1.0.0",
				TaskType:             TaskLookupRegion,
				ImplementationStatus: "implemented",
				InputSchema: validation.JSONSchema{
					Type:     object,
					Required: []string{"zipCode"},
					Properties: map[string]validation.Property{
						"zipCode": {Type: "string", MaxLength: validation.IntPtr(10)},
					},
				},
				OutputVariables: []string{"region"},
				ErrorCodes:      []string{"INVALID_INPUT_SCHEMA"},
				Timeout:         "5s",
				Tags:            []string{"geo"},
			},
			{
				ID:                   "assessment.record.lookup",
				DisplayName:          "Lookup Assessment",
				Description:          "Loads the latest intake record for an email and scores it",
				Category:             "assessment",
				Version:              "1.0.0",
				TaskType:             TaskLookupAssessment,
				ImplementationStatus: "implemented",
				InputSchema: validation.JSONSchema{
					Type:     object,
					Required: []string{"email"},
					Properties: map[string]validation.Property{
						"email": {Type: "string", MinLength: validation.IntPtr(3), MaxLength: validation.IntPtr(320)},
					},
				},
				OutputVariables: []string{"found", "record", "scoring"},
				ErrorCodes:      []string{"INVALID_INPUT_SCHEMA", "ASSESSMENT_STORE_FAILED"},
				Timeout:         "10s",
				Retries:         3,
				Tags:            []string{"intake", "storage"},
			},
			{
				ID:                   "health.score.compute",
				DisplayName:          "Compute Health Score",
				Description:          "Scores financial health from monthly figures and optionally records it in the user's history",
				Category:             "health",
				Version:              "1.0.0",
				TaskType:             TaskComputeHealthScore,
				ImplementationStatus: "implemented",
				InputSchema: validation.JSONSchema{
					Type: object,
					Properties: map[string]validation.Property{
						"userId": userID,
						"inputs": healthInputs,
						"save":   boolean,
					},
				},
				OutputVariables: []string{"healthScore", "healthLabel", "healthMetrics", "healthHistory"},
				ErrorCodes:      []string{"INVALID_INPUT_SCHEMA", "BUSINESS_RULE_VIOLATION", "RESOURCE_NOT_FOUND", "HEALTH_STORE_FAILED"},
				Timeout:         "10s",
				Retries:         3,
				Tags:            []string{"scoring", "health"},
			},
			{
				ID:                   "health.insights.generate",
				DisplayName:          "Generate Insights",
				Description:          "Compares financial figures with an industry benchmark and produces advisory insights",
				Category:             "health",
				Version:              "1.0.0",
				TaskType:             TaskGenerateInsights,
				ImplementationStatus: "implemented",
				InputSchema: validation.JSONSchema{
					Type: object,
					Properties: map[string]validation.Property{
						"userId":   userID,
						"inputs":   healthInputs,
						"industry": str,
					},
				},
				OutputVariables: []string{"insights", "prioritizedInsights", "benchmark", "benchmarkFallback", "insightMetrics"},
				ErrorCodes:      []string{"INVALID_INPUT_SCHEMA", "RESOURCE_NOT_FOUND", "HEALTH_STORE_FAILED"},
				Timeout:         "5s",
				Tags:            []string{"insights", "benchmark"},
			},
			{
				ID:                   "reporting.risk.bucket",
				DisplayName:          "Bucket By Risk",
				Description:          "Counts intake records per risk label",
				Category:             "reporting",
				Version:              "1.0.0",
				TaskType:             TaskBucketByRisk,
				ImplementationStatus: "implemented",
				InputSchema: validation.JSONSchema{
					Type: object,
					Properties: map[string]validation.Property{
						"records": {Type: "array", Items: &intakeRecord},
					},
				},
				OutputVariables: []string{"riskBuckets", "totalRecords", "averageScore", "source"},
				ErrorCodes:      []string{"INVALID_INPUT_SCHEMA", "ASSESSMENT_STORE_FAILED"},
				Timeout:         "30s",
				Retries:         3,
				Tags:            []string{"reporting"},
			},
		},
	}
}
