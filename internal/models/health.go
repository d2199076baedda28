package models

// HealthLabel is the qualitative band of a health score.
type HealthLabel string

const (
	HealthStrong HealthLabel = "Strong"
	HealthGood   HealthLabel = "Good"
	HealthFair   HealthLabel = "Fair"
	HealthAtRisk HealthLabel = "At Risk"
)

// HealthInputs are the monthly figures a user saves for a health check.
type HealthInputs struct {
	Revenue        float64 `json:"revenue"`
	Expenses       float64 `json:"expenses"`
	Debt           float64 `json:"debt"`
	Cash           float64 `json:"cash"`
	Industry       string  `json:"industry,omitempty"`
	TeamSize       float64 `json:"teamSize,omitempty"`
	Customers      float64 `json:"customers,omitempty"`
	NewCustomers   float64 `json:"newCustomers,omitempty"`
	MarketingSpend float64 `json:"marketingSpend,omitempty"`
	CompanyName    string  `json:"companyName,omitempty"`
}

// RawHealthInputs is the health form as submitted. Figures may arrive as
// numbers, numeric strings, null or not at all.
type RawHealthInputs struct {
	Revenue        interface{} `json:"revenue"`
	Expenses       interface{} `json:"expenses"`
	Debt           interface{} `json:"debt"`
	Cash           interface{} `json:"cash"`
	Industry       string      `json:"industry,omitempty"`
	TeamSize       interface{} `json:"teamSize,omitempty"`
	Customers      interface{} `json:"customers,omitempty"`
	NewCustomers   interface{} `json:"newCustomers,omitempty"`
	MarketingSpend interface{} `json:"marketingSpend,omitempty"`
	CompanyName    string      `json:"companyName,omitempty"`
}

// HealthMetrics are the intermediate ratios behind a health score.
type HealthMetrics struct {
	Margin   float64 `json:"margin"`
	Runway   float64 `json:"runway"`
	DebtLoad float64 `json:"debtLoad"`
}

// HealthResult is the output of the health scorer.
type HealthResult struct {
	Score   int           `json:"score"`
	Label   HealthLabel   `json:"label"`
	Metrics HealthMetrics `json:"metrics"`
}

// HealthHistoryEntry is one recorded score. Timestamp is epoch milliseconds.
type HealthHistoryEntry struct {
	Score     int   `json:"score"`
	Timestamp int64 `json:"timestamp"`
}
