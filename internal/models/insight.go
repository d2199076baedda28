package models

// Severity ranks an insight.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityPositive Severity = "positive"
)

// InsightCategory groups rules. Categories are evaluated in declaration order.
type InsightCategory string

const (
	CategoryProfitability InsightCategory = "profitability"
	CategoryRunway        InsightCategory = "runway"
	CategoryDebt          InsightCategory = "debt"
	CategoryUnitEconomics InsightCategory = "unit_economics"
	CategoryProductivity  InsightCategory = "productivity"
)

// Insight is a generated advisory finding. It is never persisted.
type Insight struct {
	Category          InsightCategory `json:"category"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Severity          Severity        `json:"severity"`
	RecommendedAction string          `json:"recommendedAction"`
	ImpactArea        string          `json:"impactArea"`
	Timeframe         string          `json:"timeframe"`
}

// InsightMetrics are the derived figures the insight rules compare against a benchmark.
type InsightMetrics struct {
	Revenue            float64 `json:"revenue"`
	Expenses           float64 `json:"expenses"`
	ProfitMargin       float64 `json:"profitMargin"`
	BurnRate           float64 `json:"burnRate"`
	Runway             float64 `json:"runway"`
	DebtToRevenue      float64 `json:"debtToRevenue"`
	Customers          float64 `json:"customers"`
	LTV                float64 `json:"ltv"`
	CAC                float64 `json:"cac"`
	LTVCACRatio        float64 `json:"ltvCacRatio"`
	HasUnitEconomics   bool    `json:"hasUnitEconomics"`
	RevenuePerEmployee float64 `json:"revenuePerEmployee"`
	HasData            bool    `json:"hasData"`
}

// IndustryBenchmark holds reference ratios for one industry.
type IndustryBenchmark struct {
	Key           string  `json:"key" yaml:"key"`
	DisplayName   string  `json:"displayName" yaml:"display_name"`
	Margin        float64 `json:"margin" yaml:"margin"`
	RunwayMonths  float64 `json:"runwayMonths" yaml:"runway_months"`
	DebtLoadRatio float64 `json:"debtLoadRatio" yaml:"debt_load_ratio"`
	ChurnRate     float64 `json:"churnRate" yaml:"churn_rate"`
}

// Region is the result of a ZIP prefix lookup.
type Region struct {
	Name          string `json:"name"`
	Abbr          string `json:"abbr"`
	ResourceLinkA string `json:"resourceLinkA"`
	ResourceLinkB string `json:"resourceLinkB"`
}
