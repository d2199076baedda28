package models

// AccountType is the kind of bank account the business operates from.
type AccountType string

const (
	AccountTypeBusiness AccountType = "business"
	AccountTypePersonal AccountType = "personal"
)

// RiskLabel is the tier derived from a mismatch score.
type RiskLabel string

const (
	RiskLow    RiskLabel = "Low"
	RiskMedium RiskLabel = "Medium"
	RiskHigh   RiskLabel = "High"
)

// RawIntake is the untrusted form payload as it arrives from the intake form.
// Numeric and boolean fields may hold strings, numbers, null or be missing.
type RawIntake struct {
	Email            string      `json:"email"`
	BusinessName     string      `json:"businessName"`
	AccountType      string      `json:"accountType"`
	MonthlyRevenue   interface{} `json:"monthlyRevenue"`
	MonthlyFees      interface{} `json:"monthlyFees"`
	CashDeposits     interface{} `json:"cashDeposits"`
	WantsGrants      interface{} `json:"wantsGrants"`
	ZipCode          string      `json:"zipCode"`
	VeteranOwned     interface{} `json:"veteranOwned,omitempty"`
	ImmigrantFounder interface{} `json:"immigrantFounder,omitempty"`
	BankSuggestion   string      `json:"bankSuggestion,omitempty"`
	GrantSuggestion  string      `json:"grantSuggestion,omitempty"`
}

// IntakeRecord is one normalized business assessment submission.
type IntakeRecord struct {
	ID               string      `json:"id,omitempty"`
	Email            string      `json:"email"`
	BusinessName     string      `json:"businessName"`
	AccountType      AccountType `json:"accountType"`
	MonthlyRevenue   float64     `json:"monthlyRevenue"`
	MonthlyFees      float64     `json:"monthlyFees"`
	CashDeposits     bool        `json:"cashDeposits"`
	WantsGrants      bool        `json:"wantsGrants"`
	ZipCode          string      `json:"zipCode"`
	VeteranOwned     bool        `json:"veteranOwned"`
	ImmigrantFounder bool        `json:"immigrantFounder"`
	BankSuggestion   string      `json:"bankSuggestion,omitempty"`
	GrantSuggestion  string      `json:"grantSuggestion,omitempty"`
	SubmittedAt      int64       `json:"submittedAt,omitempty"`
}

// ScoringResult is derived from an IntakeRecord on demand and never stored.
type ScoringResult struct {
	MismatchScore   int       `json:"mismatchScore"`
	RiskLabel       RiskLabel `json:"riskLabel"`
	KeyReasons      []string  `json:"keyReasons"`
	FeeWastePercent float64   `json:"feeWastePercent"`
	BankSuggestion  string    `json:"bankSuggestion"`
	GrantSuggestion string    `json:"grantSuggestion"`
}

// RiskBuckets counts records per risk tier.
type RiskBuckets struct {
	High   int `json:"High"`
	Medium int `json:"Medium"`
	Low    int `json:"Low"`
}
