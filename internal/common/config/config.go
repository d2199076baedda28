// internal/common/config/config.go
package config

import (
	"fmt"

	"assessment-workers/internal/engine/health"
	"assessment-workers/internal/engine/insight"
	"assessment-workers/internal/engine/mismatch"
)

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig               `mapstructure:"app"`
	Camunda    CamundaConfig           `mapstructure:"camunda"`
	Database   DatabaseConfig          `mapstructure:"database"`
	Workers    map[string]WorkerConfig `mapstructure:"workers"`
	Logging    LoggingConfig           `mapstructure:"logging"`
	Metrics    MetricsConfig           `mapstructure:"metrics"`
	Scoring    ScoringConfig           `mapstructure:"scoring"`
	Benchmarks BenchmarksConfig        `mapstructure:"benchmarks"`
	Health     HealthConfig            `mapstructure:"health"`
	Reporting  ReportingConfig         `mapstructure:"reporting"`
	Registry   RegistryConfig          `mapstructure:"registry"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
	UsePlaintext   bool   `mapstructure:"use_plaintext"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the lib/pq connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address   string `mapstructure:"address"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// WorkerConfig holds the settings every worker shares.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

// ScoringConfig overrides engine weights. Zero fields keep the built-in values.
type ScoringConfig struct {
	Mismatch mismatch.Weights   `mapstructure:"mismatch"`
	Health   health.Weights     `mapstructure:"health"`
	Insights insight.Thresholds `mapstructure:"insights"`
}

// MismatchWeights merges the configured overrides onto the defaults.
func (s ScoringConfig) MismatchWeights() mismatch.Weights {
	return mismatch.DefaultWeights().WithOverrides(s.Mismatch)
}

func (s ScoringConfig) HealthWeights() health.Weights {
	return health.DefaultWeights().WithOverrides(s.Health)
}

func (s ScoringConfig) InsightThresholds() insight.Thresholds {
	return insight.DefaultThresholds().WithOverrides(s.Insights)
}

type BenchmarksConfig struct {
	// CatalogPath points at an optional YAML catalogue replacing the built-in table.
	CatalogPath string `mapstructure:"catalog_path"`
}

type HealthConfig struct {
	HistoryLimit int `mapstructure:"history_limit"`
}

type ReportingConfig struct {
	// ListLimit caps how many stored assessments bucket-by-risk reads. Zero reads all.
	ListLimit int `mapstructure:"list_limit"`
}

type RegistryConfig struct {
	// Path to an activity registry JSON file. Empty uses the built-in registry.
	Path string `mapstructure:"path"`
}
