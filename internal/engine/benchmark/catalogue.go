// Package benchmark holds the industry reference ratios used to put a
// business's own metrics in context.
//
// A Table is immutable once built. The process-wide catalogue is swapped
// whole through an atomic pointer, so concurrent readers see either the old
// table or the new one and never a partially updated entry.
package benchmark

import (
	"fmt"
	"math"
	"os"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"assessment-workers/internal/models"
)

// Table is an immutable, ordered benchmark catalogue.
type Table struct {
	entries []models.IndustryBenchmark
	byKey   map[string]int
}

// NewTable validates entries and builds a table. The first entry becomes the
// fallback for unknown keys.
func NewTable(entries []models.IndustryBenchmark) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("benchmark catalogue is empty")
	}

	t := &Table{
		entries: make([]models.IndustryBenchmark, len(entries)),
		byKey:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		e.Key = strings.ToLower(strings.TrimSpace(e.Key))
		if e.Key == "" {
			return nil, fmt.Errorf("benchmark entry %d has no key", i)
		}
		if _, dup := t.byKey[e.Key]; dup {
			return nil, fmt.Errorf("duplicate benchmark key %q", e.Key)
		}
		for name, v := range map[string]float64{
			"margin":          e.Margin,
			"runway_months":   e.RunwayMonths,
			"debt_load_ratio": e.DebtLoadRatio,
			"churn_rate":      e.ChurnRate,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return nil, fmt.Errorf("benchmark %q: %s must be a finite non-negative number", e.Key, name)
			}
		}
		if e.DisplayName == "" {
			e.DisplayName = e.Key
		}
		t.entries[i] = e
		t.byKey[e.Key] = i
	}
	return t, nil
}

// Lookup returns the entry for key, or the default entry when key is unknown.
func (t *Table) Lookup(key string) models.IndustryBenchmark {
	if i, ok := t.byKey[strings.ToLower(strings.TrimSpace(key))]; ok {
		return t.entries[i]
	}
	return t.entries[0]
}

// Find reports whether key is present.
func (t *Table) Find(key string) (models.IndustryBenchmark, bool) {
	i, ok := t.byKey[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return models.IndustryBenchmark{}, false
	}
	return t.entries[i], true
}

// Default returns the first entry.
func (t *Table) Default() models.IndustryBenchmark {
	return t.entries[0]
}

// Keys lists keys in catalogue order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.entries))
	for i, e := range t.entries {
		keys[i] = e.Key
	}
	return keys
}

// All returns a copy of every entry in catalogue order.
func (t *Table) All() []models.IndustryBenchmark {
	out := make([]models.IndustryBenchmark, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Builtin returns the shipped catalogue.
func Builtin() *Table {
	t, err := NewTable(builtin)
	if err != nil {
		panic(fmt.Sprintf("builtin benchmark catalogue: %v", err))
	}
	return t
}

type catalogueFile struct {
	Industries []models.IndustryBenchmark `yaml:"industries"`
}

// LoadFile reads a YAML catalogue of the form
//
//	industries:
//	  - key: saas
//	    display_name: SaaS
//	    margin: 0.2
//	    runway_months: 18
//	    debt_load_ratio: 0.3
//	    churn_rate: 0.05
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmark catalogue: %w", err)
	}

	var f catalogueFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse benchmark catalogue: %w", err)
	}

	t, err := NewTable(f.Industries)
	if err != nil {
		return nil, fmt.Errorf("invalid benchmark catalogue %s: %w", path, err)
	}
	return t, nil
}

var current atomic.Pointer[Table]

func init() {
	current.Store(Builtin())
}

// Current returns the active process-wide table.
func Current() *Table {
	return current.Load()
}

// Replace atomically installs t as the process-wide table. A nil table is ignored.
func Replace(t *Table) {
	if t != nil {
		current.Store(t)
	}
}

// Lookup resolves key against the process-wide table.
func Lookup(key string) models.IndustryBenchmark {
	return Current().Lookup(key)
}

// Keys lists the process-wide table's keys.
func Keys() []string {
	return Current().Keys()
}
