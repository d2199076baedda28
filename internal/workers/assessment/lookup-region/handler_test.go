// internal/workers/assessment/lookup-region/handler_test.go
package lookupregion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"assessment-workers/internal/common/logger"
)

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(nil, logger.NewTestLogger(t))

	tests := []struct {
		zip      string
		abbr     string
		fallback bool
	}{
		{"10001", "NY", false},
		{"94105", "CA", false},
		{"02110", "MA", false},
		{"60601", "IL", false},
		{"73301", "US", true},
		{"abc", "US", true},
		{"12", "US", true},
		{"", "US", true},
		{"99999", "US", true},
	}

	for _, tt := range tests {
		t.Run(tt.zip, func(t *testing.T) {
			out := h.Execute(context.Background(), &Input{ZipCode: tt.zip})
			assert.Equal(t, tt.abbr, out.Region.Abbr)
			assert.Equal(t, tt.fallback, out.IsFallback)
			assert.NotEmpty(t, out.Region.ResourceLinkA)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Positive(t, cfg.Timeout)
	assert.Equal(t, []string{"zipCode"}, cfg.InputSchema.Required)
}
