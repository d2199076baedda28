package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionFor(t *testing.T) {
	tests := []struct {
		zip          string
		expectedAbbr string
	}{
		{"10001", "NY"},
		{"14999", "NY"},
		{"90210", "CA"},
		{"96199", "CA"},
		{"75201", "TX"},
		{"88510", "TX"},
		{"33101", "FL"},
		{"60601", "IL"},
		{"30301", "GA"},
		{"39901", "GA"},
		{"19103", "PA"},
		{"43215", "OH"},
		{"98101", "WA"},
		{"02108", "MA"},
		{"01001", "MA"},
		{"99999", "US"},
		{"00501", "US"},
		{"abc", "US"},
		{"12", "US"},
		{"", "US"},
		{"1a345", "US"},
		{"100", "NY"},
	}

	for _, tt := range tests {
		t.Run(tt.zip, func(t *testing.T) {
			assert.Equal(t, tt.expectedAbbr, RegionFor(tt.zip).Abbr)
		})
	}
}

func TestRegionFor_DefaultHasLinks(t *testing.T) {
	r := RegionFor("not-a-zip")

	assert.Equal(t, Default(), r)
	assert.Equal(t, "United States", r.Name)
	assert.NotEmpty(t, r.ResourceLinkA)
	assert.NotEmpty(t, r.ResourceLinkB)
}

func TestPrefix(t *testing.T) {
	n, ok := Prefix("02108")
	assert.True(t, ok)
	assert.Equal(t, 21, n)

	_, ok = Prefix("-12")
	assert.False(t, ok)
}

func TestRanges_DoNotOverlap(t *testing.T) {
	for i, a := range ranges {
		assert.LessOrEqual(t, a.lo, a.hi)
		for _, b := range ranges[i+1:] {
			overlap := a.lo <= b.hi && b.lo <= a.hi
			assert.False(t, overlap, "%d-%d overlaps %d-%d", a.lo, a.hi, b.lo, b.hi)
		}
	}
}
