// Package geo maps a ZIP code prefix onto a region and its resource links.
package geo

import (
	"strconv"

	"assessment-workers/internal/models"
)

type zipRange struct {
	lo, hi int
	region models.Region
}

var (
	newYork = models.Region{
		Name:          "New York",
		Abbr:          "NY",
		ResourceLinkA: "https://esd.ny.gov/small-business-resources",
		ResourceLinkB: "https://www.sba.gov/district/new-york",
	}
	california = models.Region{
		Name:          "California",
		Abbr:          "CA",
		ResourceLinkA: "https://calosba.ca.gov/",
		ResourceLinkB: "https://www.sba.gov/district/los-angeles",
	}
	texas = models.Region{
		Name:          "Texas",
		Abbr:          "TX",
		ResourceLinkA: "https://gov.texas.gov/business/page/small-business",
		ResourceLinkB: "https://www.sba.gov/district/dallas-fort-worth",
	}
	florida = models.Region{
		Name:          "Florida",
		Abbr:          "FL",
		ResourceLinkA: "https://floridasbdc.org/",
		ResourceLinkB: "https://www.sba.gov/district/south-florida",
	}
	illinois = models.Region{
		Name:          "Illinois",
		Abbr:          "IL",
		ResourceLinkA: "https://dceo.illinois.gov/smallbizassistance.html",
		ResourceLinkB: "https://www.sba.gov/district/illinois",
	}
	georgia = models.Region{
		Name:          "Georgia",
		Abbr:          "GA",
		ResourceLinkA: "https://www.georgia.org/small-business",
		ResourceLinkB: "https://www.sba.gov/district/georgia",
	}
	pennsylvania = models.Region{
		Name:          "Pennsylvania",
		Abbr:          "PA",
		ResourceLinkA: "https://dced.pa.gov/business-assistance/",
		ResourceLinkB: "https://www.sba.gov/district/eastern-pennsylvania",
	}
	ohio = models.Region{
		Name:          "Ohio",
		Abbr:          "OH",
		ResourceLinkA: "https://development.ohio.gov/business/small-business-resources",
		ResourceLinkB: "https://www.sba.gov/district/columbus",
	}
	washington = models.Region{
		Name:          "Washington",
		Abbr:          "WA",
		ResourceLinkA: "https://www.commerce.wa.gov/small-business/",
		ResourceLinkB: "https://www.sba.gov/district/seattle",
	}
	massachusetts = models.Region{
		Name:          "Massachusetts",
		Abbr:          "MA",
		ResourceLinkA: "https://www.mass.gov/topics/small-business",
		ResourceLinkB: "https://www.sba.gov/district/massachusetts",
	}

	nationwide = models.Region{
		Name:          "United States",
		Abbr:          "US",
		ResourceLinkA: "https://www.sba.gov/",
		ResourceLinkB: "https://www.grants.gov/",
	}
)

// Ranges are inclusive and checked in order; the first match wins.
var ranges = []zipRange{
	{10, 27, massachusetts},
	{100, 149, newYork},
	{150, 196, pennsylvania},
	{300, 319, georgia},
	{320, 349, florida},
	{398, 399, georgia},
	{430, 459, ohio},
	{600, 629, illinois},
	{750, 799, texas},
	{885, 885, texas},
	{900, 961, california},
	{980, 994, washington},
}

// Default is the nationwide region returned for unmatched prefixes.
func Default() models.Region {
	return nationwide
}

// RegionFor resolves a ZIP code. Codes whose first three characters are
// not all digits, and prefixes outside every range, resolve to Default.
func RegionFor(zip string) models.Region {
	prefix, ok := Prefix(zip)
	if !ok {
		return nationwide
	}
	for _, r := range ranges {
		if prefix >= r.lo && prefix <= r.hi {
			return r.region
		}
	}
	return nationwide
}

// Prefix parses the three-digit ZIP prefix.
func Prefix(zip string) (int, bool) {
	if len(zip) < 3 {
		return 0, false
	}
	head := zip[:3]
	for i := 0; i < len(head); i++ {
		if head[i] < '0' || head[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return n, true
}
