package discovery

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/umputun/civicfeed/pkg/domain"
)

// site is a website guessed for an organization of a city
type site struct {
	orgType domain.OrgType
	name    string
	url     string
}

// hostPatterns are naming conventions per organization type, most common first.
// %[1]s is the city slug, %[2]s the lowercase state code.
var hostPatterns = map[domain.OrgType][]string{
	domain.OrgCity: {
		"https://www.%[1]s%[2]s.gov",
		"https://www.cityof%[1]s.org",
		"https://www.%[1]s.%[2]s.us",
		"https://www.cityof%[1]s.com",
		"https://www.%[1]s.gov",
		"https://www.ci.%[1]s.%[2]s.us",
	},
	domain.OrgSchool: {
		"https://www.%[1]sschools.org",
		"https://www.%[1]s.k12.%[2]s.us",
		"https://www.%[1]spublicschools.org",
		"https://www.%[1]sisd.org",
		"https://www.%[1]sschools.net",
	},
	domain.OrgChamber: {
		"https://www.%[1]schamber.org",
		"https://www.%[1]schamber.com",
		"https://www.%[1]sareachamber.org",
		"https://www.%[1]s%[2]schamber.org",
	},
	domain.OrgLibrary: {
		"https://www.%[1]slibrary.org",
		"https://www.%[1]spubliclibrary.org",
		"https://www.%[1]s.lib.%[2]s.us",
		"https://www.%[1]spl.org",
	},
	domain.OrgParks: {
		"https://www.%[1]sparks.org",
		"https://www.%[1]sparksandrec.com",
		"https://www.%[1]srecreation.org",
		"https://www.%[1]s%[2]s.gov/parks",
		"https://www.%[1]sparkdistrict.org",
	},
}

var orgNames = map[domain.OrgType]string{
	domain.OrgCity:    "City of %s",
	domain.OrgSchool:  "%s Public Schools",
	domain.OrgChamber: "%s Chamber of Commerce",
	domain.OrgLibrary: "%s Public Library",
	domain.OrgParks:   "%s Parks & Recreation",
}

// candidateSites synthesizes up to perType website guesses for every organization type
func candidateSites(city, state string, perType int) []site {
	slug := citySlug(city)
	st := strings.ToLower(state)
	if slug == "" || st == "" {
		return nil
	}
	var res []site
	for _, t := range domain.OrgTypes {
		patterns := hostPatterns[t]
		if perType > 0 && len(patterns) > perType {
			patterns = patterns[:perType]
		}
		for _, p := range patterns {
			res = append(res, site{orgType: t, name: fmt.Sprintf(orgNames[t], city), url: fmt.Sprintf(p, slug, st)})
		}
	}
	return res
}

// citySlug lowercases the city name and drops everything but letters and digits,
// "St. Louis" becomes "stlouis"
func citySlug(city string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(city) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
