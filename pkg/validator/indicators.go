package validator

import (
	"regexp"
	"strings"
)

// parkedPhrases mark for-sale, placeholder and under-construction pages
var parkedPhrases = []string{
	"domain for sale",
	"this domain is for sale",
	"domain is for sale",
	"this domain may be for sale",
	"parked domain",
	"domain parking",
	"this web page is parked",
	"parked free",
	"under construction",
	"website coming soon",
	"coming soon",
	"future home of",
	"placeholder page",
	"default web page",
	"welcome to nginx",
	"apache2 default page",
	"it works!",
}

// parkingBrands are domain-parking and aftermarket brand markers found on parked pages
var parkingBrands = []string{
	"sedoparking",
	"sedo domain parking",
	"bodis.com",
	"parkingcrew",
	"hugedomains",
	"dan.com",
	"afternic",
	"above.com",
	"parklogic",
	"domainmarket",
	"godaddy domain",
}

// brokerRe matches domain-broker sales copy
var brokerRe = []*regexp.Regexp{
	regexp.MustCompile(`buy\s+this\s+domain`),
	regexp.MustCompile(`premium\s+domains?`),
	regexp.MustCompile(`domain\s+registrar`),
	regexp.MustCompile(`make\s+(an\s+)?offer\s+on\s+this\s+domain`),
	regexp.MustCompile(`inquire\s+about\s+(this|the)\s+domain`),
}

var maintenancePhrases = []string{
	"under maintenance",
	"down for maintenance",
	"scheduled maintenance",
	"maintenance mode",
	"site maintenance",
	"temporarily unavailable",
	"we'll be back soon",
	"we will be back soon",
}

var expiredPhrases = []string{
	"domain has expired",
	"domain name has expired",
	"this domain expired",
	"renew this domain",
	"renewal of this domain",
	"account suspended",
	"account has been suspended",
}

// governmentPhrases are vocabulary of municipal and public-institution sites
var governmentPhrases = []string{
	"city of",
	"town of",
	"county of",
	"village of",
	"borough of",
	"township",
	"city council",
	"city hall",
	"city manager",
	"mayor",
	"municipal",
	"official website",
	"official site",
	"county commission",
	"board of supervisors",
	"public works",
	"school district",
	"board of education",
	"public library",
	"parks and recreation",
}

// parkingHosts are hostnames of domain-parking and aftermarket providers
var parkingHosts = []string{
	"sedo.com",
	"sedoparking.com",
	"godaddy.com",
	"bodis.com",
	"parkingcrew.net",
	"hugedomains.com",
	"dan.com",
	"afternic.com",
	"above.com",
	"namecheap.com",
	"parklogic.com",
	"sav.com",
	"undeveloped.com",
}

// genericTitles don't count as a meaningful page title
var genericTitles = map[string]bool{
	"home": true, "index": true, "untitled": true, "default": true, "welcome": true,
	"document": true, "page": true, "new page": true, "home page": true,
}

// containsAny reports whether text contains at least one of the phrases
func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// countDistinct returns how many different phrases occur in any of the texts
func countDistinct(phrases []string, texts ...string) int {
	count := 0
	for _, p := range phrases {
		for _, t := range texts {
			if strings.Contains(t, p) {
				count++
				break
			}
		}
	}
	return count
}

func isParked(texts ...string) bool {
	for _, t := range texts {
		if containsAny(t, parkedPhrases) || containsAny(t, parkingBrands) {
			return true
		}
		for _, re := range brokerRe {
			if re.MatchString(t) {
				return true
			}
		}
	}
	return false
}

func isMaintenance(texts ...string) bool {
	for _, t := range texts {
		if containsAny(t, maintenancePhrases) {
			return true
		}
	}
	return false
}

func isExpired(texts ...string) bool {
	for _, t := range texts {
		if containsAny(t, expiredPhrases) {
			return true
		}
	}
	return false
}

// isParkingHost checks the host against parking providers, subdomains included
func isParkingHost(host string) bool {
	for _, h := range parkingHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// IsGovernmentHost reports government-style hosts: .gov, .us, .mil and k12 school domains
func IsGovernmentHost(host string) bool {
	host = strings.TrimSuffix(host, ".")
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".us") || strings.HasSuffix(host, ".mil") {
		return true
	}
	for _, label := range strings.Split(host, ".") {
		if strings.Contains(label, "k12") {
			return true
		}
	}
	return false
}
