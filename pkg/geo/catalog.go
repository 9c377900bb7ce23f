// Package geo provides the embedded catalog of US cities, states and congressional districts
package geo

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed cities.yaml
var citiesData []byte

// City is a catalog entry
type City struct {
	Name       string `yaml:"name" json:"name"`
	State      string `yaml:"state" json:"state"`
	Population int    `yaml:"population" json:"population"`
	Districts  []int  `yaml:"districts" json:"districts,omitempty"`
}

// Location returns "City, ST"
func (c City) Location() string {
	return c.Name + ", " + c.State
}

// Catalog resolves canonical city and state names. Immutable after creation, safe for concurrent use.
type Catalog struct {
	cities []City            // sorted by population, largest first
	states map[string]string // code -> full name
	codes  map[string]string // lowercase full name or code -> code
}

type catalogFile struct {
	States map[string]string `yaml:"states"`
	Cities []City            `yaml:"cities"`
}

// Load returns the embedded catalog
func Load() (*Catalog, error) {
	return New(citiesData)
}

// New parses a catalog from YAML data
func New(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse city catalog: %w", err)
	}

	c := &Catalog{states: make(map[string]string, len(f.States)), codes: make(map[string]string, 2*len(f.States))}
	for code, name := range f.States {
		code = strings.ToUpper(code)
		c.states[code] = name
		c.codes[strings.ToLower(code)] = code
		c.codes[strings.ToLower(name)] = code
	}

	for i, city := range f.Cities {
		code, ok := c.StateCode(city.State)
		if !ok {
			return nil, fmt.Errorf("city %d (%s): unknown state %q", i, city.Name, city.State)
		}
		city.State = code
		c.cities = append(c.cities, city)
	}
	slices.SortStableFunc(c.cities, func(a, b City) int { return b.Population - a.Population })
	return c, nil
}

// StateCode resolves a two-letter code or a full state name, case-insensitive
func (c *Catalog) StateCode(state string) (string, bool) {
	code, ok := c.codes[strings.ToLower(strings.TrimSpace(state))]
	return code, ok
}

// StateName returns the full name of a state code, or empty string
func (c *Catalog) StateName(code string) string {
	return c.states[strings.ToUpper(code)]
}

// Normalize returns the canonical city name and state code. Cities missing from the catalog keep
// their trimmed spelling, ok is false only when the state can't be resolved or the city is blank.
func (c *Catalog) Normalize(city, state string) (canonCity, canonState string, ok bool) {
	city = strings.Join(strings.Fields(city), " ")
	code, found := c.StateCode(state)
	if !found || city == "" {
		return city, strings.TrimSpace(state), false
	}
	if known, exists := c.Find(city, code); exists {
		return known.Name, code, true
	}
	return city, code, true
}

// Find looks up a city by name and state, case-insensitive
func (c *Catalog) Find(city, state string) (City, bool) {
	code, ok := c.StateCode(state)
	if !ok {
		return City{}, false
	}
	city = strings.Join(strings.Fields(city), " ")
	for _, ct := range c.cities {
		if ct.State == code && strings.EqualFold(ct.Name, city) {
			return ct, true
		}
	}
	return City{}, false
}

// CitiesInState returns cities of the state, largest first
func (c *Catalog) CitiesInState(state string) []City {
	code, ok := c.StateCode(state)
	if !ok {
		return nil
	}
	var res []City
	for _, ct := range c.cities {
		if ct.State == code {
			res = append(res, ct)
		}
	}
	return res
}

// CitiesInDistrict returns cities of the state belonging to the congressional district
func (c *Catalog) CitiesInDistrict(state string, district int) []City {
	var res []City
	for _, ct := range c.CitiesInState(state) {
		if slices.Contains(ct.Districts, district) {
			res = append(res, ct)
		}
	}
	return res
}

// TopCities returns the n most populous cities
func (c *Catalog) TopCities(n int) []City {
	if n <= 0 {
		return nil
	}
	return slices.Clone(c.cities[:min(n, len(c.cities))])
}

// ByPopulation returns cities with population in [minPop, maxPop], largest first.
// maxPop <= 0 means no upper bound, limit <= 0 means no limit.
func (c *Catalog) ByPopulation(minPop, maxPop, limit int) []City {
	var res []City
	for _, ct := range c.cities {
		if ct.Population < minPop || (maxPop > 0 && ct.Population > maxPop) {
			continue
		}
		res = append(res, ct)
		if limit > 0 && len(res) >= limit {
			break
		}
	}
	return res
}

// Suggest finds cities matching the query, prefix matches first, then substring matches.
// The query is matched against the city name and against "City, ST".
func (c *Catalog) Suggest(query string, limit int) []City {
	q := strings.ToLower(strings.Join(strings.Fields(query), " "))
	if q == "" {
		return nil
	}
	if limit <= 0 {
		limit = 10
	}

	var prefix, substr []City
	for _, ct := range c.cities {
		name, loc := strings.ToLower(ct.Name), strings.ToLower(ct.Location())
		switch {
		case strings.HasPrefix(name, q), strings.HasPrefix(loc, q):
			prefix = append(prefix, ct)
		case strings.Contains(name, q), strings.Contains(loc, q):
			substr = append(substr, ct)
		}
	}
	res := append(prefix, substr...)
	return res[:min(limit, len(res))]
}

// States returns all state codes, sorted
func (c *Catalog) States() []string {
	res := make([]string, 0, len(c.states))
	for code := range c.states {
		res = append(res, code)
	}
	slices.Sort(res)
	return res
}
