// Package ppp answers affordability queries from a static table of local
// purchasing power indices for South Asian cities. The table is embedded
// at build time and loaded once.
package ppp

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

//go:embed cities.json
var citiesJSON []byte

// City is one row of the purchasing power table.
type City struct {
	Name  string  `json:"city"`
	Index float64 `json:"local_purchasing_power_index"`
}

// Table holds the loaded city rows in file order.
type Table struct {
	cities []City
}

var ErrNoCity = errors.New("no city from the query found in purchasing power data")

var wordRe = regexp.MustCompile(`[a-zA-Z]+`)

// Load parses the embedded table. Called once at startup.
func Load() (*Table, error) {
	var doc struct {
		Cities []City `json:"cities"`
	}
	if err := json.Unmarshal(citiesJSON, &doc); err != nil {
		return nil, fmt.Errorf("parse purchasing power table: %w", err)
	}
	if len(doc.Cities) == 0 {
		return nil, errors.New("purchasing power table is empty")
	}
	return &Table{cities: doc.Cities}, nil
}

// Match scans the free-text query for city names: every alphabetic word is
// checked as a case-insensitive substring of each city name, and the first
// two distinct matches are returned in table order.
func (t *Table) Match(query string) []City {
	words := wordRe.FindAllString(strings.ToLower(query), -1)

	var matched []City
	for _, c := range t.cities {
		name := strings.ToLower(c.Name)
		for _, w := range words {
			if strings.Contains(name, w) {
				matched = append(matched, c)
				break
			}
		}
		if len(matched) == 2 {
			break
		}
	}
	return matched
}

// Answer resolves a query into report text: a single-city index readout or
// a two-city comparison. Returns ErrNoCity when nothing in the query
// matches the table.
func (t *Table) Answer(query string) (string, error) {
	cities := t.Match(query)
	switch len(cities) {
	case 0:
		return "", ErrNoCity
	case 1:
		c := cities[0]
		return fmt.Sprintf(
			"📍 Purchasing Power Index for **%s**: %g\n"+
				"This means the local purchasing power is approximately %g%% relative to a baseline.\n"+
				"Higher values indicate stronger purchasing power.",
			c.Name, c.Index, c.Index), nil
	default:
		return compare(cities[0], cities[1]), nil
	}
}

func compare(a, b City) string {
	var comparison string
	switch {
	case a.Index == b.Index:
		comparison = "are about the same."
	case a.Index > b.Index:
		comparison = fmt.Sprintf("is stronger by %.1f points.", a.Index-b.Index)
	default:
		comparison = fmt.Sprintf("is weaker by %.1f points.", b.Index-a.Index)
	}
	return fmt.Sprintf(
		"📍 Purchasing Power Index comparison:\n"+
			"- **%s**: %g\n"+
			"- **%s**: %g\n"+
			"On this scale, %s %s\n"+
			"Higher values mean stronger local purchasing power.",
		a.Name, a.Index, b.Name, b.Index, a.Name, comparison)
}
