package pathfinder

import (
	"encoding/json"

	"github.com/hannajonsd/vuln-path-analysis/scanner"
)

// NoScore marks a dependency with no CVSS match or no release interval data.
const NoScore = -1

// Tag marks how a dependency participates in the audited project. A
// dependency may carry several tags at once.
type Tag uint8

const (
	TagDevelopment Tag = 1 << iota
	TagWithinProject
	TagLagging
	TagVulnerable
)

// Has reports whether all bits of other are set.
func (t Tag) Has(other Tag) bool {
	return t&other == other
}

// Strings returns the tag names in a fixed order for serialization.
func (t Tag) Strings() []string {
	names := []string{}
	if t.Has(TagDevelopment) {
		names = append(names, "development")
	}
	if t.Has(TagWithinProject) {
		names = append(names, "within-project")
	}
	if t.Has(TagLagging) {
		names = append(names, "lagging")
	}
	if t.Has(TagVulnerable) {
		names = append(names, "vulnerable")
	}
	return names
}

// Inputs carries the materialized classification data for one run. All maps
// are read-only for the run's duration; a missing entry always degrades to a
// sentinel, never to an error.
type Inputs struct {
	DevDependencies  map[string]bool
	WithinProject    map[string]bool
	Lagging          map[string]bool
	ReleaseIntervals map[string]float64
	Findings         []scanner.Finding
}

// DependencyRecord is the classification computed for one visited name.
type DependencyRecord struct {
	Tags             Tag
	HighestCvssScore float64
	ReleaseInterval  float64
}

// MarshalJSON serializes the record in the report document shape.
func (r DependencyRecord) MarshalJSON() ([]byte, error) {
	doc := struct {
		DependencyTypes  []string `json:"dependencyTypes"`
		HighestCvssScore float64  `json:"highestCvssScore"`
		Intervals        float64  `json:"intervals"`
	}{
		DependencyTypes:  r.Tags.Strings(),
		HighestCvssScore: r.HighestCvssScore,
		Intervals:        r.ReleaseInterval,
	}
	return json.Marshal(doc)
}

// Report is the full result of one traversal run. Paths are ordered by
// descending worst-case severity once the run completes.
type Report struct {
	Paths                 [][]string                  `json:"paths"`
	Dependencies          map[string]DependencyRecord `json:"dependencies"`
	VulnerabilityExposure map[string]int              `json:"vulnerabilityExposure"`
}
