package pathfinder

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// PathScore returns the worst CVSS score among the path's recorded names.
// Names without records contribute nothing; the floor is 0, so sentinel
// scores never rank a path below an unscored one.
func PathScore(path []string, deps map[string]DependencyRecord) float64 {
	score := 0.0
	for _, name := range path {
		if rec, ok := deps[name]; ok && rec.HighestCvssScore > score {
			score = rec.HighestCvssScore
		}
	}
	return score
}

// sortBySeverity orders the report's paths by descending worst-case
// severity. The sort is stable: ties keep their discovery order.
func sortBySeverity(report *Report) {
	sort.SliceStable(report.Paths, func(i, j int) bool {
		return PathScore(report.Paths[i], report.Dependencies) >
			PathScore(report.Paths[j], report.Dependencies)
	})
}

// Encode writes the report document.
func (r *Report) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
