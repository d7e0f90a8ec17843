package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/Masterminds/semver"
)

// smoothingFactor weights the most recent release gap when averaging.
const smoothingFactor = 0.3

// LagReport mirrors the lag document consumed by the engine: which installed
// dependencies trail the registry's release cadence, and each package's
// smoothed release interval in days.
type LagReport struct {
	LaggingDependencies map[string]string  `json:"laggingDependencies"`
	ReleaseInterval     map[string]float64 `json:"releaseInterval"`
}

// LoadLagReport reads a pre-computed lag document.
func LoadLagReport(path string) (*LagReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lag document: %w", err)
	}

	var report LagReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode lag document: %w", err)
	}
	return &report, nil
}

// LaggingSet returns the names flagged as lagging.
func (r *LagReport) LaggingSet() map[string]bool {
	set := make(map[string]bool)
	for name := range r.LaggingDependencies {
		set[name] = true
	}
	return set
}

// stableReleases orders a package's stable releases by publish time,
// dropping prereleases and versions the registry recorded with unparseable
// version strings.
func stableReleases(times map[string]time.Time) []time.Time {
	var releases []time.Time
	for raw, at := range times {
		v, err := semver.NewVersion(raw)
		if err != nil || v.Prerelease() != "" {
			continue
		}
		releases = append(releases, at)
	}

	sort.Slice(releases, func(i, j int) bool {
		return releases[i].Before(releases[j])
	})
	return releases
}

// SmoothedInterval computes an exponentially smoothed average gap in days
// between consecutive stable releases. Returns -1 when fewer than two stable
// releases exist.
func SmoothedInterval(times map[string]time.Time) float64 {
	releases := stableReleases(times)
	if len(releases) < 2 {
		return -1
	}

	interval := releases[1].Sub(releases[0]).Hours() / 24
	for i := 2; i < len(releases); i++ {
		gap := releases[i].Sub(releases[i-1]).Hours() / 24
		interval = smoothingFactor*gap + (1-smoothingFactor)*interval
	}
	return interval
}

// IsLagging reports whether the installed version's publish date trails the
// newest stable release by more than twice the smoothed expected interval.
// Unknown installed versions and packages without interval data are never
// lagging.
func IsLagging(times map[string]time.Time, installed string, interval float64) bool {
	if interval < 0 {
		return false
	}

	installedAt, ok := times[installed]
	if !ok {
		return false
	}

	releases := stableReleases(times)
	if len(releases) == 0 {
		return false
	}
	newest := releases[len(releases)-1]

	return newest.Sub(installedAt).Hours()/24 > 2*interval
}

// BuildLagReport computes the lag document for the installed dependency
// versions. Registry failures for individual packages degrade to missing
// entries; the engine resolves those with sentinels.
func (c *Client) BuildLagReport(installed map[string]string) *LagReport {
	report := &LagReport{
		LaggingDependencies: make(map[string]string),
		ReleaseInterval:     make(map[string]float64),
	}

	for name, version := range installed {
		times, err := c.ReleaseTimes(name)
		if err != nil {
			continue
		}

		interval := SmoothedInterval(times)
		if interval < 0 {
			continue
		}
		report.ReleaseInterval[name] = interval

		if IsLagging(times, version, interval) {
			report.LaggingDependencies[name] = version
		}
	}

	return report
}
