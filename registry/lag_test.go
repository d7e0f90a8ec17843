package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestSmoothedInterval(t *testing.T) {
	tests := []struct {
		name     string
		times    map[string]time.Time
		expected float64
	}{
		{
			name:     "no releases",
			times:    map[string]time.Time{},
			expected: -1,
		},
		{
			name:     "single release",
			times:    map[string]time.Time{"1.0.0": day(0)},
			expected: -1,
		},
		{
			name: "two releases use the single gap",
			times: map[string]time.Time{
				"1.0.0": day(0),
				"1.1.0": day(10),
			},
			expected: 10,
		},
		{
			name: "steady cadence stays at the gap",
			times: map[string]time.Time{
				"1.0.0": day(0),
				"1.1.0": day(10),
				"1.2.0": day(20),
			},
			expected: 10,
		},
		{
			name: "recent slowdown is smoothed in",
			times: map[string]time.Time{
				"1.0.0": day(0),
				"1.1.0": day(10),
				"2.0.0": day(30),
			},
			expected: 0.7*10 + 0.3*20,
		},
		{
			name: "prereleases and junk versions are ignored",
			times: map[string]time.Time{
				"1.0.0":        day(0),
				"1.1.0-beta.1": day(3),
				"not-a-semver": day(5),
				"1.1.0":        day(10),
			},
			expected: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SmoothedInterval(tt.times), 1e-9)
		})
	}
}

func TestIsLagging(t *testing.T) {
	times := map[string]time.Time{
		"1.0.0": day(0),
		"1.1.0": day(10),
		"2.0.0": day(30),
	}
	interval := SmoothedInterval(times) // 13 days

	assert.True(t, IsLagging(times, "1.0.0", interval),
		"30 days behind exceeds twice the 13-day interval")
	assert.False(t, IsLagging(times, "2.0.0", interval))
	assert.False(t, IsLagging(times, "9.9.9", interval), "unknown installed version")
	assert.False(t, IsLagging(times, "1.0.0", -1), "no interval data")
}

func TestLagReportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lag.json")
	doc := `{
		"laggingDependencies": {"lodash": "4.17.15"},
		"releaseInterval": {"lodash": 21.5, "express": 14}
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	report, err := LoadLagReport(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{"lodash": true}, report.LaggingSet())
	assert.Equal(t, 21.5, report.ReleaseInterval["lodash"])
	assert.Equal(t, float64(14), report.ReleaseInterval["express"])
}

func TestLoadLagReportMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lag.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"laggingDependencies": 3}`), 0o644))

	_, err := LoadLagReport(path)
	assert.Error(t, err)
}
