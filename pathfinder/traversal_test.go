package pathfinder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hannajonsd/vuln-path-analysis/deptree"
	"github.com/hannajonsd/vuln-path-analysis/scanner"
)

func mustTree(t *testing.T, doc string) *deptree.Tree {
	t.Helper()
	tree, err := deptree.Parse([]byte(doc))
	require.NoError(t, err)
	return tree
}

func finding(name string, cvss float64) scanner.Finding {
	return scanner.Finding{
		FileName:        name + ".js",
		Vulnerabilities: []scanner.Vulnerability{{CVSS: cvss}},
	}
}

func TestRunDiscoversVulnerablePath(t *testing.T) {
	tree := mustTree(t, `{
		"dependencies": {
			"A": {"version": "1.0.0", "dependencies": {
				"B": {"version": "2.0.0"}
			}}
		}
	}`)

	inputs := &Inputs{
		WithinProject: map[string]bool{"A": true},
		Findings:      []scanner.Finding{finding("B-2.0.0", 7.0)},
	}

	report := NewEngine(tree, inputs).Run()

	assert.Equal(t, [][]string{{"A", "B"}}, report.Paths)
	assert.Equal(t, map[string]int{"B": 1}, report.VulnerabilityExposure)
	assert.True(t, report.Dependencies["B"].Tags.Has(TagVulnerable))
	assert.True(t, report.Dependencies["A"].Tags.Has(TagWithinProject))
}

func TestRunPrunesDevelopmentSubtrees(t *testing.T) {
	tree := mustTree(t, `{
		"dependencies": {
			"jest": {"version": "29.0.0", "dependencies": {
				"minimist": {"version": "0.0.8"}
			}},
			"express": {"version": "4.18.0"}
		}
	}`)

	inputs := &Inputs{
		DevDependencies: map[string]bool{"jest": true},
		Findings:        []scanner.Finding{finding("minimist-0.0.8", 9.8)},
	}

	report := NewEngine(tree, inputs).Run()

	assert.Empty(t, report.Paths, "dev-only subtree must not be expanded")
	assert.NotContains(t, report.Dependencies, "minimist")
	assert.Contains(t, report.Dependencies, "jest")
	assert.Contains(t, report.Dependencies, "express")
}

func TestRunStopsAtVulnerableNode(t *testing.T) {
	tree := mustTree(t, `{
		"dependencies": {
			"tar": {"version": "2.0.0", "dependencies": {
				"inner": {"version": "1.0.0"}
			}}
		}
	}`)

	inputs := &Inputs{
		Findings: []scanner.Finding{finding("tar-2.0.0", 8.8)},
	}

	report := NewEngine(tree, inputs).Run()

	assert.Equal(t, [][]string{{"tar"}}, report.Paths)
	assert.NotContains(t, report.Dependencies, "inner",
		"traversal terminates at a vulnerability")
}

func TestRunFoundNameBlocksReExpansion(t *testing.T) {
	// B is vulnerable and reachable at depth 2 via A, and again at depth 4
	// via A2 > A3 > A4. Breadth-first order discovers the depth-2
	// occurrence before A4 expands, so A4's B child is never enqueued.
	tree := mustTree(t, `{
		"dependencies": {
			"A": {"version": "1.0.0", "dependencies": {
				"B": {"version": "1.0.0"}
			}},
			"A2": {"version": "1.0.0", "dependencies": {
				"A3": {"version": "1.0.0", "dependencies": {
					"A4": {"version": "1.0.0", "dependencies": {
						"B": {"version": "1.0.0"}
					}}
				}}
			}}
		}
	}`)

	inputs := &Inputs{
		Findings: []scanner.Finding{finding("B-1.0.0", 6.5)},
	}

	report := NewEngine(tree, inputs).Run()

	assert.Equal(t, [][]string{{"A", "B"}}, report.Paths)
	assert.Equal(t, 1, report.VulnerabilityExposure["B"])
}

func TestRunCountsDiscoveryPerQueuedOccurrence(t *testing.T) {
	// Both parents sit at depth 1, so both enqueue their B child before
	// either occurrence is processed. Each queued occurrence is one
	// discovery event.
	tree := mustTree(t, `{
		"dependencies": {
			"X": {"version": "1.0.0", "dependencies": {
				"B": {"version": "1.0.0"}
			}},
			"Y": {"version": "1.0.0", "dependencies": {
				"B": {"version": "1.0.0"}
			}}
		}
	}`)

	inputs := &Inputs{
		Findings: []scanner.Finding{finding("B-1.0.0", 6.5)},
	}

	report := NewEngine(tree, inputs).Run()

	assert.Equal(t, 2, report.VulnerabilityExposure["B"])
	assert.Len(t, report.Paths, 2)
}

func TestRunSkipsEmptyNames(t *testing.T) {
	tree := mustTree(t, `{
		"dependencies": {
			"": {"version": "1.0.0"},
			"ok": {"version": "1.0.0"}
		}
	}`)

	report := NewEngine(tree, &Inputs{}).Run()

	assert.NotContains(t, report.Dependencies, "")
	assert.Contains(t, report.Dependencies, "ok")
}

func TestRunOrdersPathsBySeverity(t *testing.T) {
	tree := mustTree(t, `{
		"dependencies": {
			"a": {"version": "1.0.0", "dependencies": {
				"lodash": {"version": "4.17.15"}
			}},
			"b": {"version": "1.0.0", "dependencies": {
				"minimist": {"version": "0.0.8"}
			}}
		}
	}`)

	inputs := &Inputs{
		Findings: []scanner.Finding{
			finding("lodash-4.17.15", 7.5),
			finding("minimist-0.0.8", 9.8),
		},
	}

	report := NewEngine(tree, inputs).Run()

	require.Len(t, report.Paths, 2)
	assert.Equal(t, "minimist", report.Paths[0][len(report.Paths[0])-1])
	assert.Equal(t, "lodash", report.Paths[1][len(report.Paths[1])-1])
}

func TestRunRevisitedNameRecomputesEqualRecord(t *testing.T) {
	tree := mustTree(t, `{
		"dependencies": {
			"p": {"version": "1.0.0", "dependencies": {
				"shared": {"version": "1.0.0"}
			}},
			"q": {"version": "1.0.0", "dependencies": {
				"shared": {"version": "1.0.0"}
			}}
		}
	}`)

	inputs := &Inputs{
		Lagging:          map[string]bool{"shared": true},
		ReleaseIntervals: map[string]float64{"shared": 14},
	}

	report := NewEngine(tree, inputs).Run()

	rec := report.Dependencies["shared"]
	assert.True(t, rec.Tags.Has(TagLagging))
	assert.Equal(t, float64(14), rec.ReleaseInterval)
}
