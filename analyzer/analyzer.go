package analyzer

import (
	"fmt"

	"github.com/hannajonsd/vuln-path-analysis/deptree"
	"github.com/hannajonsd/vuln-path-analysis/manifest"
	"github.com/hannajonsd/vuln-path-analysis/pathfinder"
	"github.com/hannajonsd/vuln-path-analysis/registry"
	"github.com/hannajonsd/vuln-path-analysis/scanner"
	"github.com/hannajonsd/vuln-path-analysis/usage"
)

// ProjectAnalyzer wires the collaborators that materialize the engine's
// inputs and runs the path discovery over them.
type ProjectAnalyzer struct {
	treeCollector *deptree.Collector
	registry      *registry.Client
	scanner       *scanner.Scanner
	usageScanner  *usage.Scanner
}

// New creates an analyzer with the default collaborators.
func New() *ProjectAnalyzer {
	return &ProjectAnalyzer{
		treeCollector: deptree.NewCollector(),
		registry:      registry.NewClient(),
		scanner:       scanner.NewScanner(),
		usageScanner:  usage.NewScanner(),
	}
}

// Documents points at pre-computed input documents on disk, one per
// collaborator.
type Documents struct {
	Tree          string
	DevSet        string
	WithinProject string
	Lag           string
	Findings      string
}

// AnalyzeProject collects every input from a project directory and runs the
// engine over them.
func (pa *ProjectAnalyzer) AnalyzeProject(projectDir string, verbose bool) (*pathfinder.Report, error) {
	fmt.Printf("Analyzing project: %s\n", projectDir)

	tree, err := pa.treeCollector.Collect(projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to collect dependency tree: %w", err)
	}
	if verbose {
		fmt.Printf("Dependency tree: %d nodes\n", tree.Count())
	}

	projectManifest, err := manifest.Load(projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load project manifest: %w", err)
	}

	installed := make(map[string]string)
	for name, node := range tree.Root().Dependencies {
		if node != nil {
			installed[name] = node.Version
		}
	}

	if verbose {
		fmt.Printf("Checking release cadence for %d direct dependencies...\n", len(installed))
	}
	lag := pa.registry.BuildLagReport(installed)

	findings, err := pa.scanner.Scan(projectDir)
	if err != nil {
		return nil, fmt.Errorf("vulnerability scan failed: %w", err)
	}
	if verbose {
		fmt.Printf("Scanner reported %d findings\n", len(findings))
	}

	inputs := &pathfinder.Inputs{
		DevDependencies:  projectManifest.DevSet(),
		WithinProject:    projectManifest.WithinProjectSet(projectDir),
		Lagging:          lag.LaggingSet(),
		ReleaseIntervals: lag.ReleaseInterval,
		Findings:         findings,
	}

	return pathfinder.NewEngine(tree, inputs).Run(), nil
}

// AnalyzeDocuments runs the engine over pre-computed input documents
// instead of collecting them from a live project.
func (pa *ProjectAnalyzer) AnalyzeDocuments(docs Documents) (*pathfinder.Report, error) {
	tree, err := deptree.Load(docs.Tree)
	if err != nil {
		return nil, err
	}

	devSet, err := manifest.LoadDevSet(docs.DevSet)
	if err != nil {
		return nil, err
	}

	withinProject, err := manifest.LoadWithinProjectSet(docs.WithinProject)
	if err != nil {
		return nil, err
	}

	lag, err := registry.LoadLagReport(docs.Lag)
	if err != nil {
		return nil, err
	}

	findings, err := scanner.LoadFindings(docs.Findings)
	if err != nil {
		return nil, err
	}

	inputs := &pathfinder.Inputs{
		DevDependencies:  devSet,
		WithinProject:    withinProject,
		Lagging:          lag.LaggingSet(),
		ReleaseIntervals: lag.ReleaseInterval,
		Findings:         findings,
	}

	return pathfinder.NewEngine(tree, inputs).Run(), nil
}

// UsageEvidence scans the project's own sources and reports which entry
// dependencies of the discovered paths are imported directly by project
// code.
func (pa *ProjectAnalyzer) UsageEvidence(projectDir string, report *pathfinder.Report) ([]usage.Evidence, error) {
	usages, err := pa.usageScanner.Scan(projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan project sources: %w", err)
	}

	var entries []string
	for _, path := range report.Paths {
		if len(path) > 0 {
			entries = append(entries, path[0])
		}
	}

	return usage.Imported(usages, entries), nil
}
