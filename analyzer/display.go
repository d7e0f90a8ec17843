package analyzer

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/hannajonsd/vuln-path-analysis/pathfinder"
	"github.com/hannajonsd/vuln-path-analysis/usage"
)

// DisplayReport shows the ranked paths and the per-dependency summary.
func DisplayReport(report *pathfinder.Report) {
	if len(report.Paths) == 0 {
		color.Green("✅ No vulnerable dependency paths found!")
		fmt.Printf("   Classified %d dependencies\n", len(report.Dependencies))
		return
	}

	fmt.Printf("\nFound %d vulnerable dependency paths:\n\n", len(report.Paths))

	for _, path := range report.Paths {
		terminal := path[len(path)-1]
		score := pathfinder.PathScore(path, report.Dependencies)

		fmt.Printf("  ❌ %s (CVSS %.1f, %s)\n",
			strings.Join(path, " > "), score, severityLabel(score))

		if count := report.VulnerabilityExposure[terminal]; count > 1 {
			fmt.Printf("     %s reached through %d distinct paths\n", terminal, count)
		}
	}

	fmt.Println()
	fmt.Println(strings.Repeat("-", 60))
	fmt.Println("SUMMARY")

	devCount := 0
	withinCount := 0
	laggingCount := 0
	vulnerableCount := 0
	for _, rec := range report.Dependencies {
		if rec.Tags.Has(pathfinder.TagDevelopment) {
			devCount++
		}
		if rec.Tags.Has(pathfinder.TagWithinProject) {
			withinCount++
		}
		if rec.Tags.Has(pathfinder.TagLagging) {
			laggingCount++
		}
		if rec.Tags.Has(pathfinder.TagVulnerable) {
			vulnerableCount++
		}
	}

	fmt.Printf("Dependencies classified: %d\n", len(report.Dependencies))
	fmt.Printf("  - Development-only: %d\n", devCount)
	fmt.Printf("  - Within-project: %d\n", withinCount)
	fmt.Printf("  - Lagging behind registry cadence: %d\n", laggingCount)
	fmt.Printf("  - Vulnerable: %d\n", vulnerableCount)
	fmt.Printf("Vulnerable paths discovered: %d\n", len(report.Paths))
}

// DisplayUsage shows which discovered paths start at a dependency the
// project's own code imports directly.
func DisplayUsage(evidence []usage.Evidence) {
	if len(evidence) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Imported directly by project code:")
	for _, ev := range evidence {
		fmt.Printf("  - %s (used in %d files)\n", ev.Package, len(ev.Files))
		for _, file := range ev.Files {
			fmt.Printf("     %s\n", file)
		}
	}
}

// severityLabel maps a CVSS score to its colored severity band.
func severityLabel(score float64) string {
	switch {
	case score >= 9.0:
		return color.New(color.FgRed, color.Bold).Sprint("critical")
	case score >= 7.0:
		return color.RedString("high")
	case score >= 4.0:
		return color.YellowString("medium")
	default:
		return color.GreenString("low")
	}
}
