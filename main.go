package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hannajonsd/vuln-path-analysis/analyzer"
	"github.com/hannajonsd/vuln-path-analysis/pathfinder"
)

func main() {
	var (
		projectPath = flag.String("path", ".", "Path to project to analyze")
		treeFile    = flag.String("tree", "", "Pre-computed dependency tree document (skips collection)")
		devFile     = flag.String("dev", "", "Pre-computed development-only set document")
		withinFile  = flag.String("within", "", "Pre-computed within-project set document")
		lagFile     = flag.String("lag", "", "Pre-computed lag document")
		findingsLoc = flag.String("findings", "", "Pre-computed vulnerability findings document")
		output      = flag.String("output", "", "Write the report JSON to a file instead of stdout")
		verbose     = flag.Bool("verbose", false, "Enable verbose output")
	)
	flag.Parse()

	fmt.Println("=== Dependency Vulnerability Path Analysis ===")

	pa := analyzer.New()

	var (
		report *pathfinder.Report
		err    error
	)
	fromDocuments := *treeFile != ""
	if fromDocuments {
		report, err = pa.AnalyzeDocuments(analyzer.Documents{
			Tree:          *treeFile,
			DevSet:        *devFile,
			WithinProject: *withinFile,
			Lag:           *lagFile,
			Findings:      *findingsLoc,
		})
	} else {
		report, err = pa.AnalyzeProject(*projectPath, *verbose)
	}
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	analyzer.DisplayReport(report)

	if !fromDocuments && len(report.Paths) > 0 {
		evidence, err := pa.UsageEvidence(*projectPath, report)
		if err != nil {
			log.Printf("Usage scan skipped: %v", err)
		} else {
			analyzer.DisplayUsage(evidence)
		}
	}

	if err := writeReport(report, *output); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	if len(report.Paths) > 0 {
		os.Exit(1)
	}
	os.Exit(0)
}

// writeReport writes the report document to a file, or to stdout when no
// output path is set.
func writeReport(report *pathfinder.Report, output string) error {
	if output == "" {
		fmt.Println()
		return report.Encode(os.Stdout)
	}

	file, err := os.Create(output)
	if err != nil {
		return err
	}
	defer file.Close()

	return report.Encode(file)
}
