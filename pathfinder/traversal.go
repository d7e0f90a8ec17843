package pathfinder

import (
	"github.com/hannajonsd/vuln-path-analysis/deptree"
)

// Engine discovers every path from the project root to a vulnerable
// dependency, classifying each name it visits along the way.
type Engine struct {
	tree       *deptree.Tree
	classifier *Classifier
	within     map[string]bool
}

// NewEngine creates an engine over one tree and one set of classification
// inputs. The engine owns the report it assembles; nothing else mutates it.
func NewEngine(tree *deptree.Tree, inputs *Inputs) *Engine {
	return &Engine{
		tree:       tree,
		classifier: NewClassifier(inputs),
		within:     inputs.WithinProject,
	}
}

// Run traverses the tree breadth-first and assembles the report.
//
// The queue holds name-paths and is seeded with the root's direct children
// only; child paths are appended as their parents are expanded. Expansion
// stops at vulnerable nodes (the path is recorded instead) and at
// development-only nodes (dev tooling does not ship in the deployed
// artifact). A name discovered vulnerable once is never enqueued again, so a
// finite tree always drains the queue.
func (e *Engine) Run() *Report {
	report := &Report{
		Paths:                 [][]string{},
		Dependencies:          make(map[string]DependencyRecord),
		VulnerabilityExposure: make(map[string]int),
	}
	found := make(map[string]bool)

	var queue [][]string
	for name := range e.tree.Root().Dependencies {
		queue = append(queue, []string{name})
	}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		name := path[len(path)-1]
		if name == "" {
			continue
		}

		// Name-keyed, so revisiting through another path recomputes an
		// equal record and the overwrite is safe.
		rec := e.classifier.Classify(name)
		report.Dependencies[name] = rec

		switch {
		case rec.Tags.Has(TagVulnerable):
			report.VulnerabilityExposure[name]++
			report.Paths = append(report.Paths, Simplify(path, e.within))
			found[name] = true

		case !rec.Tags.Has(TagDevelopment):
			node := e.tree.Resolve(path)
			if node == nil {
				continue
			}
			for child := range node.Dependencies {
				if found[child] {
					continue
				}
				next := make([]string, len(path)+1)
				copy(next, path)
				next[len(path)] = child
				queue = append(queue, next)
			}
		}
	}

	sortBySeverity(report)
	return report
}
