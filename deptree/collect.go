package deptree

import (
	"fmt"
	"os/exec"
)

// Collector materializes the dependency tree by invoking the package manager
// in a project directory.
type Collector struct {
	Command string
	Args    []string
}

// NewCollector creates a collector that runs npm against the installed tree.
func NewCollector() *Collector {
	return &Collector{
		Command: "npm",
		Args:    []string{"ls", "--json", "--all"},
	}
}

// Collect runs the package manager and parses its tree output.
// npm ls exits non-zero for unmet peer dependencies while still printing a
// usable tree, so the output is preferred over the exit status.
func (c *Collector) Collect(projectDir string) (*Tree, error) {
	cmd := exec.Command(c.Command, c.Args...)
	cmd.Dir = projectDir

	out, err := cmd.Output()
	if len(out) == 0 {
		if err != nil {
			return nil, fmt.Errorf("%s failed: %w", c.Command, err)
		}
		return nil, fmt.Errorf("%s produced no dependency tree", c.Command)
	}

	return Parse(out)
}
