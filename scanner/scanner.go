package scanner

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
)

// LoadFindings reads a findings document produced by the file scanner.
func LoadFindings(path string) ([]Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read findings: %w", err)
	}
	return ParseFindings(data)
}

// ParseFindings decodes a findings document.
func ParseFindings(data []byte) ([]Finding, error) {
	var findings []Finding
	if err := json.Unmarshal(data, &findings); err != nil {
		return nil, fmt.Errorf("failed to decode findings: %w", err)
	}
	return findings, nil
}

// Scanner shells out to a retire-style file scanner that emits the findings
// document on stdout.
type Scanner struct {
	Command string
	Args    []string
}

// NewScanner creates a scanner wrapper with the default command.
func NewScanner() *Scanner {
	return &Scanner{
		Command: "retire",
		Args:    []string{"--outputformat", "json", "--outputpath", "/dev/stdout"},
	}
}

// Scan runs the scanner in a project directory and parses its output.
// Scanners conventionally exit non-zero when they find vulnerabilities, so
// parseable output is preferred over the exit status.
func (s *Scanner) Scan(projectDir string) ([]Finding, error) {
	cmd := exec.Command(s.Command, s.Args...)
	cmd.Dir = projectDir

	out, err := cmd.Output()
	if len(out) == 0 {
		if err != nil {
			return nil, fmt.Errorf("%s failed: %w", s.Command, err)
		}
		return nil, nil
	}

	return ParseFindings(out)
}
