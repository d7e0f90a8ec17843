package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PackageJSON is the subset of the project manifest this system reads.
type PackageJSON struct {
	Name            string            `json:"name"`
	Workspaces      []string          `json:"workspaces"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Load reads the package.json at the root of a project directory.
func Load(projectDir string) (*PackageJSON, error) {
	data, err := os.ReadFile(filepath.Join(projectDir, "package.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	var manifest PackageJSON
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to decode package.json: %w", err)
	}
	return &manifest, nil
}

// DevSet returns the names declared under devDependencies.
func (m *PackageJSON) DevSet() map[string]bool {
	set := make(map[string]bool)
	for name := range m.DevDependencies {
		set[name] = true
	}
	return set
}

// WithinProjectSet returns the dependencies resolved to local packages:
// file:, link: and portal: specifiers plus workspace member names.
func (m *PackageJSON) WithinProjectSet(projectDir string) map[string]bool {
	set := make(map[string]bool)

	for name, spec := range m.Dependencies {
		if isLocalSpecifier(spec) {
			set[name] = true
		}
	}
	for name, spec := range m.DevDependencies {
		if isLocalSpecifier(spec) {
			set[name] = true
		}
	}

	for _, pattern := range m.Workspaces {
		matches, err := filepath.Glob(filepath.Join(projectDir, pattern, "package.json"))
		if err != nil {
			continue
		}
		for _, match := range matches {
			if name := workspaceMemberName(match); name != "" {
				set[name] = true
			}
		}
	}

	return set
}

// isLocalSpecifier reports whether a version specifier points at a sibling
// package instead of a registry release.
func isLocalSpecifier(spec string) bool {
	return strings.HasPrefix(spec, "file:") ||
		strings.HasPrefix(spec, "link:") ||
		strings.HasPrefix(spec, "portal:")
}

// workspaceMemberName reads the package name out of a workspace member's
// manifest; unreadable members are skipped.
func workspaceMemberName(manifestPath string) string {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return ""
	}

	var member struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &member); err != nil {
		return ""
	}
	return member.Name
}

// LoadDevSet loads the pre-computed development-only document: an object
// whose keys are package names, values ignored.
func LoadDevSet(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read development-only document: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode development-only document: %w", err)
	}

	set := make(map[string]bool)
	for name := range doc {
		set[name] = true
	}
	return set, nil
}

// LoadWithinProjectSet loads the pre-computed within-project document: an
// array of package names.
func LoadWithinProjectSet(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read within-project document: %w", err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("failed to decode within-project document: %w", err)
	}

	set := make(map[string]bool)
	for _, name := range names {
		set[name] = true
	}
	return set, nil
}
