package usage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hannajonsd/vuln-path-analysis/parser"
)

// Evidence records where project source imports an audited dependency
// directly.
type Evidence struct {
	Package string
	Files   []string
}

// Scanner finds direct imports of external packages in a project's own
// JavaScript sources.
type Scanner struct {
	js *parser.JavaScript
}

// NewScanner creates a usage scanner.
func NewScanner() *Scanner {
	return &Scanner{js: parser.NewJavaScript()}
}

// Scan maps each imported external package name to the project files that
// import it. Files that fail to parse are skipped.
func (s *Scanner) Scan(projectDir string) (map[string][]string, error) {
	files, err := findSourceFiles(projectDir)
	if err != nil {
		return nil, err
	}

	usages := make(map[string][]string)
	for _, file := range files {
		imports, err := s.js.ExtractImports(file)
		if err != nil {
			continue
		}

		seen := make(map[string]bool)
		for _, imp := range imports {
			name := packageName(imp.Module)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			usages[name] = append(usages[name], file)
		}
	}

	return usages, nil
}

// Imported filters a scan result down to the packages of interest,
// preserving the given name order.
func Imported(usages map[string][]string, names []string) []Evidence {
	var evidence []Evidence
	seen := make(map[string]bool)

	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		if files, ok := usages[name]; ok {
			evidence = append(evidence, Evidence{Package: name, Files: files})
		}
	}

	return evidence
}

// packageName normalizes a module string to an npm package name. Relative
// and absolute specifiers are project-internal and dropped; scoped packages
// keep their scope, everything else keeps only the first path segment.
func packageName(module string) string {
	if strings.HasPrefix(module, ".") || strings.HasPrefix(module, "/") {
		return ""
	}

	if strings.HasPrefix(module, "@") {
		parts := strings.SplitN(module, "/", 3)
		if len(parts) >= 2 {
			return parts[0] + "/" + parts[1]
		}
		return module
	}

	return strings.SplitN(module, "/", 2)[0]
}

// findSourceFiles collects the project's JavaScript sources, skipping
// installed and generated directories.
func findSourceFiles(projectDir string) ([]string, error) {
	ignore := loadIgnoreList(projectDir)
	var sourceFiles []string

	err := filepath.Walk(projectDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, relErr := filepath.Rel(projectDir, path)
		if relErr == nil && relPath != "." && ignore.Match(relPath) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() && path != projectDir && (strings.HasPrefix(info.Name(), ".") ||
			info.Name() == "node_modules" ||
			info.Name() == "build" ||
			info.Name() == "dist" ||
			info.Name() == "coverage") {
			return filepath.SkipDir
		}

		if !info.IsDir() {
			switch filepath.Ext(path) {
			case ".js", ".jsx", ".mjs", ".cjs":
				sourceFiles = append(sourceFiles, path)
			}
		}

		return nil
	})

	return sourceFiles, err
}
