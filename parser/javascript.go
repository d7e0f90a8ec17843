package parser

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// Import is one module reference extracted from a JavaScript source file.
type Import struct {
	Module string // raw module string: "lodash", "@scope/pkg", "./lib/util"
	Kind   string // "import" or "require"
}

// JavaScript extracts module references from JavaScript sources using the
// tree-sitter grammar.
type JavaScript struct {
	parser *sitter.Parser
}

// NewJavaScript creates a parser for .js/.jsx/.mjs/.cjs sources.
func NewJavaScript() *JavaScript {
	p := sitter.NewParser()
	p.SetLanguage(javascript.GetLanguage())
	return &JavaScript{parser: p}
}

// ExtractImports parses a file and returns every static import statement and
// require call it contains, deduplicated in source order.
func (p *JavaScript) ExtractImports(filePath string) ([]Import, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filePath, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("failed to parse file %s", filePath)
	}
	defer tree.Close()

	var imports []Import
	walk(tree.RootNode(), func(n *sitter.Node) {
		switch n.Type() {
		case "import_statement":
			if module := importSource(n, source); module != "" {
				imports = append(imports, Import{Module: module, Kind: "import"})
			}
		case "call_expression":
			if module := requireArgument(n, source); module != "" {
				imports = append(imports, Import{Module: module, Kind: "require"})
			}
		}
	})

	return dedupe(imports), nil
}

// walk applies a visitor to every node of the syntax tree.
func walk(node *sitter.Node, visitor func(*sitter.Node)) {
	visitor(node)

	for i := 0; i < int(node.ChildCount()); i++ {
		walk(node.Child(i), visitor)
	}
}

// importSource pulls the module string out of an import statement.
func importSource(node *sitter.Node, source []byte) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "string" {
			return stringValue(child, source)
		}
	}
	return ""
}

// requireArgument returns the argument of a require("...") call, or "" for
// any other call expression.
func requireArgument(node *sitter.Node, source []byte) string {
	fn := node.Child(0)
	if fn == nil || fn.Type() != "identifier" || text(fn, source) != "require" {
		return ""
	}

	args := node.ChildByFieldName("arguments")
	if args == nil {
		return ""
	}

	for i := 0; i < int(args.ChildCount()); i++ {
		child := args.Child(i)
		if child.Type() == "string" {
			return stringValue(child, source)
		}
	}
	return ""
}

func text(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// stringValue strips the surrounding quotes from a string literal node.
func stringValue(node *sitter.Node, source []byte) string {
	s := text(node, source)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'' || s[0] == '`') {
		s = s[1 : len(s)-1]
	}
	return s
}

func dedupe(imports []Import) []Import {
	seen := make(map[Import]bool)
	var result []Import

	for _, imp := range imports {
		if !seen[imp] {
			seen[imp] = true
			result = append(result, imp)
		}
	}

	return result
}
