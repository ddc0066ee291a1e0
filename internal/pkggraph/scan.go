package pkggraph

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

var cssImportPattern = regexp.MustCompile(`@import\s+(?:url\(\s*)?["']([^"']+)["']\s*\)?`)

type requireParser struct {
	js *sitter.Language
}

func newRequireParser() *requireParser {
	return &requireParser{js: javascript.GetLanguage()}
}

// Requires returns the module specifiers a file references, in source order.
func (p *requireParser) Requires(ctx context.Context, relPath string, content []byte) ([]string, error) {
	switch Extension(relPath) {
	case "js":
		return p.scriptRequires(ctx, relPath, content)
	case "css":
		return styleImports(content), nil
	default:
		return nil, nil
	}
}

func (p *requireParser) scriptRequires(ctx context.Context, relPath string, content []byte) ([]string, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(p.js)
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", relPath, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned nil tree for %s", relPath)
	}

	specs := make([]string, 0)
	walkNode(tree.RootNode(), func(node *sitter.Node) {
		switch node.Type() {
		case "call_expression":
			if spec, ok := requireCallSpecifier(node, content); ok {
				specs = append(specs, spec)
			}
		case "import_statement":
			if spec, ok := extractStringLiteral(node.ChildByFieldName("source"), content); ok {
				specs = append(specs, spec)
			}
		}
	})
	return specs, nil
}

func requireCallSpecifier(node *sitter.Node, content []byte) (string, bool) {
	functionNode := node.ChildByFieldName("function")
	if functionNode == nil || functionNode.Type() != "identifier" {
		return "", false
	}
	if nodeText(functionNode, content) != "require" {
		return "", false
	}
	argumentsNode := node.ChildByFieldName("arguments")
	if argumentsNode == nil || argumentsNode.NamedChildCount() == 0 {
		return "", false
	}
	first := argumentsNode.NamedChild(0)
	if first.Type() != "string" {
		return "", false
	}
	return extractStringLiteral(first, content)
}

func styleImports(content []byte) []string {
	matches := cssImportPattern.FindAllSubmatch(content, -1)
	specs := make([]string, 0, len(matches))
	for _, match := range matches {
		spec := strings.TrimSpace(string(match[1]))
		if spec == "" || strings.Contains(spec, "://") {
			continue
		}
		specs = append(specs, spec)
	}
	return specs
}

func walkNode(node *sitter.Node, visit func(*sitter.Node)) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		visit(child)
		walkNode(child, visit)
	}
}

func extractStringLiteral(node *sitter.Node, content []byte) (string, bool) {
	if node == nil {
		return "", false
	}

	text := nodeText(node, content)
	if len(text) >= 2 {
		quote := text[0]
		if (quote == '"' || quote == '\'') && text[len(text)-1] == quote {
			text = text[1 : len(text)-1]
		}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return text, true
}

func nodeText(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	return string(content[node.StartByte():node.EndByte()])
}
