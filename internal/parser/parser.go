package parser

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ludo-technologies/patchsim/internal/tree"
)

// ErrSyntax is returned when the source contains syntax errors
var ErrSyntax = errors.New("syntax errors found in source code")

// snippet wrappers tried in order for Java fragments that do not parse as a
// compilation unit: class members first, then statements
var javaWrappers = []struct{ prefix, suffix string }{
	{"class PatchSnippet {\n", "\n}"},
	{"class PatchSnippet {\nvoid snippet() {\n", "\n}\n}"},
}

// Parser parses source code of one language using tree-sitter.
// A Parser is not safe for concurrent use.
type Parser struct {
	parser       *sitter.Parser
	language     Language
	wrapSnippets bool
}

// Option configures a Parser
type Option func(*Parser)

// WithSnippetWrapping retries Java fragments that fail to parse inside a
// synthetic class, and then inside a synthetic method body
func WithSnippetWrapping(enabled bool) Option {
	return func(p *Parser) {
		p.wrapSnippets = enabled
	}
}

// New creates a parser for the given language
func New(language Language, opts ...Option) (*Parser, error) {
	grammar, err := language.grammar()
	if err != nil {
		return nil, err
	}
	parser := sitter.NewParser()
	parser.SetLanguage(grammar)

	p := &Parser{parser: parser, language: language}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Language returns the language the parser was created for
func (p *Parser) Language() Language {
	return p.language
}

// ParseResult represents the result of parsing source code
type ParseResult struct {
	Tree       *sitter.Tree
	RootNode   *sitter.Node
	SourceCode []byte
	// Wrapped is set when the source only parsed inside a synthetic wrapper;
	// SourceCode then holds the wrapped text
	Wrapped bool
}

// Parse parses source code and returns the syntax tree
func (p *Parser) Parse(ctx context.Context, source []byte) (*ParseResult, error) {
	result, err := p.parse(ctx, source)
	if err == nil || !errors.Is(err, ErrSyntax) || !p.wrapSnippets || p.language != Java {
		return result, err
	}

	for _, w := range javaWrappers {
		wrapped := make([]byte, 0, len(w.prefix)+len(source)+len(w.suffix))
		wrapped = append(wrapped, w.prefix...)
		wrapped = append(wrapped, source...)
		wrapped = append(wrapped, w.suffix...)

		if result, wrapErr := p.parse(ctx, wrapped); wrapErr == nil {
			result.Wrapped = true
			return result, nil
		}
	}
	return nil, err
}

func (p *Parser) parse(ctx context.Context, source []byte) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		return nil, p.syntaxError(rootNode)
	}

	return &ParseResult{
		Tree:       tree,
		RootNode:   rootNode,
		SourceCode: source,
	}, nil
}

// ParseTree parses source code into a labeled tree of its named nodes
func (p *Parser) ParseTree(ctx context.Context, source []byte) (*tree.Node, error) {
	result, err := p.Parse(ctx, source)
	if err != nil {
		return nil, err
	}
	return ToLabeledTree(result.RootNode), nil
}

// ToLabeledTree converts a tree-sitter node into a labeled tree. Only named
// nodes are kept; anonymous tokens such as punctuation and keywords are
// dropped, and each node is labeled with its grammar type.
func ToLabeledTree(root *sitter.Node) *tree.Node {
	if root == nil {
		return nil
	}

	type pending struct {
		src *sitter.Node
		dst *tree.Node
	}
	out := tree.NewNode(root.Type())
	stack := []pending{{root, out}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		count := int(top.src.NamedChildCount())
		for i := 0; i < count; i++ {
			child := top.src.NamedChild(i)
			if child == nil {
				continue
			}
			node := tree.NewNode(child.Type())
			top.dst.AddChild(node)
			stack = append(stack, pending{child, node})
		}
	}
	return out
}

// WalkTree traverses the syntax tree depth-first and calls the visitor
// function for each node
func (p *Parser) WalkTree(node *sitter.Node, visitor func(*sitter.Node) error) error {
	if err := visitor(node); err != nil {
		return err
	}

	childCount := int(node.ChildCount())
	for i := 0; i < childCount; i++ {
		child := node.Child(i)
		if err := p.WalkTree(child, visitor); err != nil {
			return err
		}
	}

	return nil
}

// syntaxError wraps ErrSyntax with the position of the first error or
// missing node in document order
func (p *Parser) syntaxError(root *sitter.Node) error {
	errFound := errors.New("found")
	var first *sitter.Node
	_ = p.WalkTree(root, func(n *sitter.Node) error {
		if n.IsError() || n.IsMissing() {
			first = n
			return errFound
		}
		return nil
	})
	if first == nil {
		return ErrSyntax
	}
	pos := first.StartPoint()
	return fmt.Errorf("%w at line %d, column %d", ErrSyntax, pos.Row+1, pos.Column+1)
}
