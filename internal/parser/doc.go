// Package parser turns Java and Python source code into labeled trees using
// tree-sitter.
//
// Only named grammar nodes become tree nodes, each labeled with its grammar
// type (for example "method_declaration" or "identifier"). Labels lists the
// label enumeration of a grammar, which is what a label code table is built
// from.
//
// Basic usage:
//
//	p, err := parser.New(parser.Java, parser.WithSnippetWrapping(true))
//	if err != nil {
//	    // Handle unsupported language
//	}
//	root, err := p.ParseTree(ctx, []byte("return a + b;"))
//	if err != nil {
//	    // Handle syntax errors
//	}
package parser
