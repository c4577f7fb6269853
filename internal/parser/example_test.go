package parser_test

import (
	"context"
	"fmt"
	"log"

	"github.com/ludo-technologies/patchsim/internal/parser"
)

func ExampleParser_ParseTree() {
	p, err := parser.New(parser.Python)
	if err != nil {
		log.Fatal(err)
	}

	root, err := p.ParseTree(context.Background(), []byte("def greet(name):\n    return name\n"))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(root.Label, root.Children[0].Label)

	// Output: module function_definition
}
