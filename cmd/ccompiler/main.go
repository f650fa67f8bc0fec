package main

import (
	"fmt"
	"log"
	"os"

	"myjsc/pkg/compiler"
	"myjsc/pkg/utils"
)

const testSource = `let int x = 10;
function int twice(int n) {
	return n + n;
}
write twice(x);
`

func main() {
	src := testSource
	if len(os.Args) > 1 {
		path, _, err := utils.GetPathInfo(os.Args[1])
		if err != nil {
			log.Fatalf("resolve %s: %v", os.Args[1], err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("read error: %v", err)
		}
		src = string(data)
	}

	fmt.Printf("Source:\n%s\n", src)

	res := compiler.Compile(src, compiler.Options{})

	fmt.Printf("Tokens (%d)\n", len(res.Tokens))
	for _, tok := range res.Tokens {
		fmt.Printf("  %-22s %d:%d  %q\n", tok, tok.Line, tok.Column, tok.Lexeme)
	}
	fmt.Println()

	fmt.Println("Symbol Table")
	fmt.Print(res.Symbols)
	fmt.Println()

	fmt.Println("Rules")
	fmt.Print(compiler.FormatRules(res))
	fmt.Println()

	fmt.Println("Errors")
	fmt.Print(compiler.FormatErrors(res.Errors))
}
