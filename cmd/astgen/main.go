package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pinebranch/lox/internal/astgen"
)

func main() {
	args := os.Args[1:]

	if err := astgen.Generate(args); err != nil {
		if errors.Is(err, astgen.ErrInvalidArgumentList) {
			fmt.Println("Usage: astgen <output dir>")
			os.Exit(64)
		}

		fmt.Println("error generating AST:", err.Error())
		os.Exit(1)
	}
}
