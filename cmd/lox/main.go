package main

import (
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/pinebranch/lox"
)

func main() {
	stdio := mainer.CurrentStdio()

	cfg, err := lox.LoadConfig()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid configuration: %s\n", err)
		os.Exit(int(lox.ExitUsage))
	}

	rt := lox.NewRuntime(cfg, stdio)
	os.Exit(int(rt.Main(os.Args[1:], stdio)))
}
