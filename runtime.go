package lox

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

// Runtime wires together the scanner, parser, resolver and interpreter
// behind the two entry points Lox exposes: running a script file and
// running an interactive REPL. Exit codes follow the conventions a Lox
// implementation commonly reports to its shell: 0 success, 64 CLI misuse,
// 65 a syntax error was reported, 70 an unhandled runtime error occurred.
const (
	ExitSuccess     mainer.ExitCode = 0
	ExitUsage       mainer.ExitCode = 64
	ExitSyntaxError mainer.ExitCode = 65
	ExitRuntimeErr  mainer.ExitCode = 70
)

type Runtime struct {
	Config *Config

	reporter    *Reporter
	interpreter *Interpreter
}

func NewRuntime(cfg *Config, stdio mainer.Stdio) *Runtime {
	reporter := &Reporter{Stdout: stdio.Stdout, Stderr: stdio.Stderr}
	return &Runtime{
		Config:      cfg,
		reporter:    reporter,
		interpreter: NewInterpreter(reporter),
	}
}

// Main is the top-level CLI entry point: `lox [script]`. With no arguments
// it starts a REPL; with one it runs that file; with more it's a usage
// error.
func (rt *Runtime) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	switch len(args) {
	case 0:
		rt.runPrompt(stdio)
		return ExitSuccess
	case 1:
		return rt.runFile(args[0])
	default:
		fmt.Fprintln(stdio.Stderr, "Usage: lox [script]")
		return ExitUsage
	}
}

func (rt *Runtime) runFile(path string) mainer.ExitCode {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(rt.reporter.Stderr, "error reading file: %s\n", err)
		return ExitUsage
	}

	rt.run(string(data))

	if rt.reporter.HadError {
		return ExitSyntaxError
	}
	if rt.reporter.HadRuntimeError {
		return ExitRuntimeErr
	}

	return ExitSuccess
}

// runPrompt reads one line at a time until true end-of-input (EOF), not
// merely a blank line — a blank line is valid Lox (an empty statement
// list) and must not end the session.
func (rt *Runtime) runPrompt(stdio mainer.Stdio) {
	scanner := bufio.NewScanner(stdio.Stdin)
	for {
		fmt.Fprint(stdio.Stdout, rt.Config.Prompt)

		if !scanner.Scan() {
			fmt.Fprintln(stdio.Stdout)
			return
		}

		rt.run(scanner.Text())
		rt.reporter.Reset()
	}
}

func (rt *Runtime) run(source string) {
	scanner := NewScanner(bytes.NewBufferString(source), rt.reporter)
	tokens := scanner.ScanTokens()

	parser := NewParser(tokens, rt.reporter)
	statements := parser.Parse()

	if rt.reporter.HadError {
		return
	}

	resolver := NewResolver(rt.interpreter, rt.reporter)
	if err := resolver.Resolve(statements); err != nil {
		return
	}

	if rt.reporter.HadError {
		return
	}

	if rt.Config.Debug {
		printer := &AstPrinter{}
		for _, stmt := range statements {
			if exprStmt, ok := stmt.(*Expression); ok {
				fmt.Fprintln(rt.reporter.Stderr, printer.Print(exprStmt.Expression))
			}
		}
	}

	rt.interpreter.Interpret(statements)
}
