package lox

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runProgram scans, parses, resolves and interprets source in one shot,
// returning everything written to stdout/stderr and the reporter's final
// error flags.
func runProgram(t *testing.T, source string) (stdout string, stderr string, reporter *Reporter) {
	t.Helper()

	var out, errOut bytes.Buffer
	reporter = &Reporter{Stdout: &out, Stderr: &errOut}

	scanner := NewScanner(bytes.NewBufferString(source), reporter)
	tokens := scanner.ScanTokens()

	parser := NewParser(tokens, reporter)
	statements := parser.Parse()
	if reporter.HadError {
		return out.String(), errOut.String(), reporter
	}

	interpreter := NewInterpreter(reporter)
	resolver := NewResolver(interpreter, reporter)
	if err := resolver.Resolve(statements); err != nil || reporter.HadError {
		return out.String(), errOut.String(), reporter
	}

	interpreter.Interpret(statements)
	return out.String(), errOut.String(), reporter
}

func TestInterpreterArithmeticPrecedence(t *testing.T) {
	stdout, _, reporter := runProgram(t, `print 1 + 2 * 3;`)
	require.False(t, reporter.HadError)
	require.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "7\n", stdout)
}

func TestInterpreterVariableArithmetic(t *testing.T) {
	stdout, _, reporter := runProgram(t, `var a=1; var b=2; print a+b;`)
	require.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "3\n", stdout)
}

// TestInterpreterClosureShadowing is the canonical test of the resolver's
// binding-time semantics: each `show` call must print the value of `a`
// that was in scope where `show` was *declared*, not whatever `a` is
// visible at the call site.
func TestInterpreterClosureShadowing(t *testing.T) {
	stdout, _, reporter := runProgram(t, `
		var a = "global";
		{
			fun show() { print a; }
			show();
			var a = "local";
			show();
		}
	`)
	require.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "global\nglobal\n", stdout)
}

// TestInterpreterClosureCapturesFrameNotValue checks the closure law: a
// captured frame is read at call time, so mutating the captured variable
// after the function is declared is visible the next time it's called.
func TestInterpreterClosureCapturesFrameNotValue(t *testing.T) {
	stdout, _, reporter := runProgram(t, `
		var i = 1;
		fun f() { print i; }
		i = 2;
		f();
	`)
	require.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "2\n", stdout)
}

func TestInterpreterFibonacci(t *testing.T) {
	stdout, _, reporter := runProgram(t, `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	require.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "55\n", stdout)
}

func TestInterpreterClassWithMethod(t *testing.T) {
	stdout, _, reporter := runProgram(t, `
		class Bacon {
			eat() { print "Crunch!"; }
		}
		Bacon().eat();
	`)
	require.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "Crunch!\n", stdout)
}

// TestInterpreterInheritanceWithSuper is the inheritance law: super.m()
// inside B always calls A.m, with `this` bound to the receiver, regardless
// of how many generations separate the receiver's dynamic class from A.
func TestInterpreterInheritanceWithSuper(t *testing.T) {
	stdout, _, reporter := runProgram(t, `
		class A {
			method() { print "A"; }
		}
		class B < A {
			method() { print "B"; }
			test() { super.method(); }
		}
		class C < B {}
		C().test();
	`)
	require.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "A\n", stdout)
}

func TestInterpreterInitializerReturnsInstance(t *testing.T) {
	stdout, _, reporter := runProgram(t, `
		class Counter {
			init(start) { this.count = start; }
			increment() { this.count = this.count + 1; }
			show() { print this.count; }
		}
		var c = Counter(10);
		c.increment();
		c.show();
	`)
	require.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "11\n", stdout)
}

func TestInterpreterRuntimeErrorOnUndefinedVariable(t *testing.T) {
	_, stderr, reporter := runProgram(t, `print undefined_name;`)
	assert.True(t, reporter.HadRuntimeError)
	assert.Contains(t, stderr, "Undefined variable")
}

func TestInterpreterRuntimeErrorOnNonNumericOperand(t *testing.T) {
	_, stderr, reporter := runProgram(t, `print "a" - 1;`)
	assert.True(t, reporter.HadRuntimeError)
	assert.Contains(t, stderr, "Operands must be numbers")
}

func TestInterpreterRuntimeErrorCallingNonCallable(t *testing.T) {
	_, _, reporter := runProgram(t, `
		var x = 1;
		x();
	`)
	assert.True(t, reporter.HadRuntimeError)
}

func TestInterpreterRuntimeErrorWrongArity(t *testing.T) {
	_, _, reporter := runProgram(t, `
		fun f(a, b) { return a + b; }
		f(1);
	`)
	assert.True(t, reporter.HadRuntimeError)
}

func TestInterpreterForLoopAccumulates(t *testing.T) {
	stdout, _, reporter := runProgram(t, `
		var total = 0;
		for (var i = 1; i <= 5; i = i + 1) {
			total = total + i;
		}
		print total;
	`)
	require.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "15\n", stdout)
}

func TestInterpreterLogicalShortCircuit(t *testing.T) {
	stdout, _, reporter := runProgram(t, `
		fun sideEffect() { print "called"; return true; }
		false and sideEffect();
		print "done";
	`)
	require.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "done\n", stdout)
}

// TestInterpreterSnapshotScenarios snapshot-tests the stdout of a handful
// of representative programs so a regression in stringify/print formatting
// shows up as a diff instead of a silent behavior change.
func TestInterpreterSnapshotScenarios(t *testing.T) {
	scenarios := map[string]string{
		"nested_classes": `
			class Doughnut {
				cook() { print "Fry until golden brown."; }
			}
			class BostonCream < Doughnut {
				cook() {
					super.cook();
					print "Pipe full of custard and coat with chocolate.";
				}
			}
			BostonCream().cook();
		`,
		"string_concat_and_numeric_print": `
			print "the answer is " + "42";
			print 10 / 4;
		`,
	}

	for name, source := range scenarios {
		t.Run(name, func(t *testing.T) {
			stdout, _, reporter := runProgram(t, source)
			require.False(t, reporter.HadRuntimeError)
			snaps.MatchSnapshot(t, stdout)
		})
	}
}
