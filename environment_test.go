package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", 1.0)

	val, err := env.Get(NewToken(Identifier, "a", nil, 1))
	require.NoError(t, err)
	assert.Equal(t, 1.0, val)
}

func TestEnvironmentGetUndefinedIsRuntimeError(t *testing.T) {
	env := NewEnvironment(nil)

	_, err := env.Get(NewToken(Identifier, "missing", nil, 1))
	require.Error(t, err)

	var runtimeErr *RuntimeError
	require.ErrorAs(t, err, &runtimeErr)
}

func TestEnvironmentAssignWalksToEnclosing(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", "outer")

	inner := NewEnvironment(outer)
	err := inner.Assign(NewToken(Identifier, "a", nil, 1), "inner")
	require.NoError(t, err)

	val, err := outer.Get(NewToken(Identifier, "a", nil, 1))
	require.NoError(t, err)
	assert.Equal(t, "inner", val)
}

func TestEnvironmentAssignUndefinedIsRuntimeError(t *testing.T) {
	env := NewEnvironment(nil)
	err := env.Assign(NewToken(Identifier, "missing", nil, 1), 1.0)
	require.Error(t, err)
}

func TestEnvironmentShadowing(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", "outer")

	inner := NewEnvironment(outer)
	inner.Define("a", "inner")

	val, err := inner.Get(NewToken(Identifier, "a", nil, 1))
	require.NoError(t, err)
	assert.Equal(t, "inner", val)

	val, err = outer.Get(NewToken(Identifier, "a", nil, 1))
	require.NoError(t, err)
	assert.Equal(t, "outer", val)
}

func TestEnvironmentGetAtAndAssignAt(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", "global")

	block := NewEnvironment(global)

	assert.Equal(t, "global", block.GetAt(1, "a"))

	block.AssignAt(1, NewToken(Identifier, "a", nil, 1), "changed")
	val, err := global.Get(NewToken(Identifier, "a", nil, 1))
	require.NoError(t, err)
	assert.Equal(t, "changed", val)
}
