package transpile

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hoistedName = regexp.MustCompile(`func_[a-z]{3}`)

func TestHoist_ExtractsCallback(t *testing.T) {
	input := []string{
		"var result = collection.map(function(f) {",
		"  return f.val();",
		"});",
	}
	got := Hoist(input)

	name := hoistedName.FindString(strings.Join(got, "\n"))
	require.NotEmpty(t, name, "a generated function name must appear")

	joined := strings.Join(got, "\n")
	assert.Contains(t, joined, "function "+name+"(f) {")
	assert.Contains(t, joined, "  return f.val();")
	assert.Contains(t, joined, "var result = collection.map("+name+");")
	assert.NotContains(t, joined, ".map(function")

	// Input is never mutated.
	assert.Equal(t, "  return f.val();", input[1])
}

func TestHoist_DefinitionPrecedesCallSite(t *testing.T) {
	input := []string{
		"var out = col.map(function(img) {",
		"  return img.clip(region);",
		"});",
	}
	got := Hoist(input)
	joined := strings.Join(got, "\n")

	def := strings.Index(joined, "function func_")
	call := strings.Index(joined, "col.map(func_")
	require.GreaterOrEqual(t, def, 0)
	require.GreaterOrEqual(t, call, 0)
	assert.Less(t, def, call, "hoisted definition must precede the call site")
}

func TestHoist_BodyLinesBlanked(t *testing.T) {
	input := []string{
		"var out = col.map(function(img) {",
		"  var x = img.select('B4');",
		"  return x;",
		"});",
		"print(out);",
	}
	got := Hoist(input)

	// The body appears exactly once in the output.
	joined := strings.Join(got, "\n")
	assert.Equal(t, 1, strings.Count(joined, "var x = img.select('B4');"))
	assert.Equal(t, 1, strings.Count(joined, "return x;"))
	assert.Contains(t, joined, "print(out);")
}

func TestHoist_SpaceBeforeParenVariant(t *testing.T) {
	input := []string{
		"var out = col.map (function(img) {",
		"  return img;",
		"});",
	}
	got := Hoist(input)
	assert.NotContains(t, strings.Join(got, "\n"), ".map (function")
}

func TestHoist_NoCallbackIsIdentity(t *testing.T) {
	input := []string{"var x = 5;", "print(x);"}
	assert.Equal(t, input, Hoist(input))
}

func TestHoist_Idempotent(t *testing.T) {
	input := []string{
		"var result = collection.map(function(f) {",
		"  return f.val();",
		"});",
	}
	once := Hoist(input)
	assert.Equal(t, once, Hoist(once))
}

func TestHoist_UnbalancedBraceLeftAlone(t *testing.T) {
	input := []string{
		"var out = col.map(function(img) {",
		"  return img;",
	}
	assert.Equal(t, input, Hoist(input))
}

func TestHoist_UniqueNamesPerFile(t *testing.T) {
	var input []string
	for i := 0; i < 4; i++ {
		input = append(input,
			"var a = col.map(function(f) {",
			"  return f;",
			"});",
		)
	}
	got := Hoist(input)

	names := hoistedName.FindAllString(strings.Join(got, "\n"), -1)
	seen := make(map[string]bool)
	for _, n := range names {
		seen[n] = true
	}
	// Each hoist references its name twice: definition and call site.
	assert.Len(t, seen, 4)
}
