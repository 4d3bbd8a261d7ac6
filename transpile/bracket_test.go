package transpile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_SameLine(t *testing.T) {
	lines := []string{"var params = {min: 0, max: 10};"}
	got := Match(lines, Pos{Line: 0, Col: 13}, '{')
	require.True(t, got.Found())
	assert.Equal(t, Pos{Line: 0, Col: 29}, got)
	assert.Equal(t, byte('}'), lines[got.Line][got.Col])
}

func TestMatch_AcrossLines(t *testing.T) {
	lines := []string{
		"var f = function(img) {",
		"  var m = {a: 1, b: {c: 2}};",
		"  return img;",
		"};",
	}
	got := Match(lines, Pos{Line: 0, Col: 22}, '{')
	require.True(t, got.Found())
	assert.Equal(t, Pos{Line: 3, Col: 0}, got)
	assert.Equal(t, byte('}'), lines[got.Line][got.Col])
}

func TestMatch_NestedSpanBalance(t *testing.T) {
	lines := []string{
		"call({",
		"  a: {b: {c: 1}},",
		"  d: [1, 2],",
		"})",
	}
	got := Match(lines, Pos{Line: 0, Col: 5}, '{')
	require.True(t, got.Found())

	// The span between start and match has equal open/close counts.
	span := strings.Join(lines[0:got.Line], "\n")[5:] + "\n" + lines[got.Line][:got.Col+1]
	assert.Equal(t, strings.Count(span, "{"), strings.Count(span, "}"))
}

func TestMatch_Parens(t *testing.T) {
	lines := []string{"foo(bar(1, 2), baz(3))"}
	got := Match(lines, Pos{Line: 0, Col: 3}, '(')
	require.True(t, got.Found())
	assert.Equal(t, Pos{Line: 0, Col: 21}, got)
}

func TestMatch_SquareBrackets(t *testing.T) {
	lines := []string{"var palette = ['red', ['a', 'b'],", "  'blue'];"}
	got := Match(lines, Pos{Line: 0, Col: 14}, '[')
	require.True(t, got.Found())
	assert.Equal(t, Pos{Line: 1, Col: 8}, got)
}

func TestMatch_NoClosingBracket(t *testing.T) {
	lines := []string{"var f = function(img) {", "  return img;"}
	got := Match(lines, Pos{Line: 0, Col: 22}, '{')
	assert.Equal(t, NoMatch, got)
	assert.False(t, got.Found())
}

func TestMatch_UnsupportedOpeningChar(t *testing.T) {
	lines := []string{"a < b > c"}
	got := Match(lines, Pos{Line: 0, Col: 2}, '<')
	assert.Equal(t, NoMatch, got)
}

func TestMatch_BracketInStringNotEscaped(t *testing.T) {
	// Documented boundary: brackets inside string literals count.
	lines := []string{`var s = {a: "}"};`}
	got := Match(lines, Pos{Line: 0, Col: 8}, '{')
	require.True(t, got.Found())
	// The brace inside the string closes the literal early.
	assert.Equal(t, Pos{Line: 0, Col: 13}, got)
}
