package transpile

import "strings"

// rule is one textual substitution. Rules with once set replace only
// the first occurrence. A nil guard always applies; otherwise the rule
// fires only when the guard accepts the line.
type rule struct {
	from  string
	to    string
	once  bool
	guard func(line string) bool
}

func (r rule) apply(line string) string {
	if r.guard != nil && !r.guard(line) {
		return line
	}
	if r.once {
		return strings.Replace(line, r.from, r.to, 1)
	}
	return strings.ReplaceAll(line, r.from, r.to)
}

// lineRules are applied to every line in order. The order is load
// bearing: Math.PI must be rewritten before the general Math. rule,
// and comment markers must become hashes before key quoting sees the
// line. The .or/.and/.not capitalization avoids colliding with Python
// keywords.
var lineRules = []rule{
	{from: "//", to: "#"},
	{from: "var ", to: "", once: true},
	{from: "/*", to: "#"},
	{from: "*/", to: "#"},
	{from: "true", to: "True"},
	{from: "false", to: "False"},
	{from: "null", to: "{}"},
	{from: ".or", to: ".Or"},
	{from: ".and", to: ".And"},
	{from: ".not", to: ".Not"},
	{from: "visualize({", to: "visualize(**{"},
	{from: "Math.PI", to: "math.pi"},
	{from: "Math.", to: "math."},
	{from: "= new", to: "="},
}

// docCommentRule turns the body lines of JSDoc-style block comments
// (leading *) into hash comments. Applied after statement-terminator
// handling, separately from lineRules.
var docCommentRule = rule{
	from: "*",
	to:   "#",
	guard: func(line string) bool {
		return strings.HasPrefix(strings.TrimLeft(line, " \t"), "*")
	},
}

func applyRules(line string) string {
	for _, r := range lineRules {
		line = r.apply(line)
	}
	return line
}
