package transpile

import (
	"math/rand"
	"strings"
)

const namePrefix = "func_"

const nameLetters = "abcdefghijklmnopqrstuvwxyz"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = nameLetters[rand.Intn(len(nameLetters))]
	}
	return string(b)
}

// freshName mints a generated function name not yet used in this file.
func freshName(used map[string]bool) string {
	for {
		name := namePrefix + randomSuffix(3)
		if !used[name] {
			used[name] = true
			return name
		}
	}
}

// Hoist extracts inline anonymous function literals passed to .map()
// into standalone named functions, leaving a reference to the
// generated name at the call site. The named definition is emitted
// before the call site, separated by a blank line.
//
// The input slice is never modified. Body lines consumed by a hoist
// are blanked in the returned sequence so the line transpiler does not
// reprocess them as call-site content. Nested callbacks are not
// extracted in a single pass; running Hoist on its own output is a
// no-op.
func Hoist(lines []string) []string {
	input := make([]string, len(lines))
	copy(input, lines)

	used := make(map[string]bool)
	out := make([]string, 0, len(input))

	for i := 0; i < len(input); i++ {
		line := input[i]
		if !strings.Contains(line, ".map(function") && !strings.Contains(line, ".map (function") {
			out = append(out, line)
			continue
		}

		braceIdx := strings.IndexByte(line, '{')
		if braceIdx < 0 {
			out = append(out, line)
			continue
		}
		match := Match(input, Pos{Line: i, Col: braceIdx}, '{')
		if !match.Found() {
			// Unbalanced literal: leave the line for the transpiler.
			out = append(out, line)
			continue
		}

		funcIdx := strings.Index(line, "function")
		name := freshName(used)
		header := strings.Replace(line[funcIdx:], "function", "function "+name, 1)
		out = append(out, "", header)

		for j := i + 1; j < match.Line; j++ {
			out = append(out, input[j])
			input[j] = ""
		}

		callSite := strings.TrimRight(line[:funcIdx]+name, " \t")

		footer := input[match.Line][:match.Col+1]
		out = append(out, footer)

		rest := strings.TrimSpace(input[match.Line][match.Col+1:])
		if rest == ")" || rest == ");" {
			// Bare closing-call token: merge it onto the call site so
			// the call parenthesis closes on the same line.
			callSite += rest
			rest = ""
		}
		input[match.Line] = rest

		out = append(out, callSite, rest)
	}
	return out
}
