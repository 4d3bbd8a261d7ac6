package transpile

import (
	"fmt"
	"strings"
)

// RewriteForLoop converts a JavaScript for-loop header into a Python
// iteration header, preserving the text around the parentheses
// verbatim. Membership loops (`for (f in list)`) become `for f in
// list:`; three-clause counting loops become `for i in range(start,
// end, step):` with `++` and `--` mapped to steps of 1 and -1.
//
// The header is assumed to sit on one line with no nested parentheses;
// multi-line or nested headers are rewritten incorrectly without
// detection. Known limitation.
func RewriteForLoop(line string) string {
	line = strings.ReplaceAll(line, "var ", "")

	start := strings.IndexByte(line, '(')
	end := strings.IndexByte(line, ')')
	if start < 0 || end < start {
		return line
	}

	prefix := line[:start]
	suffix := line[end+1:]
	params := line[start+1 : end]

	if strings.Contains(params, " in ") && !strings.Contains(params, ";") {
		return prefix + params + ":" + suffix
	}

	name := strings.TrimSpace(strings.SplitN(params, "=", 2)[0])
	clauses := strings.Split(params, ";")
	if len(clauses) < 3 {
		return line
	}

	// Each clause contributes its last whitespace-separated token:
	// "var i = 0" → "0", "i < 10" → "10", "i++" → "i++".
	bounds := make([]string, 0, len(clauses))
	for _, clause := range clauses {
		words := strings.Split(clause, " ")
		bounds = append(bounds, words[len(words)-1])
	}

	step := bounds[2]
	if strings.Contains(step, "++") {
		step = "1"
	} else if strings.Contains(step, "--") {
		step = "-1"
	}

	return prefix + fmt.Sprintf("%s in range(%s, %s, %s):", name, bounds[0], bounds[1], step) + suffix
}
