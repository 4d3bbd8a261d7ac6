package transpile

import "strings"

// Options control header emission for a single file conversion.
type Options struct {
	// Plugin prepends the QGIS ee_plugin Map import to the output.
	Plugin bool
	// SourceURL, when set, is recorded as a provenance comment naming
	// the upstream repository URL plus file path.
	SourceURL string
}

const (
	eeImport     = "import ee \n"
	pluginImport = "from ee_plugin import Map \n"
	mathImport   = "import math\n"

	// pyMarker identifies files already written in Python form.
	pyMarker = "import ee"
)

// UsesMath reports whether any line references the JavaScript Math
// namespace (Math.PI, Math.pow, ...).
func UsesMath(lines []string) bool {
	for _, line := range lines {
		if strings.Contains(line, "Math.") {
			return true
		}
	}
	return false
}

// IsPython reports whether the source is already a converted Earth
// Engine Python script, detected via the marker import line.
func IsPython(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) == pyMarker {
			return true
		}
	}
	return false
}

// Transpile converts the lines of one Earth Engine JavaScript file
// into a Python script. Files already in Python form pass through
// unchanged except for an optional prepended provenance comment.
//
// The conversion is best-effort: malformed bracket structure degrades
// the single transformation that needed it, never the whole file.
func Transpile(input []string, opts Options) string {
	url := ""
	if opts.SourceURL != "" {
		url = "# GitHub URL: " + opts.SourceURL + "\n\n"
	}

	if IsPython(input) {
		return url + strings.Join(input, "\n")
	}

	header := url + eeImport
	if opts.Plugin {
		header += pluginImport
	}
	if UsesMath(input) {
		header += mathImport
	}

	var out strings.Builder
	out.WriteString(header + "\n")

	lines := Hoist(input)

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		// Same-line styling annotation pair: strip it, keep the rest.
		if strings.Contains(line, "/* color") && strings.Contains(line, "*/") {
			openIdx := strings.Index(line, "/*")
			closeIdx := strings.Index(line, "*/")
			line = strings.TrimLeft(line[:openIdx], " \t") + line[closeIdx+2:]
		}

		if strings.Contains(line, "= function") || strings.Contains(line, "=function") ||
			strings.HasPrefix(strings.TrimSpace(line), "function") {
			line = rewriteFunctionDef(lines, i, line)
		} else if strings.Contains(line, "{") {
			line = rewriteBraceBlock(lines, i, line)
		}

		line = applyRules(line)
		line = strings.TrimRight(line, " \t\r\n")

		if strings.HasSuffix(line, "+") {
			// Binary continuation: make the line break explicit.
			line += " \\"
		} else if strings.HasSuffix(line, ";") {
			line = line[:len(line)-1]
		}

		line = docCommentRule.apply(line)

		trimmed := strings.TrimSpace(line)
		if strings.Contains(line, ":") && !strings.HasPrefix(trimmed, "#") &&
			!strings.HasPrefix(trimmed, "def") && !strings.HasPrefix(trimmed, ".") {
			line = QuoteKeys(line)
		}

		// A comment directly above a fluent-chain continuation would
		// land in the middle of the merged expression: drop it.
		if i < len(lines)-1 && strings.HasPrefix(strings.TrimLeft(line, " \t"), "#") &&
			strings.HasPrefix(strings.TrimLeft(lines[i+1], " \t"), ".") {
			line = ""
		}

		if strings.HasPrefix(strings.TrimLeft(line, " \t"), ".") {
			if hi := strings.IndexByte(line, '#'); hi >= 0 {
				line = line[:hi]
			}
			merged := strings.TrimRight(out.String(), " \t\r\n")
			out.Reset()
			out.WriteString(merged + " \\\n" + line + "\n")
		} else {
			out.WriteString(line + "\n")
		}
	}

	return out.String()
}

// rewriteFunctionDef turns a function declaration into a colon
// terminated def header, deleting the opening brace here and the
// closing brace wherever the bracket matcher finds it. The declaration
// keyword cleanup happens later via lineRules ("var " removal).
func rewriteFunctionDef(lines []string, i int, line string) string {
	braceIdx := strings.IndexByte(line, '{')
	if braceIdx < 0 {
		// Declaration with the brace on a later line: out of scope for
		// the heuristic, leave the line untouched.
		return line
	}

	match := Match(lines, Pos{Line: i, Col: braceIdx}, '{')
	line = line[:braceIdx] + line[braceIdx+1:]
	if match.Found() {
		if match.Line == i {
			// The open-brace deletion shifted the close left by one.
			line = line[:match.Col-1] + line[match.Col:]
		} else {
			tmp := lines[match.Line]
			lines[match.Line] = tmp[:match.Col] + tmp[match.Col+1:]
		}
	}

	line = strings.ReplaceAll(line, " = function", "")
	line = strings.ReplaceAll(line, "=function", "")
	line = strings.ReplaceAll(line, "function ", "")
	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	return strings.Repeat(" ", indent) + "def " + strings.TrimSpace(line) + ":"
}

// rewriteBraceBlock handles opening braces outside function
// declarations. A same-line brace pair already followed by a colon is
// a literal and stays as-is; a loop header is rewritten and its block
// braces removed.
func rewriteBraceBlock(lines []string, i int, line string) string {
	braceIdx := strings.IndexByte(line, '{')
	match := Match(lines, Pos{Line: i, Col: braceIdx}, '{')

	if match.Found() && match.Line == i && strings.Contains(line, ":") {
		return line
	}

	if strings.Contains(line, "for (") || strings.Contains(line, "for(") {
		line = RewriteForLoop(line)
		lines[i] = line
		braceIdx = strings.IndexByte(line, '{')
		if braceIdx < 0 {
			return line
		}
		match = Match(lines, Pos{Line: i, Col: braceIdx}, '{')
		if match.Found() {
			tmp := lines[match.Line]
			lines[match.Line] = tmp[:match.Col] + tmp[match.Col+1:]
		}
		line = strings.ReplaceAll(line, "{", "")
	}
	return line
}
