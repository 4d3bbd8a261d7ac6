// Package transpile converts Earth Engine JavaScript snippets into
// Python scripts. It is a heuristic line rewriter, not a parser: there
// is no grammar and no AST. Bracket nesting is tracked across lines
// and a fixed, ordered set of textual substitutions is applied, which
// is sufficient for the restricted dialect used in Earth Engine
// example scripts.
package transpile

import (
	"fmt"
	"os"
)

// Pos identifies one character within a line sequence.
type Pos struct {
	Line int
	Col  int
}

// NoMatch is the sentinel returned when no balanced closing bracket
// exists before the input ends.
var NoMatch = Pos{Line: -1, Col: -1}

// Found reports whether p refers to an actual position.
func (p Pos) Found() bool { return p.Line >= 0 }

var closers = map[byte]byte{
	'{': '}',
	'(': ')',
	'[': ']',
}

// Match finds the balanced closing counterpart of the opening bracket
// at start. Scanning begins at start.Col on start.Line and continues
// through subsequent lines in order. Brackets inside string literals
// or comments are not treated specially; see the package tests for
// this documented boundary.
//
// An unsupported opening byte is a usage error: it is reported on
// stderr and Match returns NoMatch without aborting the caller.
func Match(lines []string, start Pos, open byte) Pos {
	closer, ok := closers[open]
	if !ok {
		fmt.Fprintf(os.Stderr, "match: opening bracket must be one of {, (, [ but got %q\n", string(open))
		return NoMatch
	}

	depth := 0
	for li := start.Line; li < len(lines); li++ {
		line := lines[li]
		offset := 0
		if li == start.Line {
			if start.Col >= len(line) {
				continue
			}
			line = line[start.Col:]
			offset = start.Col
		}
		for ci := 0; ci < len(line); ci++ {
			switch line[ci] {
			case closer:
				depth--
			case open:
				depth++
			}
			if depth == 0 {
				return Pos{Line: li, Col: offset + ci}
			}
		}
	}
	return NoMatch
}
