package transpile

import "strings"

// QuoteKeys rewrites bare object-literal keys on a single line into
// quoted string keys: `{min: 0, max: 10}` becomes `{'min': 0, 'max': 10}`.
// Lines that begin with a for keyword are returned unchanged, since
// range colons in loop headers are not key separators. Already-quoted
// keys are left alone, so the rewrite is idempotent.
func QuoteKeys(line string) string {
	if strings.HasPrefix(strings.TrimSpace(line), "for") {
		return line
	}

	count := strings.Count(line, ":")
	if count == 0 {
		return line
	}

	// Everything up through a leading { before the first colon is an
	// unquoted prefix (e.g. the call text in `addLayer(img, {min: 0`).
	prefix := ""
	if bi := strings.IndexByte(line, '{'); bi >= 0 && bi < strings.IndexByte(line, ':') {
		prefix = line[:bi+1]
		line = line[bi+1:]
	}

	items := strings.Split(line, ":")

	if count == 1 {
		item := strings.TrimSpace(items[0])
		if !strings.ContainsAny(item, `"'`) {
			items[0] = strings.Replace(items[0], item, "'"+item+"'", 1)
		}
		return prefix + strings.Join(items, ":")
	}

	// Multiple key/value pairs on one line. Only the last
	// comma-separated element before each colon is the key.
	for i := 0; i < count && i < len(items); i++ {
		item := items[i]
		if strings.Contains(item, ",") {
			subitems := strings.Split(item, ",")
			sub := subitems[len(subitems)-1]
			if !strings.ContainsAny(sub, `"'`) {
				subitems[len(subitems)-1] = "'" + strings.TrimSpace(sub) + "'"
				items[i] = strings.Join(subitems, ", ")
			}
		} else if !strings.ContainsAny(item, `"'`) {
			trimmed := strings.TrimSpace(item)
			padding := len(item) - len(trimmed)
			items[i] = strings.Repeat(" ", padding) + "'" + trimmed + "'"
		}
	}
	return prefix + strings.Join(items, ":")
}
