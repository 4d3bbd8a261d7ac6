// Package convert orchestrates JavaScript-to-Python conversion over
// files and directory trees. The transpilation itself lives in the
// transpile package; this package only does file IO and reporting.
package convert

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gee-community/eeconv/transpile"
)

// Suffix appended to converted script names by Dir, marking scripts
// that carry the QGIS plugin import.
const Suffix = "_qgis"

// Converter converts Earth Engine JavaScript files. The zero value
// converts without the plugin import or provenance comments.
type Converter struct {
	// Plugin prepends the QGIS ee_plugin import to converted scripts.
	Plugin bool
	// RepoURL, when set, is joined with each input path to form the
	// provenance comment of the output.
	RepoURL string
}

// File converts a single JavaScript file and writes the result to
// outPath, creating the output directory when absent. An empty
// outPath replaces the ".js" suffix with ".py". Returns the converted
// text.
func (c *Converter) File(inPath, outPath string) (string, error) {
	if outPath == "" {
		outPath = strings.TrimSuffix(inPath, ".js") + ".py"
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", inPath, err)
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	opts := transpile.Options{Plugin: c.Plugin}
	if c.RepoURL != "" {
		opts.SourceURL = c.RepoURL + inPath
	}
	output := transpile.Transpile(lines, opts)

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(outPath, []byte(output), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", outPath, err)
	}
	return output, nil
}

// Dir converts every .js file under inDir recursively, mirroring the
// tree under outDir with "_qgis.py" names. Individual file failures
// are reported on stderr and the batch continues. Returns the number
// of files converted and the number that failed.
func (c *Converter) Dir(inDir, outDir string) (converted, failed int, err error) {
	if outDir == "" {
		outDir = inDir
	}

	files, err := List(inDir, ".js")
	if err != nil {
		return 0, 0, err
	}

	for i, in := range files {
		fmt.Fprintf(os.Stderr, "Processing %d/%d: %s\n", i+1, len(files), in)
		rel, relErr := filepath.Rel(inDir, in)
		if relErr != nil {
			rel = filepath.Base(in)
		}
		out := filepath.Join(outDir, strings.TrimSuffix(rel, ".js")+Suffix+".py")
		if _, fileErr := c.File(in, out); fileErr != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", fileErr)
			failed++
			continue
		}
		converted++
	}
	return converted, failed, nil
}

// List returns every file under dir (recursively) whose name ends in
// ext, in directory-traversal order.
func List(dir, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return files, nil
}
