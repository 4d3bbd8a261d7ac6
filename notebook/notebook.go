package notebook

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gee-community/eeconv/convert"
	"github.com/gee-community/eeconv/transpile"
)

// External tools invoked for notebook generation and execution. The
// CLI layer overrides these from configuration.
var (
	ConvertTool = "ipynb-py-convert"
	JupyterTool = "jupyter"
)

// templateRelPath is the notebook path baked into the template's
// Colab and binder badge URLs.
const templateRelPath = "examples/template/template.ipynb"

// FromScript converts one Earth Engine Python script into a Jupyter
// notebook by wrapping it with the template header and footer. When
// user and repo are both set, the badge URLs in the header are
// rewritten to point at the generated notebook. The intermediate .py
// file is handed to ipynb-py-convert for the final .ipynb.
func FromScript(inPath, templatePath, outPath, user, repo string) error {
	if outPath == "" {
		base := strings.TrimSuffix(inPath, filepath.Ext(inPath))
		outPath = strings.ReplaceAll(base, convert.Suffix, "") + ".ipynb"
	}
	outPy := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".py"

	content, err := StripPluginImport(inPath)
	if err != nil {
		return err
	}
	header, err := Header(templatePath)
	if err != nil {
		return err
	}
	footer, err := Footer(templatePath)
	if err != nil {
		return err
	}

	if user != "" && repo != "" {
		if rel, ok := relativeNotebookPath(outPath, repo); ok {
			header = rewriteBadges(header, user, repo, rel)
		}
	}

	out := make([]string, 0, len(header)+len(content)+len(footer))
	out = append(out, header...)
	out = append(out, content...)
	out = append(out, footer...)

	if dir := filepath.Dir(outPy); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(outPy, []byte(strings.Join(out, "\n")), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPy, err)
	}

	cmd := exec.Command(ConvertTool, outPy, outPath)
	if msg, err := cmd.CombinedOutput(); err != nil {
		os.Stderr.Write(msg)
		return fmt.Errorf("running %s (install with: pip install ipynb-py-convert): %w", ConvertTool, err)
	}
	return nil
}

// FromScriptDir converts all Earth Engine Python scripts under inDir
// recursively. When the _qgis-suffixed scripts are exactly half of
// all .py files, only those are converted (the other half being the
// already-generated plain scripts). Returns converted/failed counts.
func FromScriptDir(inDir, templatePath, outDir, user, repo string) (converted, failed int, err error) {
	if outDir == "" {
		outDir = inDir
	} else if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, 0, fmt.Errorf("creating %s: %w", outDir, err)
	}

	pyFiles, err := convert.List(inDir, ".py")
	if err != nil {
		return 0, 0, err
	}
	var qgisFiles []string
	for _, f := range pyFiles {
		if strings.HasSuffix(f, convert.Suffix+".py") {
			qgisFiles = append(qgisFiles, f)
		}
	}
	files := pyFiles
	if len(qgisFiles)*2 == len(pyFiles) {
		files = qgisFiles
	}

	for i, in := range files {
		fmt.Fprintf(os.Stderr, "Processing %d/%d: %s\n", i+1, len(files), in)
		rel, relErr := filepath.Rel(inDir, in)
		if relErr != nil {
			rel = filepath.Base(in)
		}
		out := strings.TrimSuffix(filepath.Join(outDir, rel), ".py")
		out = strings.ReplaceAll(out, convert.Suffix, "") + ".ipynb"
		if err := FromScript(in, templatePath, out, user, repo); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			failed++
			continue
		}
		converted++
	}
	return converted, failed, nil
}

// Execute runs a notebook in place, saving output cells.
func Execute(path string) error {
	cmd := exec.Command(JupyterTool, "nbconvert", "--to", "notebook", "--execute", path, "--inplace")
	if msg, err := cmd.CombinedOutput(); err != nil {
		os.Stderr.Write(msg)
		return fmt.Errorf("executing %s: %w", path, err)
	}
	return nil
}

// ExecuteDir executes every notebook under dir recursively,
// continuing past individual failures.
func ExecuteDir(dir string) (executed, failed int, err error) {
	files, err := convert.List(dir, ".ipynb")
	if err != nil {
		return 0, 0, err
	}
	for i, f := range files {
		if strings.Contains(f, ".ipynb_checkpoints") {
			continue
		}
		fmt.Fprintf(os.Stderr, "Processing %d/%d: %s ...\n", i+1, len(files), f)
		if err := Execute(f); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			failed++
			continue
		}
		executed++
	}
	return executed, failed, nil
}

// UpdateHeader rewrites the binder and Colab badge URLs of an
// existing notebook so they point at the notebook's own path inside
// the given repository.
func UpdateHeader(path, user, repo string) error {
	if user == "" {
		user = "giswqs"
	}
	if repo == "" {
		repo = "geemap"
	}

	idx := strings.Index(filepath.ToSlash(path), repo)
	if idx < 0 {
		return fmt.Errorf("%s: path does not contain repository name %q", path, repo)
	}
	relPath := filepath.ToSlash(path)[idx+len(repo)+1:]

	lines, err := readLines(path)
	if err != nil {
		return err
	}
	if len(lines) < 3 {
		return fmt.Errorf("%s: too short to be a notebook", path)
	}

	// The first cell object starts on line 2 of the notebook JSON;
	// its closing brace bounds the header region.
	col := strings.IndexByte(lines[2], '{')
	if col < 0 {
		return fmt.Errorf("%s: no cell found on line 3", path)
	}
	match := transpile.Match(lines, transpile.Pos{Line: 2, Col: col}, '{')
	if !match.Found() {
		return fmt.Errorf("%s: unbalanced notebook JSON", path)
	}

	for i := 0; i < match.Line; i++ {
		line := strings.ReplaceAll(lines[i], "giswqs", user)
		line = strings.ReplaceAll(line, "geemap", repo)
		line = replaceBadgePath(line, "master?filepath=", relPath)
		line = replaceBadgePath(line, "/master/", relPath)
		lines[i] = line
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// UpdateHeaderDir updates the badge URLs of every notebook under dir,
// skipping checkpoint copies.
func UpdateHeaderDir(dir, user, repo string) error {
	files, err := convert.List(dir, ".ipynb")
	if err != nil {
		return err
	}
	count := 0
	for _, f := range files {
		if strings.Contains(f, ".ipynb_checkpoints") {
			continue
		}
		count++
	}
	i := 0
	for _, f := range files {
		if strings.Contains(f, ".ipynb_checkpoints") {
			continue
		}
		i++
		fmt.Fprintf(os.Stderr, "Processing %d/%d: %s ...\n", i, count, f)
		if err := UpdateHeader(f, user, repo); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	return nil
}

// replaceBadgePath swaps the notebook path embedded after marker in a
// badge URL for relPath. Lines without the marker (or without an
// .ipynb reference after it) pass through unchanged.
func replaceBadgePath(line, marker, relPath string) string {
	mi := strings.Index(line, marker)
	if mi < 0 {
		return line
	}
	start := mi + len(marker)
	end := strings.Index(line, ".ipynb")
	if end < start {
		return line
	}
	old := line[start : end+len(".ipynb")]
	return strings.ReplaceAll(line, old, relPath)
}

// relativeNotebookPath derives the notebook path relative to the
// repository root from an output path containing the repo name.
func relativeNotebookPath(outPath, repo string) (string, bool) {
	parts := strings.Split(filepath.ToSlash(outPath), "/")
	for i, p := range parts {
		if p == repo && i+1 < len(parts) {
			rel := strings.Join(parts[i+1:], "/")
			return strings.ReplaceAll(rel, ".py", ".ipynb"), true
		}
	}
	return "", false
}

// rewriteBadges updates the Colab and binder badge URLs in the first
// lines of the template header.
func rewriteBadges(header []string, user, repo, relPath string) []string {
	out := make([]string, len(header))
	for i, line := range header {
		if i < 9 {
			line = strings.ReplaceAll(line, "giswqs", user)
			line = strings.ReplaceAll(line, "geemap", repo)
			line = strings.ReplaceAll(line, templateRelPath, relPath)
		}
		out[i] = line
	}
	return out
}
