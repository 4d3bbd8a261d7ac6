// Package notebook assembles converted Earth Engine Python scripts
// into Jupyter notebooks using a fixed template, and drives notebook
// execution and header maintenance through external tools.
package notebook

import (
	"fmt"
	"os"
	"strings"
)

const (
	// headerMarker ends the template header; the header includes the
	// five lines following it.
	headerMarker = "## Add Earth Engine Python script"
	// footerMarker starts the template footer, three lines early to
	// keep the preceding cell delimiter.
	footerMarker = "## Display Earth Engine data layers"

	pluginImportMarker = "from ee_plugin import Map"
)

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"), nil
}

// Header extracts the header lines from a notebook template, up to
// and including the script-insertion marker block.
func Header(templatePath string) ([]string, error) {
	lines, err := readLines(templatePath)
	if err != nil {
		return nil, err
	}
	end := 0
	for i, line := range lines {
		if strings.Contains(line, headerMarker) {
			end = i + 5
		}
	}
	if end > len(lines) {
		end = len(lines)
	}
	return lines[:end], nil
}

// Footer extracts the footer lines from a notebook template,
// preceded by one blank separator line.
func Footer(templatePath string) ([]string, error) {
	lines, err := readLines(templatePath)
	if err != nil {
		return nil, err
	}
	start := 0
	for i, line := range lines {
		if strings.Contains(line, footerMarker) {
			start = i - 3
		}
	}
	if start < 0 {
		start = 0
	}
	return append([]string{""}, lines[start:]...), nil
}

// StripPluginImport returns the script lines following the ee_plugin
// import, skipping blank lines directly after it. Returns nil when
// the marker is absent.
func StripPluginImport(path string) ([]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	for i, line := range lines {
		if !strings.Contains(line, pluginImportMarker) {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if strings.TrimSpace(lines[j]) != "" {
				return lines[j:], nil
			}
		}
		return nil, nil
	}
	return nil, nil
}
