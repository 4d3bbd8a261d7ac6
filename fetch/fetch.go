// Package fetch downloads Earth Engine script sources and example
// data: plain URLs (with archive extraction), Earth Engine App
// JavaScript bundles, and Google Drive shared files.
package fetch

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// URL downloads rawurl into dir under name (defaulting to the URL
// base name). Zip and tar archives are extracted in place when
// extract is true. Returns the final path of the downloaded or
// extracted data.
func URL(rawurl, name, dir string, extract bool) (string, error) {
	if name == "" {
		name = path.Base(rawurl)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	outPath := filepath.Join(abs, name)

	fmt.Fprintf(os.Stderr, "Downloading %s ...\n", path.Base(rawurl))
	if err := download(rawurl, outPath); err != nil {
		return "", fmt.Errorf("downloading %s: %w", rawurl, err)
	}

	final := outPath
	if extract {
		switch {
		case strings.Contains(name, ".zip"):
			fmt.Fprintf(os.Stderr, "Unzipping %s ...\n", name)
			if err := unzip(outPath, abs); err != nil {
				return "", fmt.Errorf("unzipping %s: %w", name, err)
			}
			final = filepath.Join(abs, strings.ReplaceAll(name, ".zip", ""))
		case strings.Contains(name, ".tar"):
			fmt.Fprintf(os.Stderr, "Extracting %s ...\n", name)
			if err := untar(outPath, abs); err != nil {
				return "", fmt.Errorf("extracting %s: %w", name, err)
			}
			base := strings.TrimSuffix(name, ".gz")
			base = strings.TrimSuffix(base, ".tar")
			final = filepath.Join(abs, base)
		}
	}
	fmt.Fprintf(os.Stderr, "Data downloaded to: %s\n", final)
	return final, nil
}

// App downloads the JavaScript source of a public Earth Engine App.
// The App URL maps to a -modules.json bundle whose payload embeds the
// script with escaped newlines and quotes.
func App(appURL, outFile string) (string, error) {
	jsonURL, err := ModulesURL(appURL)
	if err != nil {
		return "", err
	}

	outPath := outFile
	if outPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		outPath = filepath.Join(cwd, path.Base(appURL)+".js")
	}
	if !strings.HasSuffix(outPath, "js") {
		outPath += ".js"
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	jsonPath := outPath + "on"
	if err := download(jsonURL, jsonPath); err != nil {
		return "", fmt.Errorf("downloading %s: %w", jsonURL, err)
	}
	defer os.Remove(jsonPath)

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, line := range strings.Split(string(data), "\n") {
		items := strings.Split(line, `\n`)
		for i, item := range items {
			if i == 0 || i == len(items)-1 {
				continue
			}
			sb.WriteString(UnescapeAppSource(item))
			sb.WriteByte('\n')
		}
	}
	if err := os.WriteFile(outPath, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", outPath, err)
	}
	return outPath, nil
}

// ModulesURL derives the -modules.json bundle URL from an Earth
// Engine App URL.
func ModulesURL(appURL string) (string, error) {
	items := strings.Split(appURL, "/")
	if len(items) < 5 {
		return "", fmt.Errorf("%s: not an Earth Engine App URL", appURL)
	}
	items[3] = "javascript"
	items[4] = items[4] + "-modules.json"
	return strings.Join(items, "/"), nil
}

// UnescapeAppSource undoes the JSON string escaping of one embedded
// script line.
func UnescapeAppSource(item string) string {
	item = strings.ReplaceAll(item, `\"`, `"`)
	item = strings.ReplaceAll(item, `\\`, "\n")
	item = strings.ReplaceAll(item, `\r`, "")
	return item
}

// GDrive downloads a file shared via a Google Drive link
// (e.g. https://drive.google.com/file/d/<id>/view?usp=sharing) into
// dir under name. Zip archives are extracted when extract is true.
func GDrive(sharedURL, name, dir string, extract bool) (string, error) {
	id, err := DriveFileID(sharedURL)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(os.Stderr, "Google Drive file id: %s\n", id)
	return URL("https://drive.google.com/uc?export=download&id="+id, name, dir, extract)
}

// DriveFileID extracts the file id from a Google Drive share URL.
func DriveFileID(sharedURL string) (string, error) {
	parts := strings.Split(sharedURL, "/")
	if len(parts) < 6 || parts[5] == "" {
		return "", fmt.Errorf("%s: not a Google Drive share URL", sharedURL)
	}
	return parts[5], nil
}

func download(rawurl, outPath string) error {
	resp, err := http.Get(rawurl)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return err
	}
	return f.Close()
}

func unzip(archive, dir string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := sanitizePath(dir, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		out, err := os.Create(target)
		if err != nil {
			rc.Close()
			return err
		}
		_, err = io.Copy(out, rc)
		rc.Close()
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func untar(archive, dir string) error {
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(archive, ".gz") || strings.HasSuffix(archive, ".tgz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gz.Close()
		reader = gz
	}

	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		target, err := sanitizePath(dir, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			out, err := os.Create(target)
			if err != nil {
				return err
			}
			_, err = io.Copy(out, tr)
			if cerr := out.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
		}
	}
}

// sanitizePath rejects archive entries that would escape dir.
func sanitizePath(dir, name string) (string, error) {
	target := filepath.Join(dir, name)
	if !strings.HasPrefix(target, filepath.Clean(dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("%s: illegal archive path", name)
	}
	return target, nil
}
