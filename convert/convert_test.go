package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFile_DefaultOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "script.js")
	writeFile(t, in, "var x = 5;\n")

	c := &Converter{}
	out, err := c.File(in, "")
	require.NoError(t, err)
	assert.Contains(t, out, "x = 5\n")

	data, err := os.ReadFile(filepath.Join(dir, "script.py"))
	require.NoError(t, err)
	assert.Equal(t, out, string(data))
}

func TestFile_PluginAndProvenance(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.js")
	writeFile(t, in, "var x = true;\n")

	c := &Converter{Plugin: true, RepoURL: "https://github.com/u/r/blob/master"}
	out, err := c.File(in, filepath.Join(dir, "out", "a.py"))
	require.NoError(t, err)
	assert.Contains(t, out, "from ee_plugin import Map \n")
	assert.Contains(t, out, "# GitHub URL: https://github.com/u/r/blob/master"+in+"\n")
	assert.Contains(t, out, "x = True\n")

	_, err = os.Stat(filepath.Join(dir, "out", "a.py"))
	assert.NoError(t, err)
}

func TestFile_MissingInput(t *testing.T) {
	c := &Converter{}
	_, err := c.File(filepath.Join(t.TempDir(), "nope.js"), "")
	assert.Error(t, err)
}

func TestDir_MirrorsTreeWithSuffix(t *testing.T) {
	in := t.TempDir()
	writeFile(t, filepath.Join(in, "a.js"), "var a = 1;\n")
	writeFile(t, filepath.Join(in, "sub", "b.js"), "var b = 2;\n")
	writeFile(t, filepath.Join(in, "notes.txt"), "skip me\n")

	out := t.TempDir()
	c := &Converter{}
	converted, failed, err := c.Dir(in, out)
	require.NoError(t, err)
	assert.Equal(t, 2, converted)
	assert.Equal(t, 0, failed)

	_, err = os.Stat(filepath.Join(out, "a"+Suffix+".py"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "sub", "b"+Suffix+".py"))
	assert.NoError(t, err)
}

func TestDir_EmptyOutputDefaultsToInput(t *testing.T) {
	in := t.TempDir()
	writeFile(t, filepath.Join(in, "a.js"), "var a = 1;\n")

	c := &Converter{}
	converted, failed, err := c.Dir(in, "")
	require.NoError(t, err)
	assert.Equal(t, 1, converted)
	assert.Equal(t, 0, failed)

	_, err = os.Stat(filepath.Join(in, "a"+Suffix+".py"))
	assert.NoError(t, err)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.js"), "")
	writeFile(t, filepath.Join(dir, "sub", "b.js"), "")
	writeFile(t, filepath.Join(dir, "c.py"), "")

	files, err := List(dir, ".js")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	files, err = List(dir, ".py")
	require.NoError(t, err)
	assert.Len(t, files, 1)
}
