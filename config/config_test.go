package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Defaults(t *testing.T) {
	require.NoError(t, Init())

	assert.True(t, C.Plugin)
	assert.Equal(t, "", C.RepoURL)
	assert.Equal(t, "", C.Template)
	assert.Equal(t, "giswqs", C.User)
	assert.Equal(t, "geemap", C.Repo)
	assert.Equal(t, "ipynb-py-convert", C.ConvertTool)
	assert.Equal(t, "jupyter", C.JupyterTool)
}

func TestInit_EnvOverride(t *testing.T) {
	t.Setenv("EECONV_CONVERT_TOOL", "my-convert")
	t.Setenv("EECONV_USER", "someone")
	t.Setenv("EECONV_PLUGIN", "false")

	require.NoError(t, Init())

	assert.Equal(t, "my-convert", C.ConvertTool)
	assert.Equal(t, "someone", C.User)
	assert.False(t, C.Plugin)
}
