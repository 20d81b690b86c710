package adapters

import (
	"os"
	"path/filepath"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hyperstack/internal/types"
)

func readPyproject(t *testing.T, root string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, "pyproject.toml"))
	require.NoError(t, err)
	document := map[string]interface{}{}
	require.NoError(t, toml.Unmarshal(data, &document))
	return document
}

func TestWriteDependenciesCreatesPyproject(t *testing.T) {
	root := t.TempDir()
	adapter := NewUvAdapter(root)

	err := adapter.writeDependencies([]types.Requirement{
		{Name: "numpy", Spec: "numpy>=1.26"},
		{Name: "zenoh", Spec: "eclipse-zenoh==1.0.0"},
	})
	require.NoError(t, err)

	document := readPyproject(t, root)
	project, ok := document["project"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"numpy>=1.26", "eclipse-zenoh==1.0.0"}, project["dependencies"])
}

func TestWriteDependenciesPreservesUnrelatedSections(t *testing.T) {
	root := t.TempDir()
	existing := `[project]
name = "rover"
version = "1.0.0"
dependencies = ["old-dep==0.1"]

[tool.ruff]
line-length = 100
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"), []byte(existing), 0644))
	adapter := NewUvAdapter(root)

	err := adapter.writeDependencies([]types.Requirement{
		{Name: "numpy", Spec: "numpy>=1.26"},
	})
	require.NoError(t, err)

	document := readPyproject(t, root)
	project := document["project"].(map[string]interface{})
	assert.Equal(t, "rover", project["name"])
	assert.Equal(t, "1.0.0", project["version"])
	assert.Equal(t, []interface{}{"numpy>=1.26"}, project["dependencies"])
	tool, ok := document["tool"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, tool, "ruff")
}

func TestWriteDependenciesEmptyList(t *testing.T) {
	root := t.TempDir()
	adapter := NewUvAdapter(root)

	require.NoError(t, adapter.writeDependencies(nil))

	document := readPyproject(t, root)
	project := document["project"].(map[string]interface{})
	assert.Equal(t, []interface{}{}, project["dependencies"])
}

func TestWriteDependenciesRejectsMalformedPyproject(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"), []byte("[project\nbroken"), 0644))

	err := NewUvAdapter(root).writeDependencies(nil)
	assert.Error(t, err)
}

func TestBaseArgsHonorsSystemFlag(t *testing.T) {
	adapter := NewUvAdapter(t.TempDir())

	t.Setenv("HSM_USE_SYSTEM", "")
	assert.Empty(t, adapter.baseArgs())

	t.Setenv("HSM_USE_SYSTEM", "1")
	assert.Equal(t, []string{"--system"}, adapter.baseArgs())
}
