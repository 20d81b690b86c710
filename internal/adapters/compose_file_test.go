package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"hyperstack/internal/types"
)

func composeSpecs() []types.ServiceSpec {
	return []types.ServiceSpec{
		{
			Name:          "zenoh-router",
			ContainerName: "zenoh",
			Image:         "eclipse/zenoh:1.0",
			Ports:         []string{"7447:7447", "8000:8000"},
			Env: map[string]string{
				"MODE": "router",
				"LOG":  "info",
			},
			NetworkAliases: []string{"router"},
		},
		{
			Name:          "bridge",
			ContainerName: "bridge",
			Build:         &types.BuildSpec{Context: "/work/bridge", Dockerfile: "Dockerfile.dev"},
			Volumes:       []string{"./data:/data"},
		},
	}
}

func TestGenerateConfigWritesComposeFile(t *testing.T) {
	root := t.TempDir()
	adapter := NewDockerComposeAdapter(root)

	require.NoError(t, adapter.GenerateConfig(composeSpecs()))

	data, err := os.ReadFile(filepath.Join(root, ComposeFileName))
	require.NoError(t, err)

	var doc struct {
		Services map[string]struct {
			ContainerName string            `yaml:"container_name"`
			Image         string            `yaml:"image"`
			Build         *types.BuildSpec  `yaml:"build"`
			Ports         []string          `yaml:"ports"`
			Volumes       []string          `yaml:"volumes"`
			Environment   map[string]string `yaml:"environment"`
			Networks      map[string]struct {
				Aliases []string `yaml:"aliases"`
			} `yaml:"networks"`
		} `yaml:"services"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.Len(t, doc.Services, 2)

	router := doc.Services["zenoh-router"]
	assert.Equal(t, "zenoh", router.ContainerName)
	assert.Equal(t, "eclipse/zenoh:1.0", router.Image)
	assert.Equal(t, []string{"7447:7447", "8000:8000"}, router.Ports)
	assert.Equal(t, map[string]string{"MODE": "router", "LOG": "info"}, router.Environment)
	assert.Equal(t, []string{"router"}, router.Networks["default"].Aliases)

	bridge := doc.Services["bridge"]
	require.NotNil(t, bridge.Build)
	assert.Equal(t, "/work/bridge", bridge.Build.Context)
	assert.Equal(t, "Dockerfile.dev", bridge.Build.Dockerfile)
	assert.Empty(t, bridge.Image)
	assert.Nil(t, bridge.Networks)
}

func TestGenerateConfigIsByteDeterministic(t *testing.T) {
	root := t.TempDir()
	adapter := NewDockerComposeAdapter(root)

	require.NoError(t, adapter.GenerateConfig(composeSpecs()))
	first, err := os.ReadFile(filepath.Join(root, ComposeFileName))
	require.NoError(t, err)

	require.NoError(t, adapter.GenerateConfig(composeSpecs()))
	second, err := os.ReadFile(filepath.Join(root, ComposeFileName))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateConfigEmptyPlan(t *testing.T) {
	root := t.TempDir()
	adapter := NewDockerComposeAdapter(root)

	require.NoError(t, adapter.GenerateConfig(nil))

	data, err := os.ReadFile(filepath.Join(root, ComposeFileName))
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Contains(t, doc, "services")
}

func TestParseComposePSArrayOutput(t *testing.T) {
	output := []byte(`[{"Service":"zenoh-router","Name":"zenoh"},{"Service":"bridge","Name":"bridge-1"}]`)

	names, err := parseComposePS(output)
	require.NoError(t, err)
	assert.Equal(t, []string{"zenoh-router", "bridge"}, names)
}

func TestParseComposePSLineOutput(t *testing.T) {
	output := []byte(`{"Service":"zenoh-router","Name":"zenoh"}
{"Service":"","Name":"bridge-1"}`)

	names, err := parseComposePS(output)
	require.NoError(t, err)
	assert.Equal(t, []string{"zenoh-router", "bridge-1"}, names)
}

func TestParseComposePSEmptyOutput(t *testing.T) {
	names, err := parseComposePS([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestParseComposePSGarbage(t *testing.T) {
	_, err := parseComposePS([]byte("not json at all"))
	assert.Error(t, err)
}
