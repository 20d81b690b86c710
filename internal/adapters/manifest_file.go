package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"hyperstack/internal/ports"
	"hyperstack/internal/types"
)

// ManifestFileName is the project manifest the selection state lives in.
const ManifestFileName = "hsm.yaml"

type ManifestFileAdapter struct {
	Path string
}

func NewManifestFileAdapter(projectRoot string) ManifestFileAdapter {
	return ManifestFileAdapter{Path: filepath.Join(projectRoot, ManifestFileName)}
}

func (a ManifestFileAdapter) Exists() bool {
	_, err := os.Stat(a.Path)
	return err == nil
}

// Load reads the manifest, or returns a fresh default state when the
// file does not exist yet.
func (a ManifestFileAdapter) Load() (types.SelectionState, error) {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSelectionState(filepath.Base(filepath.Dir(a.Path))), nil
		}
		return types.SelectionState{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read project manifest").
			WithCause(err)
	}
	var state types.SelectionState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return types.SelectionState{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse project manifest").
			WithCause(err)
	}
	return state, nil
}

func (a ManifestFileAdapter) Save(state types.SelectionState) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to serialize project manifest").
			WithCause(err)
	}
	if err := os.WriteFile(a.Path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write project manifest").
			WithCause(err)
	}
	return nil
}

// DefaultSelectionState is the skeleton a new project starts from.
func DefaultSelectionState(name string) types.SelectionState {
	return types.SelectionState{
		Project: types.ProjectInfo{
			Name:            name,
			Version:         "0.1.0",
			PackageManager:  "uv",
			ContainerEngine: "docker",
		},
	}
}

var _ ports.ManifestPort = ManifestFileAdapter{}
