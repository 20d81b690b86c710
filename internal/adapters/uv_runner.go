package adapters

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"

	"hyperstack/internal/ports"
	"hyperstack/internal/shared"
	"hyperstack/internal/types"
)

// UvAdapter drives the uv package manager.  The resolver hands it
// requirement strings; uv owns the actual dependency solving.
type UvAdapter struct {
	ProjectRoot string
}

func NewUvAdapter(projectRoot string) UvAdapter {
	return UvAdapter{ProjectRoot: projectRoot}
}

func (a UvAdapter) pyprojectPath() string {
	return filepath.Join(a.ProjectRoot, "pyproject.toml")
}

// baseArgs honors HSM_USE_SYSTEM=1, which makes uv operate on the
// system interpreter instead of the project venv.
func (a UvAdapter) baseArgs() []string {
	if os.Getenv("HSM_USE_SYSTEM") == "1" {
		return []string{"--system"}
	}
	return nil
}

// Sync rewrites [project].dependencies in pyproject.toml to the
// resolved requirement list, then runs `uv sync`.
func (a UvAdapter) Sync(ctx context.Context, requirements []types.Requirement, frozen bool) error {
	if err := a.writeDependencies(requirements); err != nil {
		return err
	}
	args := append(a.baseArgs(), "sync")
	if frozen {
		args = append(args, "--frozen")
	}
	return a.run(ctx, args...)
}

func (a UvAdapter) Lock(ctx context.Context) error {
	return a.run(ctx, append(a.baseArgs(), "lock")...)
}

// InitLibrary scaffolds a new library with `uv init --lib`.
func (a UvAdapter) InitLibrary(ctx context.Context, path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create library directory").
			WithCause(err)
	}
	args := append(a.baseArgs(), "init", "--lib")
	cmd := exec.CommandContext(ctx, "uv", args...)
	cmd.Dir = path
	if output, err := cmd.CombinedOutput(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("uv init failed").
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

// InstalledPackages returns the environment's package versions, keyed
// by PEP 503 normalized name.
func (a UvAdapter) InstalledPackages(ctx context.Context) (map[string]string, error) {
	cmd := exec.CommandContext(ctx, "uv", "pip", "list", "--format", "json")
	cmd.Dir = a.ProjectRoot
	output, err := cmd.Output()
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("uv pip list failed").
			WithCause(err)
	}
	var entries []struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	if err := json.Unmarshal(output, &entries); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to parse uv pip list output").
			WithCause(err)
	}
	installed := make(map[string]string, len(entries))
	for _, entry := range entries {
		installed[shared.NormalizePackageName(entry.Name)] = entry.Version
	}
	return installed, nil
}

func (a UvAdapter) writeDependencies(requirements []types.Requirement) error {
	document := map[string]interface{}{}
	if data, err := os.ReadFile(a.pyprojectPath()); err == nil {
		if err := toml.Unmarshal(data, &document); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to parse pyproject.toml").
				WithCause(err)
		}
	} else if !os.IsNotExist(err) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read pyproject.toml").
			WithCause(err)
	}

	project, ok := document["project"].(map[string]interface{})
	if !ok {
		project = map[string]interface{}{}
		document["project"] = project
	}
	deps := make([]string, 0, len(requirements))
	for _, req := range requirements {
		deps = append(deps, req.Spec)
	}
	project["dependencies"] = deps

	data, err := toml.Marshal(document)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to serialize pyproject.toml").
			WithCause(err)
	}
	return os.WriteFile(a.pyprojectPath(), data, 0644)
}

func (a UvAdapter) run(ctx context.Context, args ...string) error {
	log.Ctx(ctx).Debug().Strs("args", args).Msg("running uv")
	cmd := exec.CommandContext(ctx, "uv", args...)
	cmd.Dir = a.ProjectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("uv command failed").
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

var _ ports.PackageManagerPort = UvAdapter{}
