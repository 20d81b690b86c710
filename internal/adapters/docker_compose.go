package adapters

import (
	"context"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hyperstack/internal/ports"
	"hyperstack/internal/shared"
)

// ComposeFileName is the generated orchestration spec.  It is kept
// separate from any hand-written docker-compose.yml the project carries.
const ComposeFileName = "docker-compose.hsm.yml"

// DockerComposeAdapter drives `docker compose` against the generated
// spec file.  Config generation lives in compose_file.go.
type DockerComposeAdapter struct {
	ProjectRoot string
}

func NewDockerComposeAdapter(projectRoot string) DockerComposeAdapter {
	return DockerComposeAdapter{ProjectRoot: projectRoot}
}

func (a DockerComposeAdapter) composePath() string {
	return filepath.Join(a.ProjectRoot, ComposeFileName)
}

func (a DockerComposeAdapter) Up(ctx context.Context, services []string) error {
	args := []string{"compose", "-f", a.composePath(), "up", "-d"}
	args = append(args, services...)
	return a.run(ctx, args...)
}

func (a DockerComposeAdapter) Down(ctx context.Context) error {
	return a.run(ctx, "compose", "-f", a.composePath(), "down")
}

// RunningServices returns the service names docker compose reports as
// up.  Depending on the compose version the JSON output is either one
// array or one object per line; both shapes are handled.
func (a DockerComposeAdapter) RunningServices(ctx context.Context) ([]string, error) {
	cmd := exec.CommandContext(ctx, "docker", "compose", "-f", a.composePath(), "ps", "--format", "json")
	cmd.Dir = a.ProjectRoot
	output, err := cmd.Output()
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("docker compose ps failed").
			WithCause(err)
	}
	return parseComposePS(output)
}

func (a DockerComposeAdapter) run(ctx context.Context, args ...string) error {
	log.Ctx(ctx).Debug().Strs("args", args).Msg("running docker")
	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Dir = a.ProjectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("docker command failed").
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

type composePSEntry struct {
	Service string `json:"Service"`
	Name    string `json:"Name"`
}

func parseComposePS(output []byte) ([]string, error) {
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return nil, nil
	}
	var entries []composePSEntry
	if err := json.Unmarshal([]byte(trimmed), &entries); err == nil {
		return composeServiceNames(entries), nil
	}
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var entry composePSEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to parse docker compose ps output").
				WithCause(err)
		}
		entries = append(entries, entry)
	}
	return composeServiceNames(entries), nil
}

func composeServiceNames(entries []composePSEntry) []string {
	var names []string
	for _, entry := range entries {
		if entry.Service != "" {
			names = append(names, entry.Service)
			continue
		}
		if entry.Name != "" {
			names = append(names, entry.Name)
		}
	}
	return names
}

var _ ports.ContainerEnginePort = DockerComposeAdapter{}
