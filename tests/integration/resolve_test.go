package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"hyperstack/internal/adapters"
	"hyperstack/internal/app"
	"hyperstack/internal/ports"
	"hyperstack/internal/types"
	"hyperstack/tests/testutil"
)

// stubPackager satisfies the package manager port without shelling out
// to uv; the library requirement handling is exercised separately.
type stubPackager struct {
	synced []types.Requirement
}

var _ ports.PackageManagerPort = (*stubPackager)(nil)

func (p *stubPackager) Sync(ctx context.Context, requirements []types.Requirement, frozen bool) error {
	p.synced = requirements
	return nil
}

func (p *stubPackager) Lock(ctx context.Context) error                { return nil }
func (p *stubPackager) InitLibrary(ctx context.Context, path string) error { return nil }
func (p *stubPackager) InstalledPackages(ctx context.Context) (map[string]string, error) {
	return nil, nil
}

func fixtureService(t *testing.T) (app.Service, *stubPackager, string) {
	t.Helper()
	projectRoot := t.TempDir()
	registryRoot := filepath.Join(projectRoot, "hsm-registry")

	testutil.WriteRegistryEntry(t, registryRoot, "libraries", "zenoh", `
name: zenoh
kind: library
version: 1.0.0
sources:
  prod:
    package:
      name: eclipse-zenoh
      specifier: "==1.0.0"
  dev:
    local:
      path: libs/zenoh
      editable: true
implies:
  "service:zenoh-router":
    params:
      mode: peer
`)
	testutil.WriteRegistryEntry(t, registryRoot, "libraries", "imu-driver", `
name: imu-driver
kind: library
sources:
  prod:
    package:
      specifier: ">=0.4"
implies:
  "service:zenoh-router":
    params:
      topics: imu
`)
	testutil.WriteRegistryEntry(t, registryRoot, "services", "zenoh-router", `
name: zenoh-router
kind: service
container_name: zenoh
ports: ["7447:7447"]
env:
  ZENOH_MODE: ${HSM_MERGED_PARAMS.mode}
  ZENOH_TOPICS: ${HSM_MERGED_PARAMS.topics}
sources:
  prod:
    image:
      ref: eclipse/zenoh:1.0
`)
	testutil.WriteRegistryEntry(t, registryRoot, "library_groups", "messaging", `
name: messaging
kind: library
strategy: 1-of-N
options:
  - name: zenoh
  - name: mqtt
default: zenoh
`)
	testutil.WriteManifest(t, projectRoot, `
project:
  name: rover
  version: 0.1.0
  package_manager: uv
  container_engine: docker
dependencies:
  groups:
    - group: messaging
      strategy: 1-of-N
      selection: zenoh
  standalone:
    - name: imu-driver
`)

	packager := &stubPackager{}
	registry := adapters.NewRegistryDirAdapter(registryRoot)
	service := app.Service{
		Registry:       registry,
		RegistryWriter: registry,
		Manifest:       adapters.NewManifestFileAdapter(projectRoot),
		Packages:       packager,
		Containers:     adapters.NewDockerComposeAdapter(projectRoot),
		Report:         adapters.NewReportFileAdapter(projectRoot, func() time.Time { return time.Unix(0, 0).UTC() }),
		ProjectRoot:    projectRoot,
		RegistryRoot:   registryRoot,
		Clock:          time.Now,
	}
	return service, packager, projectRoot
}

func TestResolveAgainstDirectoryRegistry(t *testing.T) {
	service, _, _ := fixtureService(t)
	ctx := context.Background()

	result, err := service.Plan(ctx)
	require.NoError(t, err)

	assert.Equal(t, "rover", result.ProjectName)
	assert.Equal(t, []string{"eclipse-zenoh==1.0.0", "imu-driver>=0.4"}, result.Plan.RequirementStrings())

	require.Len(t, result.Plan.Services, 1)
	router := result.Plan.Services[0]
	assert.Equal(t, "zenoh", router.ContainerName)
	assert.Equal(t, "eclipse/zenoh:1.0", router.Image)
	assert.Equal(t, "peer", router.Env["ZENOH_MODE"])
	assert.Equal(t, "imu", router.Env["ZENOH_TOPICS"])
}

func TestResolveIsDeterministicAcrossPasses(t *testing.T) {
	service, _, projectRoot := fixtureService(t)
	ctx := context.Background()

	first, err := service.Sync(ctx, app.SyncRequest{})
	require.NoError(t, err)
	composeFirst, err := os.ReadFile(filepath.Join(projectRoot, adapters.ComposeFileName))
	require.NoError(t, err)
	reportFirst, err := os.ReadFile(filepath.Join(projectRoot, adapters.ReportFileName))
	require.NoError(t, err)

	second, err := service.Sync(ctx, app.SyncRequest{})
	require.NoError(t, err)
	composeSecond, err := os.ReadFile(filepath.Join(projectRoot, adapters.ComposeFileName))
	require.NoError(t, err)
	reportSecond, err := os.ReadFile(filepath.Join(projectRoot, adapters.ReportFileName))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, composeFirst, composeSecond)
	assert.Equal(t, reportFirst, reportSecond)
}

func TestSyncWritesComposeAndReport(t *testing.T) {
	service, packager, projectRoot := fixtureService(t)
	ctx := context.Background()

	result, err := service.Sync(ctx, app.SyncRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Requirements)
	assert.Equal(t, 1, result.Services)
	require.Len(t, packager.synced, 2)

	data, err := os.ReadFile(filepath.Join(projectRoot, adapters.ComposeFileName))
	require.NoError(t, err)
	var compose struct {
		Services map[string]struct {
			Image       string            `yaml:"image"`
			Environment map[string]string `yaml:"environment"`
		} `yaml:"services"`
	}
	require.NoError(t, yaml.Unmarshal(data, &compose))
	require.Contains(t, compose.Services, "zenoh-router")
	assert.Equal(t, "peer", compose.Services["zenoh-router"].Environment["ZENOH_MODE"])

	require.FileExists(t, filepath.Join(projectRoot, adapters.ReportFileName))
}

func TestCheckFailsOnDanglingSelection(t *testing.T) {
	service, _, projectRoot := fixtureService(t)
	ctx := context.Background()
	testutil.WriteManifest(t, projectRoot, `
project:
  name: rover
  version: 0.1.0
dependencies:
  groups:
    - group: messaging
      selection: zenoh
  standalone:
    - name: vanished-lib
`)

	result, err := service.Check(ctx)
	require.Error(t, err)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, types.IssueNotFound, result.Issues[0].Code)
	assert.Equal(t, "vanished-lib", result.Issues[0].Subject)

	// A failing check also blocks sync.
	_, err = service.Sync(ctx, app.SyncRequest{})
	assert.Error(t, err)
}

func TestDevModeSwitchesLibraryToEditablePath(t *testing.T) {
	service, _, projectRoot := fixtureService(t)
	ctx := context.Background()
	testutil.WriteManifest(t, projectRoot, `
project:
  name: rover
  version: 0.1.0
  mode: dev
dependencies:
  groups:
    - group: messaging
      selection: zenoh
`)

	result, err := service.Plan(ctx)
	require.NoError(t, err)

	require.Len(t, result.Plan.Requirements, 1)
	wantPath := filepath.ToSlash(filepath.Join(projectRoot, "libs/zenoh"))
	assert.Equal(t, "zenoh @ file://"+wantPath, result.Plan.Requirements[0].Spec)
}

func TestExportWritesPlainRequirements(t *testing.T) {
	service, _, projectRoot := fixtureService(t)

	result, err := service.Export(context.Background(), app.ExportRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Requirements)

	data, err := os.ReadFile(filepath.Join(projectRoot, "requirements.txt"))
	require.NoError(t, err)
	assert.Equal(t, "eclipse-zenoh==1.0.0\nimu-driver>=0.4\n", string(data))
}
