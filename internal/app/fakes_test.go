package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hyperstack/internal/ports"
	"hyperstack/internal/types"
)

type fakeRegistry struct {
	components map[string]types.ComponentDefinition
	groups     map[string]types.Group
}

var _ ports.RegistryPort = (*fakeRegistry)(nil)
var _ ports.RegistryWriterPort = (*fakeRegistry)(nil)

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		components: map[string]types.ComponentDefinition{},
		groups:     map[string]types.Group{},
	}
}

func (f *fakeRegistry) GetComponent(name string) (types.ComponentDefinition, error) {
	def, ok := f.components[name]
	if !ok {
		return types.ComponentDefinition{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("component %s not found", name))
	}
	return def, nil
}

func (f *fakeRegistry) GetGroup(name string) (types.Group, error) {
	group, ok := f.groups[name]
	if !ok {
		return types.Group{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("group %s not found", name))
	}
	return group, nil
}

func (f *fakeRegistry) Search(query string) (ports.SearchResult, error) {
	var result ports.SearchResult
	for name, def := range f.components {
		if !strings.Contains(name, query) {
			continue
		}
		if def.Kind == types.ComponentKindService {
			result.Services = append(result.Services, name)
		} else {
			result.Libraries = append(result.Libraries, name)
		}
	}
	return result, nil
}

func (f *fakeRegistry) PutComponent(def types.ComponentDefinition) error {
	f.components[def.Name] = def
	return nil
}

func (f *fakeRegistry) PutGroup(group types.Group) error {
	f.groups[group.Name] = group
	return nil
}

func (f *fakeRegistry) Remove(name string) error {
	if _, ok := f.components[name]; ok {
		delete(f.components, name)
		return nil
	}
	if _, ok := f.groups[name]; ok {
		delete(f.groups, name)
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("%s not found", name))
}

func (f *fakeRegistry) AddGroupOption(groupName string, option types.GroupOption) error {
	group, err := f.GetGroup(groupName)
	if err != nil {
		return err
	}
	group.Options = append(group.Options, option)
	f.groups[groupName] = group
	return nil
}

func (f *fakeRegistry) RemoveGroupOption(groupName string, option string) error {
	group, err := f.GetGroup(groupName)
	if err != nil {
		return err
	}
	var kept []types.GroupOption
	for _, opt := range group.Options {
		if opt.Name != option {
			kept = append(kept, opt)
		}
	}
	group.Options = kept
	f.groups[groupName] = group
	return nil
}

type fakeManifest struct {
	state  types.SelectionState
	exists bool
	saves  int
}

var _ ports.ManifestPort = (*fakeManifest)(nil)

func (f *fakeManifest) Load() (types.SelectionState, error) { return f.state, nil }

func (f *fakeManifest) Save(state types.SelectionState) error {
	f.state = state
	f.exists = true
	f.saves++
	return nil
}

func (f *fakeManifest) Exists() bool { return f.exists }

type fakePackager struct {
	synced    []types.Requirement
	frozen    bool
	syncCalls int
	lockCalls int
	initPaths []string
	installed map[string]string
}

var _ ports.PackageManagerPort = (*fakePackager)(nil)

func (f *fakePackager) Sync(ctx context.Context, requirements []types.Requirement, frozen bool) error {
	f.synced = requirements
	f.frozen = frozen
	f.syncCalls++
	return nil
}

func (f *fakePackager) Lock(ctx context.Context) error {
	f.lockCalls++
	return nil
}

func (f *fakePackager) InitLibrary(ctx context.Context, path string) error {
	f.initPaths = append(f.initPaths, path)
	return nil
}

func (f *fakePackager) InstalledPackages(ctx context.Context) (map[string]string, error) {
	return f.installed, nil
}

type fakeContainers struct {
	generated [][]types.ServiceSpec
	upCalls   [][]string
	downCalls int
	running   []string
}

var _ ports.ContainerEnginePort = (*fakeContainers)(nil)

func (f *fakeContainers) GenerateConfig(services []types.ServiceSpec) error {
	f.generated = append(f.generated, services)
	return nil
}

func (f *fakeContainers) Up(ctx context.Context, services []string) error {
	f.upCalls = append(f.upCalls, services)
	return nil
}

func (f *fakeContainers) Down(ctx context.Context) error {
	f.downCalls++
	return nil
}

func (f *fakeContainers) RunningServices(ctx context.Context) ([]string, error) {
	return f.running, nil
}

type fakeReport struct {
	plans      []types.Plan
	components [][]ports.ComponentReport
}

var _ ports.ReportPort = (*fakeReport)(nil)

func (f *fakeReport) WriteResolutionReport(plan types.Plan, components []ports.ComponentReport) error {
	f.plans = append(f.plans, plan)
	f.components = append(f.components, components)
	return nil
}

// testHarness bundles a Service with the fakes behind it.
type testHarness struct {
	service    Service
	registry   *fakeRegistry
	manifest   *fakeManifest
	packager   *fakePackager
	containers *fakeContainers
	report     *fakeReport
}

func newTestHarness(projectRoot string) *testHarness {
	registry := newFakeRegistry()
	manifest := &fakeManifest{}
	packager := &fakePackager{}
	containers := &fakeContainers{}
	report := &fakeReport{}
	return &testHarness{
		service: Service{
			Registry:       registry,
			RegistryWriter: registry,
			Manifest:       manifest,
			Packages:       packager,
			Containers:     containers,
			Report:         report,
			ProjectRoot:    projectRoot,
			RegistryRoot:   projectRoot,
			Clock:          func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
		},
		registry:   registry,
		manifest:   manifest,
		packager:   packager,
		containers: containers,
		report:     report,
	}
}
