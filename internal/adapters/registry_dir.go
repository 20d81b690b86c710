package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"hyperstack/internal/ports"
	"hyperstack/internal/types"
)

const (
	librariesDir     = "libraries"
	servicesDir      = "services"
	libraryGroupsDir = "library_groups"
	serviceGroupsDir = "service_groups"
)

// RegistryDirAdapter reads and writes the on-disk registry: one YAML
// file per component under a per-category subdirectory.
type RegistryDirAdapter struct {
	Root string
}

func NewRegistryDirAdapter(root string) RegistryDirAdapter {
	return RegistryDirAdapter{Root: root}
}

// EnsureLayout creates the four category directories.
func (a RegistryDirAdapter) EnsureLayout() error {
	for _, category := range []string{librariesDir, servicesDir, libraryGroupsDir, serviceGroupsDir} {
		if err := os.MkdirAll(filepath.Join(a.Root, category), 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create registry directory").
				WithCause(err)
		}
	}
	return nil
}

func (a RegistryDirAdapter) GetComponent(name string) (types.ComponentDefinition, error) {
	for _, category := range []string{librariesDir, servicesDir} {
		path := filepath.Join(a.Root, category, name+".yaml")
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return types.ComponentDefinition{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read component definition").
				WithCause(err)
		}
		var def types.ComponentDefinition
		if err := yaml.Unmarshal(data, &def); err != nil {
			return types.ComponentDefinition{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("failed to parse component definition %s", name)).
				WithCause(err)
		}
		if def.Kind == "" {
			if category == librariesDir {
				def.Kind = types.ComponentKindLibrary
			} else {
				def.Kind = types.ComponentKindService
			}
		}
		return def, nil
	}
	return types.ComponentDefinition{}, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("component %s not found in registry", name))
}

func (a RegistryDirAdapter) GetGroup(name string) (types.Group, error) {
	for _, category := range []string{libraryGroupsDir, serviceGroupsDir} {
		path := filepath.Join(a.Root, category, name+".yaml")
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return types.Group{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read group definition").
				WithCause(err)
		}
		var group types.Group
		if err := yaml.Unmarshal(data, &group); err != nil {
			return types.Group{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("failed to parse group definition %s", name)).
				WithCause(err)
		}
		if group.Kind == "" {
			if category == libraryGroupsDir {
				group.Kind = types.ComponentKindLibrary
			} else {
				group.Kind = types.ComponentKindService
			}
		}
		return group, nil
	}
	return types.Group{}, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("group %s not found in registry", name))
}

// Search matches the query against file stems, case-insensitively.
func (a RegistryDirAdapter) Search(query string) (ports.SearchResult, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	result := ports.SearchResult{}
	categories := []struct {
		dir  string
		sink *[]string
	}{
		{librariesDir, &result.Libraries},
		{servicesDir, &result.Services},
		{libraryGroupsDir, &result.Groups},
		{serviceGroupsDir, &result.Groups},
	}
	for _, category := range categories {
		entries, err := os.ReadDir(filepath.Join(a.Root, category.dir))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return ports.SearchResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read registry directory").
				WithCause(err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
				continue
			}
			stem := strings.TrimSuffix(entry.Name(), ".yaml")
			if strings.Contains(strings.ToLower(stem), query) {
				*category.sink = append(*category.sink, stem)
			}
		}
	}
	sort.Strings(result.Libraries)
	sort.Strings(result.Services)
	sort.Strings(result.Groups)
	return result, nil
}

func (a RegistryDirAdapter) PutComponent(def types.ComponentDefinition) error {
	category := librariesDir
	if def.Kind == types.ComponentKindService {
		category = servicesDir
	}
	return a.write(category, def.Name, def)
}

func (a RegistryDirAdapter) PutGroup(group types.Group) error {
	category := libraryGroupsDir
	if group.Kind == types.ComponentKindService {
		category = serviceGroupsDir
	}
	return a.write(category, group.Name, group)
}

// Remove deletes the named entry from every category it appears in.
func (a RegistryDirAdapter) Remove(name string) error {
	found := false
	for _, category := range []string{librariesDir, servicesDir, libraryGroupsDir, serviceGroupsDir} {
		path := filepath.Join(a.Root, category, name+".yaml")
		err := os.Remove(path)
		if err == nil {
			found = true
			continue
		}
		if !os.IsNotExist(err) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to remove registry entry").
				WithCause(err)
		}
	}
	if !found {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("component %s not found in registry", name))
	}
	return nil
}

func (a RegistryDirAdapter) AddGroupOption(groupName string, option types.GroupOption) error {
	group, err := a.GetGroup(groupName)
	if err != nil {
		return err
	}
	if _, ok := group.Option(option.Name); ok {
		return nil
	}
	group.Options = append(group.Options, option)
	return a.PutGroup(group)
}

func (a RegistryDirAdapter) RemoveGroupOption(groupName string, option string) error {
	group, err := a.GetGroup(groupName)
	if err != nil {
		return err
	}
	kept := group.Options[:0]
	removed := false
	for _, opt := range group.Options {
		if opt.Name == option {
			removed = true
			continue
		}
		kept = append(kept, opt)
	}
	if !removed {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("option %s not found in group %s", option, groupName))
	}
	group.Options = kept
	return a.PutGroup(group)
}

func (a RegistryDirAdapter) write(category string, name string, value interface{}) error {
	if strings.TrimSpace(name) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("registry entry name is empty")
	}
	dir := filepath.Join(a.Root, category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create registry directory").
			WithCause(err)
	}
	data, err := yaml.Marshal(value)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to serialize registry entry").
			WithCause(err)
	}
	return os.WriteFile(filepath.Join(dir, name+".yaml"), data, 0644)
}

var _ ports.RegistryPort = RegistryDirAdapter{}
var _ ports.RegistryWriterPort = RegistryDirAdapter{}
