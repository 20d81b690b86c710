package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hyperstack/internal/ports"
	"hyperstack/internal/types"
)

// fakeRegistry is an in-memory RegistryPort for tests.  Lookup counts
// let cache tests and best-effort tests observe access patterns.
type fakeRegistry struct {
	components map[string]types.ComponentDefinition
	groups     map[string]types.Group
	lookups    map[string]int
}

var _ ports.RegistryPort = (*fakeRegistry)(nil)

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		components: map[string]types.ComponentDefinition{},
		groups:     map[string]types.Group{},
		lookups:    map[string]int{},
	}
}

func (f *fakeRegistry) addComponent(def types.ComponentDefinition) {
	f.components[def.Name] = def
}

func (f *fakeRegistry) addGroup(group types.Group) {
	f.groups[group.Name] = group
}

func (f *fakeRegistry) GetComponent(name string) (types.ComponentDefinition, error) {
	f.lookups[name]++
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
	for name := range f.groups {
		if strings.Contains(name, query) {
			result.Groups = append(result.Groups, name)
		}
	}
	return result, nil
}

func library(name string, implies map[string]types.Implication) types.ComponentDefinition {
	return types.ComponentDefinition{
		Name: name,
		Kind: types.ComponentKindLibrary,
		Sources: types.ComponentSources{
			Prod: &types.SourceVariant{Package: &types.PackageSource{}},
		},
		Implies: implies,
	}
}

func service(name string, implies map[string]types.Implication) types.ComponentDefinition {
	return types.ComponentDefinition{
		Name: name,
		Kind: types.ComponentKindService,
		Sources: types.ComponentSources{
			Prod: &types.SourceVariant{Image: &types.ImageSource{Ref: name + ":latest"}},
		},
		Implies: implies,
	}
}
