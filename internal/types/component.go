package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// StringList accepts either a YAML scalar or a YAML sequence, so
// registry authors can write `selection: foo` and `selection: [foo, bar]`
// interchangeably.
type StringList []string

func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		if strings.TrimSpace(single) == "" {
			*l = nil
			return nil
		}
		*l = StringList{single}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := value.Decode(&many); err != nil {
			return err
		}
		*l = many
		return nil
	default:
		return fmt.Errorf("expected scalar or sequence, got yaml kind %d", value.Kind)
	}
}

func (l StringList) MarshalYAML() (interface{}, error) {
	if len(l) == 1 {
		return l[0], nil
	}
	return []string(l), nil
}

// RuntimeSettings holds the orchestration fields shared by a service
// component and its source variants.  Variant lists are unioned with the
// common lists; variant env overrides common env key-for-key.
type RuntimeSettings struct {
	ContainerName  string            `yaml:"container_name,omitempty"`
	NetworkAliases []string          `yaml:"network_aliases,omitempty"`
	Ports          []string          `yaml:"ports,omitempty"`
	Volumes        []string          `yaml:"volumes,omitempty"`
	Env            map[string]string `yaml:"env,omitempty"`
}

type LocalSource struct {
	Path     string `yaml:"path"`
	Editable bool   `yaml:"editable,omitempty"`
}

type GitSource struct {
	URL          string `yaml:"url"`
	Ref          string `yaml:"ref,omitempty"`
	Subdirectory string `yaml:"subdirectory,omitempty"`
}

type PackageSource struct {
	Name      string `yaml:"name,omitempty"`
	Specifier string `yaml:"specifier,omitempty"`
}

type ImageSource struct {
	Ref string `yaml:"ref"`
}

type BuildSource struct {
	Context    string `yaml:"context"`
	Dockerfile string `yaml:"dockerfile,omitempty"`
}

// SourceVariant is a tagged union: exactly one of the pointer fields is
// set.  Runtime settings ride along for service variants and are merged
// with the component's common settings at materialization time.
type SourceVariant struct {
	Local   *LocalSource   `yaml:"local,omitempty"`
	Git     *GitSource     `yaml:"git,omitempty"`
	Package *PackageSource `yaml:"package,omitempty"`
	Image   *ImageSource   `yaml:"image,omitempty"`
	Build   *BuildSource   `yaml:"build,omitempty"`

	Runtime RuntimeSettings `yaml:"runtime,omitempty"`
}

// Kind reports which arm of the union is populated.
func (v SourceVariant) Kind() SourceType {
	switch {
	case v.Local != nil:
		return SourceTypeLocal
	case v.Git != nil:
		return SourceTypeGit
	case v.Package != nil:
		return SourceTypePackage
	case v.Image != nil:
		return SourceTypeImage
	case v.Build != nil:
		return SourceTypeBuild
	default:
		return SourceTypeNone
	}
}

func (v SourceVariant) armCount() int {
	count := 0
	if v.Local != nil {
		count++
	}
	if v.Git != nil {
		count++
	}
	if v.Package != nil {
		count++
	}
	if v.Image != nil {
		count++
	}
	if v.Build != nil {
		count++
	}
	return count
}

// Validate rejects variants with zero or multiple populated arms.
func (v SourceVariant) Validate() error {
	count := v.armCount()
	if count == 0 {
		return fmt.Errorf("source variant has no source")
	}
	if count > 1 {
		return fmt.Errorf("source variant has %d sources, expected exactly one", count)
	}
	return nil
}

type ComponentSources struct {
	Prod *SourceVariant `yaml:"prod,omitempty"`
	Dev  *SourceVariant `yaml:"dev,omitempty"`
}

// Implication is the value of an `implies` entry.  A bare entry (null or
// scalar) carries no parameters.
type Implication struct {
	Params map[string]StringList `yaml:"params,omitempty"`
}

func (i *Implication) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		return nil
	case yaml.ScalarNode:
		// Bare selection, e.g. `implies: {"service:router": ~}`.
		return nil
	case yaml.MappingNode:
		type plain Implication
		var p plain
		if err := value.Decode(&p); err != nil {
			return err
		}
		*i = Implication(p)
		return nil
	default:
		return fmt.Errorf("implication must be a mapping or bare, got yaml kind %d", value.Kind)
	}
}

type DeploymentProfile struct {
	Mode    ProfileMode `yaml:"mode"`
	Runtime string      `yaml:"runtime,omitempty"`
}

// ComponentDefinition is one registry entry: a library or a service with
// its prod/dev source variants, common orchestration settings, and the
// components it implies.  Immutable during a resolution pass.
type ComponentDefinition struct {
	Name        string        `yaml:"name"`
	Kind        ComponentKind `yaml:"kind"`
	Version     string        `yaml:"version,omitempty"`
	Description string        `yaml:"description,omitempty"`

	// Common orchestration settings for services, overlaid by the
	// chosen source variant's runtime settings.
	Common RuntimeSettings `yaml:",inline"`

	DeploymentProfiles map[string]DeploymentProfile `yaml:"deployment_profiles,omitempty"`

	Sources ComponentSources `yaml:"sources"`

	// Implies maps "<kind>:<name>" target keys to implications.
	Implies map[string]Implication `yaml:"implies,omitempty"`
}

// TargetKey identifies an implication target as "<kind>:<name>".
type TargetKey struct {
	Kind ComponentKind
	Name string
}

// ParseTargetKey splits an implies key of the form "<kind>:<name>".
func ParseTargetKey(raw string) (TargetKey, error) {
	kind, name, ok := strings.Cut(raw, ":")
	if !ok {
		return TargetKey{}, fmt.Errorf("implication target %q missing kind prefix", raw)
	}
	switch ComponentKind(kind) {
	case ComponentKindLibrary, ComponentKindService:
	default:
		return TargetKey{}, fmt.Errorf("implication target %q has unknown kind %q", raw, kind)
	}
	if strings.TrimSpace(name) == "" {
		return TargetKey{}, fmt.Errorf("implication target %q missing name", raw)
	}
	return TargetKey{Kind: ComponentKind(kind), Name: name}, nil
}

type GroupOption struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description,omitempty"`
	Implies     map[string]Implication `yaml:"implies,omitempty"`
}

// Group is a registry-defined set of related options with a selection
// strategy.
type Group struct {
	Name     string        `yaml:"name"`
	Kind     ComponentKind `yaml:"kind"`
	Strategy GroupStrategy `yaml:"strategy"`
	Options  []GroupOption `yaml:"options"`
	Default  StringList    `yaml:"default,omitempty"`
	Comment  string        `yaml:"comment,omitempty"`
}

// Option returns the named option, if present.
func (g Group) Option(name string) (GroupOption, bool) {
	for _, opt := range g.Options {
		if opt.Name == name {
			return opt, true
		}
	}
	return GroupOption{}, false
}
