package types

// ProjectInfo is the project block of the hsm.yaml manifest.  Mode, when
// set, is the global default mode for every component that carries no
// explicit override.
type ProjectInfo struct {
	Name            string `yaml:"name"`
	Version         string `yaml:"version"`
	PackageManager  string `yaml:"package_manager,omitempty"`
	ContainerEngine string `yaml:"container_engine,omitempty"`
	Mode            Mode   `yaml:"mode,omitempty"`
}

// GroupSelection records the project's current choice within a registry
// group.  Selection holds one name under 1-of-N and any number under
// M-of-N.
type GroupSelection struct {
	Group     string        `yaml:"group"`
	Strategy  GroupStrategy `yaml:"strategy,omitempty"`
	Selection StringList    `yaml:"selection,omitempty"`
	Mode      Mode          `yaml:"mode,omitempty"`
	Profile   string        `yaml:"profile,omitempty"`
}

type StandaloneSelection struct {
	Name    string `yaml:"name"`
	Mode    Mode   `yaml:"mode,omitempty"`
	Profile string `yaml:"profile,omitempty"`
}

// SelectionSection groups the selections of one component kind.  Slices
// keep manifest file order so resolution output is deterministic.
type SelectionSection struct {
	Groups     []GroupSelection      `yaml:"groups,omitempty"`
	Standalone []StandaloneSelection `yaml:"standalone,omitempty"`
}

// SelectionState is the project's full declarative selection: what the
// hsm.yaml manifest holds between runs.
type SelectionState struct {
	Project      ProjectInfo      `yaml:"project"`
	Dependencies SelectionSection `yaml:"dependencies,omitempty"`
	Services     SelectionSection `yaml:"services,omitempty"`
}

// Sections returns both sections in kind order: libraries first.
func (s SelectionState) Sections() []SelectionSection {
	return []SelectionSection{s.Dependencies, s.Services}
}

// GroupSelectionFor returns the group entry with the given group name,
// searching dependencies then services.
func (s *SelectionState) GroupSelectionFor(group string) (*GroupSelection, bool) {
	for _, section := range []*SelectionSection{&s.Dependencies, &s.Services} {
		for i := range section.Groups {
			if section.Groups[i].Group == group {
				return &section.Groups[i], true
			}
		}
	}
	return nil, false
}

// StandaloneFor returns the standalone entry with the given component
// name, searching dependencies then services.
func (s *SelectionState) StandaloneFor(name string) (*StandaloneSelection, bool) {
	for _, section := range []*SelectionSection{&s.Dependencies, &s.Services} {
		for i := range section.Standalone {
			if section.Standalone[i].Name == name {
				return &section.Standalone[i], true
			}
		}
	}
	return nil, false
}
