package core

import "hyperstack/internal/types"

// ModeResolver answers whether a component runs its dev or prod source
// variant.  Precedence, first explicit match wins: standalone entry
// mode, then mode of any group whose current selection includes the
// name, then the project default, then prod.  A name can appear in
// several locations at once, so every location is checked even when an
// earlier structural match carries no explicit mode.
type ModeResolver struct {
	State types.SelectionState
}

func NewModeResolver(state types.SelectionState) ModeResolver {
	return ModeResolver{State: state}
}

func (r ModeResolver) ModeOf(name string) types.Mode {
	for _, section := range r.State.Sections() {
		for _, standalone := range section.Standalone {
			if standalone.Name == name && standalone.Mode != "" {
				return standalone.Mode
			}
		}
	}
	for _, section := range r.State.Sections() {
		for _, groupSel := range section.Groups {
			if groupSel.Mode == "" {
				continue
			}
			for _, selected := range groupSel.Selection {
				if selected == name {
					return groupSel.Mode
				}
			}
		}
	}
	if r.State.Project.Mode != "" {
		return r.State.Project.Mode
	}
	return types.ModeProd
}
