package app

import (
	"context"

	"hyperstack/internal/core"
	"hyperstack/internal/types"
)

// Status builds the tree-shaped view of the current stack: groups with
// their selections, standalone entries, and the mode every component
// resolves to.
func (s Service) Status(ctx context.Context) (StatusResult, error) {
	state, err := s.Manifest.Load()
	if err != nil {
		return StatusResult{}, err
	}
	modes := core.NewModeResolver(state)
	return StatusResult{
		Project:      state.Project,
		Dependencies: statusSection(state.Dependencies, modes),
		Services:     statusSection(state.Services, modes),
	}, nil
}

func statusSection(section types.SelectionSection, modes core.ModeResolver) StatusSection {
	out := StatusSection{}
	for _, groupSel := range section.Groups {
		group := StatusGroup{
			Group:    groupSel.Group,
			Strategy: groupSel.Strategy,
			Profile:  groupSel.Profile,
		}
		for _, name := range groupSel.Selection {
			group.Selection = append(group.Selection, StatusEntry{
				Name: name,
				Mode: modes.ModeOf(name),
			})
		}
		out.Groups = append(out.Groups, group)
	}
	for _, standalone := range section.Standalone {
		out.Standalone = append(out.Standalone, StatusEntry{
			Name: standalone.Name,
			Mode: modes.ModeOf(standalone.Name),
		})
	}
	return out
}
