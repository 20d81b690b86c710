package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"hyperstack/internal/ports"
	"hyperstack/internal/types"
)

// Seed is one directly selected component: a standalone entry or a
// group's current choice, plus the option-level implications the group
// attaches to that choice.
type Seed struct {
	Name    string
	Implies map[string]types.Implication
}

// CollectSeeds flattens the selection state into ordered seeds: library
// groups, library standalone, service groups, service standalone; within
// a group, selection order.  Groups missing from the registry still seed
// their selections (the validator reports the miss, not the expander);
// only their option-level implications are lost.
func CollectSeeds(ctx context.Context, registry ports.RegistryPort, state types.SelectionState) []Seed {
	var seeds []Seed
	for _, section := range state.Sections() {
		for _, groupSel := range section.Groups {
			group, err := registry.GetGroup(groupSel.Group)
			for _, name := range groupSel.Selection {
				seed := Seed{Name: name}
				if err == nil {
					if opt, ok := group.Option(name); ok {
						seed.Implies = opt.Implies
					}
				}
				seeds = append(seeds, seed)
			}
			if err != nil {
				log.Ctx(ctx).Warn().
					Str("group", groupSel.Group).
					Msg("group not found in registry, option implications skipped")
			}
		}
		for _, standalone := range section.Standalone {
			seeds = append(seeds, Seed{Name: standalone.Name})
		}
	}
	return seeds
}

// ProfileFor returns the deployment-profile tag attached to the
// selection that owns the given component, if any.  Group entries are
// consulted before standalone entries.
func ProfileFor(state types.SelectionState, name string) string {
	for _, section := range state.Sections() {
		for _, groupSel := range section.Groups {
			for _, selected := range groupSel.Selection {
				if selected == name && groupSel.Profile != "" {
					return groupSel.Profile
				}
			}
		}
	}
	for _, section := range state.Sections() {
		for _, standalone := range section.Standalone {
			if standalone.Name == name && standalone.Profile != "" {
				return standalone.Profile
			}
		}
	}
	return ""
}
