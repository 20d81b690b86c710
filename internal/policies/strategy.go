package policies

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hyperstack/internal/types"
)

// ApplySelection enforces a group's strategy at the mutation boundary:
// under 1-of-N the new option replaces the current selection, under
// M-of-N it accumulates.  Selecting an option the group does not declare
// is rejected here, before it ever reaches the resolver.
func ApplySelection(group types.Group, current types.StringList, option string) (types.StringList, error) {
	if _, ok := group.Option(option); !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("option %s is not declared by group %s", option, group.Name))
	}
	switch group.Strategy {
	case types.StrategyExactlyOne:
		return types.StringList{option}, nil
	case types.StrategyAnySubset:
		for _, name := range current {
			if name == option {
				return current, nil
			}
		}
		return append(append(types.StringList{}, current...), option), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("group %s has unknown strategy %s", group.Name, group.Strategy))
	}
}

// RemoveSelection drops an option from a group's current selection.
// Removing the sole selection of a 1-of-N group empties it; the caller
// decides whether to drop the group entry entirely.
func RemoveSelection(group types.Group, current types.StringList, option string) (types.StringList, error) {
	found := false
	var out types.StringList
	for _, name := range current {
		if name == option {
			found = true
			continue
		}
		out = append(out, name)
	}
	if !found {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("option %s is not selected in group %s", option, group.Name))
	}
	return out, nil
}
