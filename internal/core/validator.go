package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hyperstack/internal/ports"
	"hyperstack/internal/types"
)

// Validator performs the referential-integrity dry run that gates a
// real sync.  It collects every violation instead of stopping at the
// first, so one check run reports the full repair list.
type Validator struct {
	Registry ports.RegistryPort
}

func NewValidator(registry ports.RegistryPort) Validator {
	return Validator{Registry: registry}
}

// Validate checks every selection-state reference against the registry.
// An empty result means the state is fully resolvable.
func (v Validator) Validate(ctx context.Context, state types.SelectionState) []types.ValidationIssue {
	var issues []types.ValidationIssue

	sections := []struct {
		kind    types.ComponentKind
		section types.SelectionSection
	}{
		{types.ComponentKindLibrary, state.Dependencies},
		{types.ComponentKindService, state.Services},
	}

	for _, entry := range sections {
		for _, groupSel := range entry.section.Groups {
			group, err := v.Registry.GetGroup(groupSel.Group)
			groupKnown := err == nil
			if !groupKnown {
				issues = append(issues, types.ValidationIssue{
					Code:    types.IssueNotFound,
					Subject: groupSel.Group,
					Detail:  fmt.Sprintf("%s group not found in registry", entry.kind),
				})
			}
			if groupKnown && group.Strategy == types.StrategyExactlyOne && len(groupSel.Selection) == 0 {
				issues = append(issues, types.ValidationIssue{
					Code:    types.IssueEmptySelection,
					Subject: groupSel.Group,
					Detail:  "1-of-N group has no selection",
				})
			}
			for _, selected := range groupSel.Selection {
				if groupKnown {
					if _, ok := group.Option(selected); !ok {
						issues = append(issues, types.ValidationIssue{
							Code:    types.IssueInvalidSelection,
							Subject: selected,
							Detail:  fmt.Sprintf("not an option of group %s", groupSel.Group),
						})
					}
				}
				issues = append(issues, v.checkComponent(selected, fmt.Sprintf("selected in group %s", groupSel.Group))...)
			}
		}
		for _, standalone := range entry.section.Standalone {
			issues = append(issues, v.checkComponent(standalone.Name, "standalone entry")...)
		}
	}

	log.Ctx(ctx).Debug().Int("issues", len(issues)).Msg("validation completed")
	return issues
}

func (v Validator) checkComponent(name string, context string) []types.ValidationIssue {
	_, err := v.Registry.GetComponent(name)
	if err == nil {
		return nil
	}
	if errbuilder.CodeOf(err) == errbuilder.CodeNotFound {
		return []types.ValidationIssue{{
			Code:    types.IssueNotFound,
			Subject: name,
			Detail:  fmt.Sprintf("component not found in registry (%s)", context),
		}}
	}
	return []types.ValidationIssue{{
		Code:    types.IssueNotFound,
		Subject: name,
		Detail:  fmt.Sprintf("registry lookup failed (%s): %v", context, err),
	}}
}
