package app

import (
	"context"

	"hyperstack/internal/core"
	"hyperstack/internal/types"
)

// Plan runs a full resolution pass without touching any external
// tooling: selection collection, implication expansion, mode
// resolution, materialization.  It does not gate on validation; the
// plan is best-effort and `Check` is the explicit completeness gate.
func (s Service) Plan(ctx context.Context) (PlanResult, error) {
	state, err := s.Manifest.Load()
	if err != nil {
		return PlanResult{}, err
	}
	plan, summaries := s.resolve(ctx, state)
	return PlanResult{
		ProjectName: state.Project.Name,
		Plan:        plan,
		Components:  summaries,
	}, nil
}

// resolve is the shared pipeline behind Plan, Sync, and Export.
func (s Service) resolve(ctx context.Context, state types.SelectionState) (types.Plan, []ComponentSummary) {
	seeds := core.CollectSeeds(ctx, s.Registry, state)
	expansion := core.NewExpander(s.Registry).Expand(ctx, seeds)
	plan := core.NewPlanner(s.Registry, s.ProjectRoot).Plan(ctx, state, expansion)
	return plan, s.summarize(state, expansion)
}

func (s Service) summarize(state types.SelectionState, expansion core.Expansion) []ComponentSummary {
	modes := core.NewModeResolver(state)
	var summaries []ComponentSummary
	for _, name := range expansion.Components() {
		summary := ComponentSummary{Name: name, Mode: modes.ModeOf(name)}
		if def, err := s.Registry.GetComponent(name); err == nil {
			summary.Kind = def.Kind
			if variant := core.EffectiveVariant(def, summary.Mode); variant != nil {
				summary.Source = variant.Kind()
			}
		}
		bag := expansion.Params(name)
		if bag.Len() > 0 {
			summary.Params = map[string][]string{}
			for _, key := range bag.Keys() {
				summary.Params[key] = bag.Values(key)
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
