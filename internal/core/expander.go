package core

import (
	"context"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hyperstack/internal/ports"
	"hyperstack/internal/types"
)

// maxVisits bounds how often a single component is reprocessed.  A
// well-formed implication graph converges long before this; the cap only
// exists to break pathological graphs whose parameter bags keep growing
// each other.
const maxVisits = 32

// Expansion is the transitive closure of one selection pass: every
// component reached directly or by implication, in first-seen order,
// with its merged parameter bag.  Built fresh per pass, never persisted.
type Expansion struct {
	order []string
	bags  map[string]*types.ParamBag
}

// Components returns the expanded component names in first-seen order.
func (e Expansion) Components() []string {
	return append([]string(nil), e.order...)
}

// Params returns the merged parameter bag for a component.
func (e Expansion) Params(name string) *types.ParamBag {
	if bag, ok := e.bags[name]; ok {
		return bag
	}
	return types.NewParamBag()
}

// Contains reports whether the expansion reached the given component.
func (e Expansion) Contains(name string) bool {
	_, ok := e.bags[name]
	return ok
}

// Expander computes the transitive closure of a seed set under the
// registry's `implies` edges, merging parameters along the way.
type Expander struct {
	Registry ports.RegistryPort
}

func NewExpander(registry ports.RegistryPort) Expander {
	return Expander{Registry: registry}
}

// Expand runs the worklist to a fixpoint.  Every selection that names a
// target, directly or through implications, contributes to that target's
// single merged bag; a target is re-enqueued only when its bag actually
// grows, so second-order implications observe updated parameters and the
// loop terminates on parameter-stable graphs.  Components absent from
// the registry are skipped silently: resolution is best-effort, the
// validator is the completeness gate.
func (x Expander) Expand(ctx context.Context, seeds []Seed) Expansion {
	result := Expansion{bags: map[string]*types.ParamBag{}}
	var queue []string
	visits := map[string]int{}

	enqueue := func(name string) {
		if _, ok := result.bags[name]; !ok {
			result.bags[name] = types.NewParamBag()
			result.order = append(result.order, name)
		}
		queue = append(queue, name)
	}

	for _, seed := range seeds {
		enqueue(seed.Name)
		for _, key := range sortedImplyKeys(seed.Implies) {
			target, err := types.ParseTargetKey(key)
			if err != nil {
				log.Ctx(ctx).Warn().Str("target", key).Err(err).Msg("skipping malformed implication")
				continue
			}
			isNew := !result.Contains(target.Name)
			if isNew {
				result.bags[target.Name] = types.NewParamBag()
				result.order = append(result.order, target.Name)
			}
			grew := result.bags[target.Name].Merge(seed.Implies[key].Params)
			if isNew || grew {
				queue = append(queue, target.Name)
			}
		}
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		visits[name]++
		if visits[name] > maxVisits {
			log.Ctx(ctx).Warn().
				Str("component", name).
				Int("visits", visits[name]).
				Msg("implication revisit cap reached, leaving last merged state")
			continue
		}

		def, err := x.Registry.GetComponent(name)
		if err != nil {
			if errbuilder.CodeOf(err) == errbuilder.CodeNotFound {
				log.Ctx(ctx).Debug().Str("component", name).Msg("component not in registry, no implications to follow")
				continue
			}
			log.Ctx(ctx).Warn().Str("component", name).Err(err).Msg("registry lookup failed during expansion")
			continue
		}

		for _, key := range sortedImplyKeys(def.Implies) {
			target, err := types.ParseTargetKey(key)
			if err != nil {
				log.Ctx(ctx).Warn().
					Str("component", name).
					Str("target", key).
					Err(err).
					Msg("skipping malformed implication")
				continue
			}
			isNew := !result.Contains(target.Name)
			if isNew {
				result.bags[target.Name] = types.NewParamBag()
				result.order = append(result.order, target.Name)
			}
			grew := result.bags[target.Name].Merge(def.Implies[key].Params)
			if isNew || grew {
				queue = append(queue, target.Name)
			}
		}
	}

	log.Ctx(ctx).Debug().Int("components", len(result.order)).Msg("expansion completed")
	return result
}

func sortedImplyKeys(implies map[string]types.Implication) []string {
	keys := make([]string, 0, len(implies))
	for key := range implies {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
