package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hyperstack/internal/policies"
	"hyperstack/internal/ports"
	"hyperstack/internal/types"
)

// paramPlaceholderPrefix namespaces the planner's own placeholder
// tokens.  Any other ${...} token in an env value is left for the
// container engine's interpolation; the planner never substitutes
// ambient environment variables.
const paramPlaceholderPrefix = "${HSM_MERGED_PARAMS."

// Planner turns an expansion into the two materialization artifacts:
// a requirement list for the package manager and service specs for the
// container engine.
type Planner struct {
	Registry    ports.RegistryPort
	ProjectRoot string
}

func NewPlanner(registry ports.RegistryPort, projectRoot string) Planner {
	return Planner{Registry: registry, ProjectRoot: projectRoot}
}

// Plan walks the expansion in first-seen order and materializes every
// component exactly once.  Components missing from the registry, and
// components whose effective mode has no source variant, are skipped:
// the plan is best-effort, completeness is the validator's concern.
func (p Planner) Plan(ctx context.Context, state types.SelectionState, expansion Expansion) types.Plan {
	modes := NewModeResolver(state)
	plan := types.Plan{}
	seenRequirements := map[string]struct{}{}
	seenServices := map[string]struct{}{}

	for _, name := range expansion.Components() {
		def, err := p.Registry.GetComponent(name)
		if err != nil {
			if errbuilder.CodeOf(err) == errbuilder.CodeNotFound {
				log.Ctx(ctx).Warn().Str("component", name).Msg("component not found in registry, omitted from plan")
			} else {
				log.Ctx(ctx).Warn().Str("component", name).Err(err).Msg("registry lookup failed, omitted from plan")
			}
			continue
		}

		mode := modes.ModeOf(name)
		variant := EffectiveVariant(def, mode)
		if variant == nil {
			log.Ctx(ctx).Warn().
				Str("component", name).
				Str("mode", string(mode)).
				Msg("component has no usable source variant, omitted from plan")
			continue
		}

		switch def.Kind {
		case types.ComponentKindLibrary:
			if _, ok := seenRequirements[name]; ok {
				continue
			}
			req, ok, err := RequirementFor(def, *variant, p.ProjectRoot)
			if err != nil {
				log.Ctx(ctx).Warn().Str("component", name).Err(err).Msg("requirement rendering failed, omitted from plan")
				continue
			}
			if !ok {
				continue
			}
			seenRequirements[name] = struct{}{}
			plan.Requirements = append(plan.Requirements, req)
		case types.ComponentKindService:
			if _, ok := seenServices[name]; ok {
				continue
			}
			if p.externalProfile(ctx, state, def) {
				continue
			}
			spec, ok := p.serviceSpec(ctx, def, *variant, expansion.Params(name))
			if !ok {
				continue
			}
			seenServices[name] = struct{}{}
			plan.Services = append(plan.Services, spec)
		default:
			log.Ctx(ctx).Warn().
				Str("component", name).
				Str("kind", string(def.Kind)).
				Msg("component has unknown kind, omitted from plan")
		}
	}
	return plan
}

// externalProfile reports whether the selection attaches a deployment
// profile that the definition declares external.  External services are
// assumed reachable out-of-band and never enter the orchestration spec.
func (p Planner) externalProfile(ctx context.Context, state types.SelectionState, def types.ComponentDefinition) bool {
	tag := ProfileFor(state, def.Name)
	if tag == "" {
		return false
	}
	profile, ok := def.DeploymentProfiles[tag]
	if !ok {
		return false
	}
	if profile.Mode != types.ProfileModeExternal {
		return false
	}
	log.Ctx(ctx).Info().
		Str("service", def.Name).
		Str("profile", tag).
		Msg("service runs externally, excluded from orchestration spec")
	return true
}

func (p Planner) serviceSpec(ctx context.Context, def types.ComponentDefinition, variant types.SourceVariant, params *types.ParamBag) (types.ServiceSpec, bool) {
	spec := types.ServiceSpec{
		Name:           def.Name,
		ContainerName:  policies.Coalesce(variant.Runtime.ContainerName, def.Common.ContainerName, def.Name),
		Ports:          policies.UnionLists(def.Common.Ports, variant.Runtime.Ports),
		Volumes:        policies.UnionLists(def.Common.Volumes, variant.Runtime.Volumes),
		NetworkAliases: policies.UnionLists(def.Common.NetworkAliases, variant.Runtime.NetworkAliases),
		Env:            substituteParams(policies.OverrideMap(def.Common.Env, variant.Runtime.Env), params),
	}

	switch variant.Kind() {
	case types.SourceTypeImage:
		spec.Image = variant.Image.Ref
	case types.SourceTypeBuild:
		spec.Build = &types.BuildSpec{
			Context:    p.buildContext(variant.Build.Context),
			Dockerfile: variant.Build.Dockerfile,
		}
	case types.SourceTypeLocal:
		// A local source for a service is its build context.
		spec.Build = &types.BuildSpec{Context: p.buildContext(variant.Local.Path)}
	default:
		log.Ctx(ctx).Warn().
			Str("service", def.Name).
			Str("source", string(variant.Kind())).
			Msg("service source has no runnable form, omitted from plan")
		return types.ServiceSpec{}, false
	}
	return spec, true
}

func (p Planner) buildContext(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.ProjectRoot, path)
}

// EffectiveVariant picks the source variant for a mode: the dev variant
// when mode is dev and one exists, otherwise the prod variant.  Nil when
// the component defines neither.
func EffectiveVariant(def types.ComponentDefinition, mode types.Mode) *types.SourceVariant {
	if mode == types.ModeDev && def.Sources.Dev != nil {
		return def.Sources.Dev
	}
	return def.Sources.Prod
}

// substituteParams replaces ${HSM_MERGED_PARAMS.<key>} tokens in env
// values with the comma-joined merged values for <key>.  Unrelated
// ${...} tokens pass through untouched.
func substituteParams(env map[string]string, params *types.ParamBag) map[string]string {
	if len(env) == 0 || params == nil || params.Len() == 0 {
		return env
	}
	for _, key := range params.Keys() {
		placeholder := fmt.Sprintf("%s%s}", paramPlaceholderPrefix, key)
		joined := strings.Join(params.Values(key), ",")
		for envKey, envValue := range env {
			if strings.Contains(envValue, placeholder) {
				env[envKey] = strings.ReplaceAll(envValue, placeholder, joined)
			}
		}
	}
	return env
}
