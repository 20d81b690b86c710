package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hyperstack/internal/types"
)

// ValidateDefinition checks a component definition before it is written
// to the registry.  Resolution assumes definitions are well-formed, so
// the write path is where malformed ones are rejected.
func ValidateDefinition(ctx context.Context, def types.ComponentDefinition) error {
	assert.NotEmpty(ctx, def.Name, "component name must be set")
	if def.Kind != types.ComponentKindLibrary && def.Kind != types.ComponentKindService {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("component %s has invalid kind %q", def.Name, def.Kind))
	}
	if def.Version != "" {
		if err := ValidateVersion(def.Version); err != nil {
			return err
		}
	}
	if def.Sources.Prod == nil && def.Sources.Dev == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("component %s declares no source variants", def.Name))
	}
	for label, variant := range map[string]*types.SourceVariant{"prod": def.Sources.Prod, "dev": def.Sources.Dev} {
		if variant == nil {
			continue
		}
		if err := variant.Validate(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("component %s %s source: %v", def.Name, label, err))
		}
	}
	for key := range def.Implies {
		if _, err := types.ParseTargetKey(key); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("component %s: %v", def.Name, err))
		}
	}
	for name, profile := range def.DeploymentProfiles {
		if profile.Mode != types.ProfileModeManaged && profile.Mode != types.ProfileModeExternal {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("component %s profile %s has invalid mode %q", def.Name, name, profile.Mode))
		}
	}
	log.Ctx(ctx).Debug().Str("component", def.Name).Msg("definition validated")
	return nil
}

// ValidateGroup checks a group definition before it is written to the
// registry.
func ValidateGroup(ctx context.Context, group types.Group) error {
	assert.NotEmpty(ctx, group.Name, "group name must be set")
	if group.Kind != types.ComponentKindLibrary && group.Kind != types.ComponentKindService {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("group %s has invalid kind %q", group.Name, group.Kind))
	}
	if group.Strategy != types.StrategyExactlyOne && group.Strategy != types.StrategyAnySubset {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("group %s has invalid strategy %q", group.Name, group.Strategy))
	}
	if len(group.Options) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("group %s declares no options", group.Name))
	}
	seen := map[string]struct{}{}
	for _, opt := range group.Options {
		if opt.Name == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("group %s has an option without a name", group.Name))
		}
		if _, ok := seen[opt.Name]; ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("group %s declares option %s twice", group.Name, opt.Name))
		}
		seen[opt.Name] = struct{}{}
		for key := range opt.Implies {
			if _, err := types.ParseTargetKey(key); err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("group %s option %s: %v", group.Name, opt.Name, err))
			}
		}
	}
	for _, name := range group.Default {
		if _, ok := seen[name]; !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("group %s default %s is not a declared option", group.Name, name))
		}
	}
	if group.Strategy == types.StrategyExactlyOne && len(group.Default) > 1 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("group %s is 1-of-N but declares %d defaults", group.Name, len(group.Default)))
	}
	log.Ctx(ctx).Debug().Str("group", group.Name).Msg("group validated")
	return nil
}
