package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hyperstack/internal/adapters"
	"hyperstack/internal/policies"
	"hyperstack/internal/types"
)

// InitProject creates the manifest skeleton and the registry directory
// tree.  An existing manifest is left untouched.
func (s Service) InitProject(ctx context.Context, req InitRequest) (InitResult, error) {
	name := req.ProjectName
	if name == "" {
		name = filepath.Base(s.ProjectRoot)
	}
	if !s.Manifest.Exists() {
		if err := s.Manifest.Save(adapters.DefaultSelectionState(name)); err != nil {
			return InitResult{}, err
		}
		log.Ctx(ctx).Info().Str("project", name).Msg("created project manifest")
	}
	registry := adapters.NewRegistryDirAdapter(s.RegistryRoot)
	if err := registry.EnsureLayout(); err != nil {
		return InitResult{}, err
	}
	return InitResult{
		ManifestPath: filepath.Join(s.ProjectRoot, adapters.ManifestFileName),
		RegistryPath: s.RegistryRoot,
	}, nil
}

// AddStandalone records a standalone component in the manifest.  The
// component's kind decides which section it joins.
func (s Service) AddStandalone(ctx context.Context, name string) error {
	def, err := s.Registry.GetComponent(name)
	if err != nil {
		return err
	}
	state, err := s.Manifest.Load()
	if err != nil {
		return err
	}
	if _, ok := state.StandaloneFor(name); ok {
		return nil
	}
	section := &state.Dependencies
	if def.Kind == types.ComponentKindService {
		section = &state.Services
	}
	section.Standalone = append(section.Standalone, types.StandaloneSelection{Name: name})
	if err := s.Manifest.Save(state); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("component", name).Str("kind", string(def.Kind)).Msg("added standalone component")
	return nil
}

// RemoveStandalone drops a standalone component from the manifest.
func (s Service) RemoveStandalone(ctx context.Context, name string) error {
	state, err := s.Manifest.Load()
	if err != nil {
		return err
	}
	removed := false
	for _, section := range []*types.SelectionSection{&state.Dependencies, &state.Services} {
		kept := section.Standalone[:0]
		for _, entry := range section.Standalone {
			if entry.Name == name {
				removed = true
				continue
			}
			kept = append(kept, entry)
		}
		section.Standalone = kept
	}
	if !removed {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("component %s is not a standalone entry", name))
	}
	if err := s.Manifest.Save(state); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("component", name).Msg("removed standalone component")
	return nil
}

// SelectGroup records a group selection in the manifest, enforcing the
// group's strategy: 1-of-N replaces, M-of-N accumulates.
func (s Service) SelectGroup(ctx context.Context, groupName string, option string) error {
	group, err := s.Registry.GetGroup(groupName)
	if err != nil {
		return err
	}
	state, err := s.Manifest.Load()
	if err != nil {
		return err
	}

	entry, ok := state.GroupSelectionFor(groupName)
	if !ok {
		section := &state.Dependencies
		if group.Kind == types.ComponentKindService {
			section = &state.Services
		}
		section.Groups = append(section.Groups, types.GroupSelection{
			Group:    groupName,
			Strategy: group.Strategy,
		})
		entry = &section.Groups[len(section.Groups)-1]
	}

	selection, err := policies.ApplySelection(group, entry.Selection, option)
	if err != nil {
		return err
	}
	entry.Selection = selection
	entry.Strategy = group.Strategy

	if opt, ok := group.Option(option); ok && len(opt.Implies) > 0 {
		targets := make([]string, 0, len(opt.Implies))
		for key := range opt.Implies {
			targets = append(targets, key)
		}
		log.Ctx(ctx).Info().
			Str("group", groupName).
			Str("option", option).
			Strs("implies", targets).
			Msg("selected option implies additional components")
	}

	if err := s.Manifest.Save(state); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("group", groupName).Str("option", option).Msg("group selection updated")
	return nil
}

// DeselectGroupOption removes one option from a group's selection.  A
// 1-of-N group left without a selection is dropped from the manifest.
func (s Service) DeselectGroupOption(ctx context.Context, groupName string, option string) error {
	group, err := s.Registry.GetGroup(groupName)
	if err != nil {
		return err
	}
	state, err := s.Manifest.Load()
	if err != nil {
		return err
	}
	entry, ok := state.GroupSelectionFor(groupName)
	if !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("group %s is not selected in the manifest", groupName))
	}
	selection, err := policies.RemoveSelection(group, entry.Selection, option)
	if err != nil {
		return err
	}
	entry.Selection = selection
	if len(selection) == 0 && group.Strategy == types.StrategyExactlyOne {
		s.dropGroup(&state, groupName)
	}
	if err := s.Manifest.Save(state); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("group", groupName).Str("option", option).Msg("group option deselected")
	return nil
}

// RemoveGroup drops a group entry from the manifest entirely.
func (s Service) RemoveGroup(ctx context.Context, groupName string) error {
	state, err := s.Manifest.Load()
	if err != nil {
		return err
	}
	if _, ok := state.GroupSelectionFor(groupName); !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("group %s is not selected in the manifest", groupName))
	}
	s.dropGroup(&state, groupName)
	if err := s.Manifest.Save(state); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("group", groupName).Msg("group removed from manifest")
	return nil
}

func (s Service) dropGroup(state *types.SelectionState, groupName string) {
	for _, section := range []*types.SelectionSection{&state.Dependencies, &state.Services} {
		kept := section.Groups[:0]
		for _, entry := range section.Groups {
			if entry.Group == groupName {
				continue
			}
			kept = append(kept, entry)
		}
		section.Groups = kept
	}
}

// SetComponentMode sets the explicit mode override on a standalone
// entry.
func (s Service) SetComponentMode(ctx context.Context, name string, mode types.Mode) error {
	if err := validateMode(mode); err != nil {
		return err
	}
	state, err := s.Manifest.Load()
	if err != nil {
		return err
	}
	entry, ok := state.StandaloneFor(name)
	if !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("component %s is not a standalone entry", name))
	}
	entry.Mode = mode
	if err := s.Manifest.Save(state); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("component", name).Str("mode", string(mode)).Msg("component mode set")
	return nil
}

// SetGroupMode sets the explicit mode override on a group entry.
func (s Service) SetGroupMode(ctx context.Context, groupName string, mode types.Mode) error {
	if err := validateMode(mode); err != nil {
		return err
	}
	state, err := s.Manifest.Load()
	if err != nil {
		return err
	}
	entry, ok := state.GroupSelectionFor(groupName)
	if !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("group %s is not selected in the manifest", groupName))
	}
	entry.Mode = mode
	if err := s.Manifest.Save(state); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("group", groupName).Str("mode", string(mode)).Msg("group mode set")
	return nil
}

// SetGlobalMode sets the project-wide default mode.  Entries with an
// explicit override keep it; everything else follows the default.
func (s Service) SetGlobalMode(ctx context.Context, mode types.Mode) error {
	if err := validateMode(mode); err != nil {
		return err
	}
	state, err := s.Manifest.Load()
	if err != nil {
		return err
	}
	state.Project.Mode = mode
	if err := s.Manifest.Save(state); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("mode", string(mode)).Msg("global mode set")
	return nil
}

// SetProfile attaches a deployment-profile tag to a group or standalone
// entry.  An empty profile clears the tag.
func (s Service) SetProfile(ctx context.Context, name string, profile string) error {
	state, err := s.Manifest.Load()
	if err != nil {
		return err
	}
	if entry, ok := state.GroupSelectionFor(name); ok {
		entry.Profile = profile
	} else if entry, ok := state.StandaloneFor(name); ok {
		entry.Profile = profile
	} else {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("%s is neither a group nor a standalone entry in the manifest", name))
	}
	if err := s.Manifest.Save(state); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("entry", name).Str("profile", profile).Msg("deployment profile set")
	return nil
}

func validateMode(mode types.Mode) error {
	if mode != types.ModeProd && mode != types.ModeDev {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("mode must be prod or dev, got %q", mode))
	}
	return nil
}
