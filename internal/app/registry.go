package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"hyperstack/internal/core"
	"hyperstack/internal/types"
)

// Search queries the registry by name substring.
func (s Service) Search(query string) (SearchResult, error) {
	result, err := s.Registry.Search(query)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{
		Libraries: result.Libraries,
		Services:  result.Services,
		Groups:    result.Groups,
	}, nil
}

// ShowComponent returns the raw registry definition for display.
func (s Service) ShowComponent(name string) (types.ComponentDefinition, error) {
	return s.Registry.GetComponent(name)
}

// ShowGroup returns the raw group definition for display.
func (s Service) ShowGroup(name string) (types.Group, error) {
	return s.Registry.GetGroup(name)
}

// RegistryAddComponent validates a definition and writes it to the
// registry.
func (s Service) RegistryAddComponent(ctx context.Context, def types.ComponentDefinition) error {
	if err := core.ValidateDefinition(ctx, def); err != nil {
		return err
	}
	if err := s.RegistryWriter.PutComponent(def); err != nil {
		return err
	}
	s.invalidateRegistry(def.Name)
	log.Ctx(ctx).Info().Str("component", def.Name).Str("kind", string(def.Kind)).Msg("registry entry written")
	return nil
}

// RegistryAddGroup validates a group and writes it to the registry.
func (s Service) RegistryAddGroup(ctx context.Context, group types.Group) error {
	if err := core.ValidateGroup(ctx, group); err != nil {
		return err
	}
	if err := s.RegistryWriter.PutGroup(group); err != nil {
		return err
	}
	s.invalidateRegistry(group.Name)
	log.Ctx(ctx).Info().Str("group", group.Name).Msg("registry group written")
	return nil
}

// RegistryRemove deletes a component or group from the registry.
func (s Service) RegistryRemove(ctx context.Context, name string) error {
	if err := s.RegistryWriter.Remove(name); err != nil {
		return err
	}
	s.invalidateRegistry(name)
	log.Ctx(ctx).Info().Str("name", name).Msg("registry entry removed")
	return nil
}

// RegistryAddOption appends an option to a registry group.
func (s Service) RegistryAddOption(ctx context.Context, group string, option string) error {
	if err := s.RegistryWriter.AddGroupOption(group, types.GroupOption{Name: option}); err != nil {
		return err
	}
	s.invalidateRegistry(group)
	log.Ctx(ctx).Info().Str("group", group).Str("option", option).Msg("group option added")
	return nil
}

// RegistryRemoveOption removes an option from a registry group.
func (s Service) RegistryRemoveOption(ctx context.Context, group string, option string) error {
	if err := s.RegistryWriter.RemoveGroupOption(group, option); err != nil {
		return err
	}
	s.invalidateRegistry(group)
	log.Ctx(ctx).Info().Str("group", group).Str("option", option).Msg("group option removed")
	return nil
}
