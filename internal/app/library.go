package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hyperstack/internal/adapters"
	"hyperstack/internal/types"
)

// InitLibrary scaffolds a local library through the package manager and
// optionally registers it: prod as a plain local source, dev as an
// editable one.
func (s Service) InitLibrary(ctx context.Context, req InitLibraryRequest) (InitLibraryResult, error) {
	if req.Name == "" {
		return InitLibraryResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("library name is required")
	}
	path := req.Path
	if path == "" {
		path = filepath.Join(s.ProjectRoot, "packages", req.Name)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.ProjectRoot, path)
	}
	if err := s.Packages.InitLibrary(ctx, path); err != nil {
		return InitLibraryResult{}, err
	}
	log.Ctx(ctx).Info().Str("library", req.Name).Str("path", path).Msg("library scaffolded")

	if req.Register {
		relPath, err := filepath.Rel(s.ProjectRoot, path)
		if err != nil {
			relPath = path
		}
		def := types.ComponentDefinition{
			Name:        req.Name,
			Kind:        types.ComponentKindLibrary,
			Version:     "0.1.0",
			Description: fmt.Sprintf("Local library %s", req.Name),
			Sources: types.ComponentSources{
				Prod: &types.SourceVariant{Local: &types.LocalSource{Path: relPath}},
				Dev:  &types.SourceVariant{Local: &types.LocalSource{Path: relPath, Editable: true}},
			},
		}
		if err := s.RegistryAddComponent(ctx, def); err != nil {
			return InitLibraryResult{}, err
		}
	}
	return InitLibraryResult{Path: path}, nil
}

// Lock delegates lockfile generation to the package manager.
func (s Service) Lock(ctx context.Context) error {
	return s.Packages.Lock(ctx)
}

// Up regenerates the orchestration config from the current plan and
// starts the requested services (all of them when none are named).
func (s Service) Up(ctx context.Context, services []string) error {
	state, err := s.Manifest.Load()
	if err != nil {
		return err
	}
	plan, _ := s.resolve(ctx, state)
	if len(plan.Services) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no services in the current plan")
	}
	if err := s.Containers.GenerateConfig(plan.Services); err != nil {
		return err
	}
	return s.Containers.Up(ctx, services)
}

// Down stops the orchestrated services.
func (s Service) Down(ctx context.Context) error {
	return s.Containers.Down(ctx)
}

// Export writes the current plan's requirements as a plain
// requirements.txt for tooling that bypasses the package manager.
func (s Service) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	output := req.OutputPath
	if output == "" {
		output = filepath.Join(s.ProjectRoot, "requirements.txt")
	}
	state, err := s.Manifest.Load()
	if err != nil {
		return ExportResult{}, err
	}
	plan, _ := s.resolve(ctx, state)
	writer := adapters.NewCompatRequirementsAdapter(output)
	if err := writer.WriteRequirements(plan.Requirements); err != nil {
		return ExportResult{}, err
	}
	log.Ctx(ctx).Info().Str("path", output).Int("requirements", len(plan.Requirements)).Msg("requirements exported")
	return ExportResult{OutputPath: output, Requirements: len(plan.Requirements)}, nil
}
