package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hyperstack/internal/core"
	"hyperstack/internal/ports"
	"hyperstack/internal/shared"
)

// Check runs the referential-integrity dry run and returns every issue
// found.  A non-empty result is also surfaced as one aggregate error so
// callers can gate on it.
func (s Service) Check(ctx context.Context) (CheckResult, error) {
	state, err := s.Manifest.Load()
	if err != nil {
		return CheckResult{}, err
	}
	issues := core.NewValidator(s.Registry).Validate(ctx, state)
	result := CheckResult{Issues: issues}
	if len(issues) > 0 {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("validation failed with %d issues", len(issues)))
	}
	return result, nil
}

// Sync materializes the current selection into the real environment:
// requirements go to the package manager, service specs to the
// container engine, and the outcome is recorded in the sync report.
// A failing check blocks the sync; resolution stays best-effort but
// side effects require a clean state.  The two adapter dispatches are
// independent and run sequentially; neither reads the other's output.
func (s Service) Sync(ctx context.Context, req SyncRequest) (SyncResult, error) {
	if _, err := s.Check(ctx); err != nil {
		return SyncResult{}, err
	}
	state, err := s.Manifest.Load()
	if err != nil {
		return SyncResult{}, err
	}
	plan, summaries := s.resolve(ctx, state)

	if len(plan.Requirements) > 0 {
		if err := s.Packages.Sync(ctx, plan.Requirements, req.Frozen); err != nil {
			return SyncResult{}, err
		}
	}
	if len(plan.Services) > 0 {
		if err := s.Containers.GenerateConfig(plan.Services); err != nil {
			return SyncResult{}, err
		}
		log.Ctx(ctx).Info().Int("services", len(plan.Services)).Msg("orchestration config generated")
	}

	reports := make([]ports.ComponentReport, 0, len(summaries))
	for _, summary := range summaries {
		reports = append(reports, ports.ComponentReport{
			Name:   summary.Name,
			Kind:   summary.Kind,
			Mode:   summary.Mode,
			Source: summary.Source,
			Params: summary.Params,
		})
	}
	if err := s.Report.WriteResolutionReport(plan, reports); err != nil {
		return SyncResult{}, err
	}

	log.Ctx(ctx).Info().
		Int("requirements", len(plan.Requirements)).
		Int("services", len(plan.Services)).
		Msg("sync completed")
	return SyncResult{
		ProjectName:  state.Project.Name,
		Requirements: len(plan.Requirements),
		Services:     len(plan.Services),
	}, nil
}

// VerifySync compares the live environment against the current plan and
// reports what is missing: packages the environment lacks and planned
// services that are not running.
func (s Service) VerifySync(ctx context.Context) (VerifyResult, error) {
	state, err := s.Manifest.Load()
	if err != nil {
		return VerifyResult{}, err
	}
	plan, _ := s.resolve(ctx, state)

	installed, err := s.Packages.InstalledPackages(ctx)
	if err != nil {
		return VerifyResult{}, err
	}
	running, err := s.Containers.RunningServices(ctx)
	if err != nil {
		return VerifyResult{}, err
	}
	runningSet := map[string]struct{}{}
	for _, name := range running {
		runningSet[name] = struct{}{}
	}

	result := VerifyResult{}
	for _, req := range plan.Requirements {
		if _, ok := installed[shared.NormalizePackageName(req.Name)]; !ok {
			result.MissingPackages = append(result.MissingPackages, req.Name)
		}
	}
	for _, service := range plan.Services {
		if _, ok := runningSet[service.Name]; !ok {
			result.MissingServices = append(result.MissingServices, service.Name)
		}
	}
	sort.Strings(result.MissingPackages)
	sort.Strings(result.MissingServices)
	return result, nil
}
