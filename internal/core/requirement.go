package core

import (
	"fmt"
	"path/filepath"

	"hyperstack/internal/policies"
	"hyperstack/internal/shared"
	"hyperstack/internal/types"
)

// RequirementFor renders a library's effective source variant as a
// requirement string for the package manager.  Variants that have no
// package representation (images, build contexts) yield nothing; that is
// not an error.
func RequirementFor(def types.ComponentDefinition, variant types.SourceVariant, projectRoot string) (types.Requirement, bool, error) {
	switch variant.Kind() {
	case types.SourceTypeLocal:
		path := variant.Local.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(projectRoot, path)
		}
		return types.Requirement{
			Name: def.Name,
			Spec: fmt.Sprintf("%s @ file://%s", def.Name, filepath.ToSlash(path)),
		}, true, nil
	case types.SourceTypeGit:
		spec := fmt.Sprintf("%s @ git+%s", def.Name, variant.Git.URL)
		if variant.Git.Ref != "" {
			spec += "@" + variant.Git.Ref
		}
		if variant.Git.Subdirectory != "" {
			spec += "#subdirectory=" + variant.Git.Subdirectory
		}
		return types.Requirement{Name: def.Name, Spec: spec}, true, nil
	case types.SourceTypePackage:
		if err := ValidateSpecifier(variant.Package.Specifier); err != nil {
			return types.Requirement{}, false, err
		}
		name := policies.Coalesce(variant.Package.Name, def.Name)
		return types.Requirement{
			Name: def.Name,
			Spec: shared.NormalizePackageName(name) + variant.Package.Specifier,
		}, true, nil
	default:
		return types.Requirement{}, false, nil
	}
}
