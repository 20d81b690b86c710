package ports

import (
	"context"

	"hyperstack/internal/types"
)

// PackageManagerPort is the boundary to the external package resolver.
// The core hands it requirement strings; dependency solving is its
// problem.
type PackageManagerPort interface {
	Sync(ctx context.Context, requirements []types.Requirement, frozen bool) error
	Lock(ctx context.Context) error
	InitLibrary(ctx context.Context, path string) error
	InstalledPackages(ctx context.Context) (map[string]string, error)
}
