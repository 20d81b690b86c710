package ports

import (
	"context"

	"hyperstack/internal/types"
)

// ContainerEnginePort is the boundary to the container orchestrator.
type ContainerEnginePort interface {
	GenerateConfig(services []types.ServiceSpec) error
	Up(ctx context.Context, services []string) error
	Down(ctx context.Context) error
	RunningServices(ctx context.Context) ([]string, error)
}
