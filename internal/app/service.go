package app

import (
	"time"

	"hyperstack/internal/adapters"
	"hyperstack/internal/ports"
)

// Service aggregates the ports the application operations work
// through.  Tests swap in fakes; NewService wires the real adapters.
type Service struct {
	Registry       ports.RegistryPort
	RegistryWriter ports.RegistryWriterPort
	Manifest       ports.ManifestPort
	Packages       ports.PackageManagerPort
	Containers     ports.ContainerEnginePort
	Report         ports.ReportPort
	ProjectRoot    string
	RegistryRoot   string
	Clock          func() time.Time

	// invalidate drops a registry cache entry after a write; nil when
	// the registry port is not cached.
	invalidate func(name string)
}

func NewService(projectRoot string, registryRoot string) Service {
	registry := adapters.NewRegistryDirAdapter(registryRoot)
	service := Service{
		Registry:       registry,
		RegistryWriter: registry,
		Manifest:       adapters.NewManifestFileAdapter(projectRoot),
		Packages:       adapters.NewUvAdapter(projectRoot),
		Containers:     adapters.NewDockerComposeAdapter(projectRoot),
		Report:         adapters.NewReportFileAdapter(projectRoot, time.Now),
		ProjectRoot:    projectRoot,
		RegistryRoot:   registryRoot,
		Clock:          time.Now,
	}
	if cached, err := adapters.NewCachedRegistry(registry); err == nil {
		service.Registry = cached
		service.invalidate = cached.Invalidate
	}
	return service
}

func (s Service) invalidateRegistry(name string) {
	if s.invalidate != nil {
		s.invalidate(name)
	}
}
