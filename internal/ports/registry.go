package ports

import "hyperstack/internal/types"

// SearchResult groups registry search hits by category.
type SearchResult struct {
	Libraries []string
	Services  []string
	Groups    []string
}

// RegistryPort is the read-only catalog the resolver consumes.  Misses
// are reported as CodeNotFound errors.
type RegistryPort interface {
	GetComponent(name string) (types.ComponentDefinition, error)
	GetGroup(name string) (types.Group, error)
	Search(query string) (SearchResult, error)
}

// RegistryWriterPort covers registry CRUD, an application-layer concern
// the resolution core never touches.
type RegistryWriterPort interface {
	PutComponent(def types.ComponentDefinition) error
	PutGroup(group types.Group) error
	Remove(name string) error
	AddGroupOption(group string, option types.GroupOption) error
	RemoveGroupOption(group string, option string) error
}
