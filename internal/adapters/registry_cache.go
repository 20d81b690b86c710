package adapters

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"hyperstack/internal/ports"
	"hyperstack/internal/types"
)

// defaultRegistryCacheSize comfortably covers one resolution pass; the
// expander and planner both look up every expanded component.
const defaultRegistryCacheSize = 256

// CachedRegistry decorates a RegistryPort with an LRU over successful
// lookups, so repeated reads during one resolution pass do not re-read
// and re-parse definition files.  Misses are not cached: a component
// added mid-session becomes visible immediately.
type CachedRegistry struct {
	inner      ports.RegistryPort
	components *lru.Cache[string, types.ComponentDefinition]
	groups     *lru.Cache[string, types.Group]
}

func NewCachedRegistry(inner ports.RegistryPort) (*CachedRegistry, error) {
	components, err := lru.New[string, types.ComponentDefinition](defaultRegistryCacheSize)
	if err != nil {
		return nil, err
	}
	groups, err := lru.New[string, types.Group](defaultRegistryCacheSize)
	if err != nil {
		return nil, err
	}
	return &CachedRegistry{
		inner:      inner,
		components: components,
		groups:     groups,
	}, nil
}

func (c *CachedRegistry) GetComponent(name string) (types.ComponentDefinition, error) {
	if def, ok := c.components.Get(name); ok {
		return def, nil
	}
	def, err := c.inner.GetComponent(name)
	if err != nil {
		return types.ComponentDefinition{}, err
	}
	c.components.Add(name, def)
	return def, nil
}

func (c *CachedRegistry) GetGroup(name string) (types.Group, error) {
	if group, ok := c.groups.Get(name); ok {
		return group, nil
	}
	group, err := c.inner.GetGroup(name)
	if err != nil {
		return types.Group{}, err
	}
	c.groups.Add(name, group)
	return group, nil
}

func (c *CachedRegistry) Search(query string) (ports.SearchResult, error) {
	return c.inner.Search(query)
}

// Invalidate drops a name from both caches.  Registry writes call this
// so later reads observe the new definition.
func (c *CachedRegistry) Invalidate(name string) {
	c.components.Remove(name)
	c.groups.Remove(name)
}

var _ ports.RegistryPort = (*CachedRegistry)(nil)
