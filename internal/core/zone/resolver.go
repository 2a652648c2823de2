package zone

import (
	"fmt"
	"time"

	"github.com/maypok86/otter/v2"
)

const defaultResolverSize = 1024

// Resolver loads and caches zone rules per identifier.
type Resolver struct {
	cache *otter.Cache[string, *time.Location]
	load  func(string) (*time.Location, error)
}

// NewResolver returns a resolver backed by time.LoadLocation.
func NewResolver() *Resolver {
	return NewResolverWithLoader(time.LoadLocation)
}

// NewResolverWithLoader returns a resolver with a custom loader.
func NewResolverWithLoader(load func(string) (*time.Location, error)) *Resolver {
	return &Resolver{
		cache: otter.Must(&otter.Options[string, *time.Location]{
			MaximumSize:     defaultResolverSize,
			InitialCapacity: 64,
		}),
		load: load,
	}
}

// Resolve returns the location for id. The ambient "Local" zone and the
// empty name are rejected so callers always convert explicitly.
func (resolver *Resolver) Resolve(id string) (*time.Location, error) {
	if id == "" || id == "Local" {
		return nil, fmt.Errorf("resolve zone %q: %w", id, ErrUnresolvable)
	}
	if location, found := resolver.cache.GetIfPresent(id); found {
		return location, nil
	}
	location, err := resolver.load(id)
	if err != nil {
		return nil, fmt.Errorf("resolve zone %s: %w: %v", id, ErrUnresolvable, err)
	}
	resolver.cache.Set(id, location)
	return location, nil
}

// Cached returns the number of cached locations.
func (resolver *Resolver) Cached() int {
	return resolver.cache.EstimatedSize()
}
