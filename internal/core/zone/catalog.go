// Package zone holds the catalog of supported IANA identifiers and the
// display metadata derived for each of them.
package zone

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// UTC is always present in a catalog.
const UTC = "UTC"

// Source enumerates the identifiers supported by the host.
type Source interface {
	Zones() ([]string, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() ([]string, error)

// Zones calls fn.
func (fn SourceFunc) Zones() ([]string, error) {
	return fn()
}

// Metadata is the display record for an identifier.
type Metadata struct {
	ID          string
	DisplayName string
	Region      RegionTag
}

// ListSupported asks the host for its identifiers.
func ListSupported(source Source) ([]string, error) {
	if source == nil {
		return nil, ErrEnvironmentUnsupported
	}
	zones, err := source.Zones()
	if err != nil {
		if errors.Is(err, ErrEnvironmentUnsupported) {
			return nil, err
		}
		return nil, fmt.Errorf("list zones: %w: %v", ErrEnvironmentUnsupported, err)
	}
	if len(zones) == 0 {
		return nil, fmt.Errorf("list zones: %w: host returned no zones", ErrEnvironmentUnsupported)
	}
	return zones, nil
}

// FirstAvailable returns a Source that answers with the first source
// yielding a non-empty list.
func FirstAvailable(sources ...Source) Source {
	return SourceFunc(func() ([]string, error) {
		var errs error
		for _, source := range sources {
			zones, err := ListSupported(source)
			if err == nil {
				return zones, nil
			}
			errs = multierr.Append(errs, err)
		}
		if errs == nil {
			return nil, ErrEnvironmentUnsupported
		}
		return nil, fmt.Errorf("list zones: %w", errs)
	})
}

// FallbackZones is the minimal list used when enumeration fails.
func FallbackZones(localZone string) []string {
	if localZone == "" || localZone == UTC {
		return []string{UTC}
	}
	return []string{UTC, localZone}
}

// Catalog is an immutable, ordered set of identifiers with metadata.
type Catalog struct {
	zones    []string
	index    map[string]int
	metadata map[string]Metadata
	table    RegionTable
}

// NewCatalog builds a catalog preserving the order of zones and dropping duplicates.
func NewCatalog(zones []string, table RegionTable) *Catalog {
	catalog := &Catalog{
		zones:    make([]string, 0, len(zones)),
		index:    make(map[string]int, len(zones)),
		metadata: make(map[string]Metadata, len(zones)),
		table:    table,
	}
	for _, id := range zones {
		if id == "" {
			continue
		}
		if _, exists := catalog.index[id]; exists {
			continue
		}
		catalog.index[id] = len(catalog.zones)
		catalog.zones = append(catalog.zones, id)
		catalog.metadata[id] = deriveMetadata(id, table)
	}
	return catalog
}

// Load enumerates host zones and falls back to a minimal list on failure.
func Load(source Source, localZone string, table RegionTable, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	zones, err := ListSupported(source)
	if err != nil {
		fallback := FallbackZones(localZone)
		logger.Warn("zone enumeration failed, using fallback list",
			zap.Error(err),
			zap.Strings("zones", fallback))
		return NewCatalog(fallback, table)
	}
	catalog := NewCatalog(zones, table)
	logger.Debug("zone catalog loaded",
		zap.Int("zones", catalog.Len()),
		zap.Int("regions", table.Len()))
	return catalog
}

// Zones returns a copy of the identifiers in catalog order.
func (catalog *Catalog) Zones() []string {
	return append([]string(nil), catalog.zones...)
}

// Len returns the number of identifiers.
func (catalog *Catalog) Len() int {
	return len(catalog.zones)
}

// Contains reports whether id is listed.
func (catalog *Catalog) Contains(id string) bool {
	_, ok := catalog.index[id]
	return ok
}

// Lookup returns metadata for id and reports ErrUnknownZone when the region
// table has no entry. The returned metadata is usable either way.
func (catalog *Catalog) Lookup(id string) (Metadata, error) {
	metadata, ok := catalog.metadata[id]
	if !ok {
		metadata = deriveMetadata(id, catalog.table)
	}
	if !metadata.Region.Known() {
		return metadata, fmt.Errorf("lookup metadata %s: %w", id, ErrUnknownZone)
	}
	return metadata, nil
}

// MetadataFor never fails; misses get a derived name and UnknownRegion.
func (catalog *Catalog) MetadataFor(id string) Metadata {
	metadata, _ := catalog.Lookup(id)
	return metadata
}

func deriveMetadata(id string, table RegionTable) Metadata {
	metadata := Metadata{
		ID:          id,
		DisplayName: DisplayName(id),
		Region:      UnknownRegion,
	}
	if tag, err := table.Lookup(id); err == nil {
		metadata.Region = tag
	}
	return metadata
}

// DisplayName strips everything up to the last '/' and turns '_' into spaces.
func DisplayName(id string) string {
	name := id
	if slash := strings.LastIndex(name, "/"); slash >= 0 {
		name = name[slash+1:]
	}
	return strings.ReplaceAll(name, "_", " ")
}
