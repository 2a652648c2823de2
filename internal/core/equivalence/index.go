// Package equivalence groups zones that currently show the same wall-clock
// reading as a reference zone.
package equivalence

import (
	"time"

	"meridian/internal/core/wallclock"
)

// KeyFormatter returns the wall-clock key of an identifier at an instant.
type KeyFormatter interface {
	Key(id string, at time.Time) (wallclock.Key, error)
}

// Index computes regional neighbors.
type Index struct {
	formatter KeyFormatter
}

// New returns an index that formats through formatter.
func New(formatter KeyFormatter) *Index {
	return &Index{formatter: formatter}
}

// Buckets is the catalog partitioned by wall-clock key at one instant.
type Buckets struct {
	At      time.Time
	keys    map[string]wallclock.Key
	members map[wallclock.Key][]string
	failed  []string
}

// Buckets formats every catalog identifier at the instant and groups them.
// Identifiers that cannot be formatted are left out of every bucket.
func (index *Index) Buckets(at time.Time, catalog []string) Buckets {
	buckets := Buckets{
		At:      at,
		keys:    make(map[string]wallclock.Key, len(catalog)),
		members: make(map[wallclock.Key][]string),
	}
	for _, id := range catalog {
		if _, seen := buckets.keys[id]; seen {
			continue
		}
		key, err := index.formatter.Key(id, at)
		if err != nil {
			buckets.failed = append(buckets.failed, id)
			continue
		}
		buckets.keys[id] = key
		buckets.members[key] = append(buckets.members[key], id)
	}
	return buckets
}

// NeighborsOf returns every other identifier in catalog showing the same
// hour, minute and meridiem as reference, in catalog order.
func (index *Index) NeighborsOf(reference string, at time.Time, catalog []string) []string {
	return index.Buckets(at, catalog).NeighborsOf(reference)
}

// NeighborsOf returns the bucket of reference without reference itself.
// A reference missing from the catalog has no neighbors.
func (buckets Buckets) NeighborsOf(reference string) []string {
	key, ok := buckets.keys[reference]
	if !ok {
		return []string{}
	}
	members := buckets.members[key]
	neighbors := make([]string, 0, len(members))
	for _, id := range members {
		if id != reference {
			neighbors = append(neighbors, id)
		}
	}
	return neighbors
}

// KeyOf returns the key computed for id.
func (buckets Buckets) KeyOf(id string) (wallclock.Key, bool) {
	key, ok := buckets.keys[id]
	return key, ok
}

// Failed lists catalog identifiers that could not be formatted.
func (buckets Buckets) Failed() []string {
	return append([]string(nil), buckets.failed...)
}

// Len returns the number of distinct wall-clock readings.
func (buckets Buckets) Len() int {
	return len(buckets.members)
}
