package zone

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// RegionTag is a two-letter region code or the unknown variant.
type RegionTag struct {
	code string
}

// UnknownRegion is the tag used when no mapping exists.
var UnknownRegion = RegionTag{}

const unknownFlag = "\U0001F310"

// NewRegionTag validates a two-letter ASCII code and returns its tag.
func NewRegionTag(code string) (RegionTag, error) {
	if len(code) != 2 {
		return UnknownRegion, fmt.Errorf("region code %q: want two letters", code)
	}
	upper := strings.ToUpper(code)
	for index := 0; index < len(upper); index++ {
		if upper[index] < 'A' || upper[index] > 'Z' {
			return UnknownRegion, fmt.Errorf("region code %q: want two letters", code)
		}
	}
	return RegionTag{code: upper}, nil
}

// Known reports whether the tag carries a real region code.
func (tag RegionTag) Known() bool {
	return tag.code != ""
}

// Code returns the region code, or "??" for the unknown variant.
func (tag RegionTag) Code() string {
	if !tag.Known() {
		return "??"
	}
	return tag.code
}

// Flag renders the regional indicator pair for the code.
func (tag RegionTag) Flag() string {
	if !tag.Known() {
		return unknownFlag
	}
	runes := make([]rune, 0, 2)
	for _, letter := range tag.code {
		runes = append(runes, 0x1F1E6+(letter-'A'))
	}
	return string(runes)
}

func (tag RegionTag) String() string {
	return tag.Code()
}

// RegionTable maps identifiers to region tags. It is immutable once built.
type RegionTable struct {
	entries map[string]RegionTag
}

type regionFile struct {
	Regions map[string]string `yaml:"regions"`
}

// ParseRegionTable decodes the YAML region table.
func ParseRegionTable(rawData []byte) (RegionTable, error) {
	var fileData regionFile
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return RegionTable{}, fmt.Errorf("parse region table: %w", err)
	}

	entries := make(map[string]RegionTag, len(fileData.Regions))
	for id, code := range fileData.Regions {
		tag, err := NewRegionTag(code)
		if err != nil {
			return RegionTable{}, fmt.Errorf("parse region table entry %s: %w", id, err)
		}
		entries[id] = tag
	}
	return RegionTable{entries: entries}, nil
}

// NewRegionTable builds a table from an in-memory mapping, skipping invalid codes.
func NewRegionTable(mapping map[string]string) RegionTable {
	entries := make(map[string]RegionTag, len(mapping))
	for id, code := range mapping {
		if tag, err := NewRegionTag(code); err == nil {
			entries[id] = tag
		}
	}
	return RegionTable{entries: entries}
}

// Lookup returns the tag for id, or ErrUnknownZone on a miss.
func (table RegionTable) Lookup(id string) (RegionTag, error) {
	tag, ok := table.entries[id]
	if !ok {
		return UnknownRegion, fmt.Errorf("lookup region %s: %w", id, ErrUnknownZone)
	}
	return tag, nil
}

// Len returns the number of mapped identifiers.
func (table RegionTable) Len() int {
	return len(table.entries)
}

// IDs returns the mapped identifiers in sorted order.
func (table RegionTable) IDs() []string {
	ids := make([]string, 0, len(table.entries))
	for id := range table.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
