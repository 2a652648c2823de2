package resources

import (
	_ "embed"
	"fmt"
	"sync"

	"meridian/internal/core/zone"

	"fyne.io/fyne/v2"
)

//go:embed regions.yaml
var regionsYAML []byte

//go:embed icon.svg
var iconSVG []byte

var (
	regionsOnce  sync.Once
	regionTable  zone.RegionTable
	regionsErr   error
	iconResource = fyne.NewStaticResource("icon.svg", iconSVG)
)

// RegionTable returns the embedded zone to country table, parsed once.
func RegionTable() (zone.RegionTable, error) {
	regionsOnce.Do(func() {
		regionTable, regionsErr = zone.ParseRegionTable(regionsYAML)
		if regionsErr != nil {
			regionsErr = fmt.Errorf("load region table: %w", regionsErr)
		}
	})
	return regionTable, regionsErr
}

// MustRegionTable returns the embedded table or panics on error.
func MustRegionTable() zone.RegionTable {
	table, err := RegionTable()
	if err != nil {
		panic(err)
	}
	return table
}

// ZoneSource lists UTC plus every zone of the embedded table. It serves
// hosts without a zoneinfo tree.
func ZoneSource() zone.Source {
	return zone.SourceFunc(func() ([]string, error) {
		table, err := RegionTable()
		if err != nil {
			return nil, err
		}
		return append([]string{zone.UTC}, table.IDs()...), nil
	})
}

// Icon returns the application icon.
func Icon() fyne.Resource {
	return iconResource
}
