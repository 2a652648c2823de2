package resources

import (
	"testing"

	"meridian/internal/core/zone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionTableParses(t *testing.T) {
	table, err := RegionTable()
	require.NoError(t, err)
	assert.Greater(t, table.Len(), 100)

	for id, code := range map[string]string{
		"Europe/London":    "GB",
		"Asia/Tokyo":       "JP",
		"America/New_York": "US",
		"Asia/Kolkata":     "IN",
	} {
		tag, err := table.Lookup(id)
		require.NoError(t, err, id)
		assert.Equal(t, code, tag.Code(), id)
	}

	_, err = table.Lookup("Antarctica/Troll")
	assert.Error(t, err)
}

func TestZoneSourceListsEmbeddedZones(t *testing.T) {
	zones, err := zone.ListSupported(ZoneSource())
	require.NoError(t, err)

	assert.Equal(t, zone.UTC, zones[0])
	assert.Contains(t, zones, "Europe/London")
	assert.Contains(t, zones, "Pacific/Kiritimati")
	assert.Greater(t, len(zones), 100)

	catalog := zone.Load(zone.FirstAvailable(zone.SourceFunc(func() ([]string, error) {
		return nil, zone.ErrEnvironmentUnsupported
	}), ZoneSource()), "Asia/Kolkata", MustRegionTable(), nil)
	assert.True(t, catalog.Contains("Asia/Tokyo"))
	assert.Greater(t, catalog.Len(), 2)
}

func TestIconIsEmbedded(t *testing.T) {
	icon := Icon()
	assert.Equal(t, "icon.svg", icon.Name())
	assert.Contains(t, string(icon.Content()), "<svg")
}
