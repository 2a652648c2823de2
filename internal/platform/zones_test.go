package platform

import (
	"os"
	"path/filepath"
	"testing"

	"meridian/internal/core/zone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZoneFile(t *testing.T, root, name string, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func fakeZoneinfo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range []string{
		"UTC",
		"Europe/London",
		"Europe/Paris",
		"America/Argentina/Buenos_Aires",
		"Asia/Tokyo",
		"posix/Europe/London",
		"right/Asia/Tokyo",
		"Etc/GMT+5",
		"US/Eastern",
		"GMT",
	} {
		writeZoneFile(t, root, name, "TZif2\x00\x00")
	}
	writeZoneFile(t, root, "zone.tab", "# not a zone\n")
	writeZoneFile(t, root, "Europe/README", "plain text")
	writeZoneFile(t, root, "iso3166.tab", "TZif pretending")
	return root
}

func TestScanZoneinfoKeepsCanonicalZones(t *testing.T) {
	zones, err := scanZoneinfo(fakeZoneinfo(t))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"America/Argentina/Buenos_Aires",
		"Asia/Tokyo",
		"Europe/London",
		"Europe/Paris",
		"UTC",
	}, zones)
}

func TestZoneSourceUsesFirstPopulatedDir(t *testing.T) {
	empty := t.TempDir()
	source := &zoneinfoSource{dirs: []string{"", filepath.Join(empty, "missing"), empty, fakeZoneinfo(t)}}

	zones, err := source.Zones()
	require.NoError(t, err)
	assert.Contains(t, zones, "Europe/Paris")
}

func TestZoneSourceWithoutTreeIsUnsupported(t *testing.T) {
	source := &zoneinfoSource{dirs: []string{t.TempDir()}}

	_, err := source.Zones()
	assert.ErrorIs(t, err, zone.ErrEnvironmentUnsupported)

	_, err = zone.ListSupported(source)
	assert.ErrorIs(t, err, zone.ErrEnvironmentUnsupported)
}

func TestZoneNameFromPath(t *testing.T) {
	cases := map[string]string{
		"/usr/share/zoneinfo/Europe/Paris":        "Europe/Paris",
		"../usr/share/zoneinfo/Asia/Tokyo":        "Asia/Tokyo",
		"/var/db/timezone/zoneinfo/posix/Etc/UTC": "Etc/UTC",
	}
	for path, want := range cases {
		got, ok := zoneNameFromPath(path)
		assert.True(t, ok, path)
		assert.Equal(t, want, got, path)
	}

	_, ok := zoneNameFromPath("/etc/localtime")
	assert.False(t, ok)
	_, ok = zoneNameFromPath("/usr/share/zoneinfo/")
	assert.False(t, ok)
}

func TestSystemZonePrefersTZ(t *testing.T) {
	t.Setenv("TZ", "Asia/Kolkata")
	assert.Equal(t, "Asia/Kolkata", SystemZone())

	t.Setenv("TZ", ":Europe/Berlin")
	assert.Equal(t, "Europe/Berlin", SystemZone())
}

func TestSystemZoneIgnoresBogusTZ(t *testing.T) {
	t.Setenv("TZ", "Not/AZone")
	got := SystemZone()
	assert.NotEqual(t, "Not/AZone", got)
	assert.NotEmpty(t, got)
}
