package equivalence

import (
	"errors"
	"slices"
	"testing"
	"testing/quick"
	"time"
	_ "time/tzdata"

	"meridian/internal/core/model"
	"meridian/internal/core/wallclock"
	"meridian/internal/core/zone"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var propertyCatalog = []string{
	"UTC", "Europe/London", "Europe/Dublin", "Europe/Lisbon", "Africa/Abidjan",
	"Europe/Paris", "Europe/Berlin", "Africa/Lagos", "Europe/Helsinki", "Africa/Cairo",
	"Europe/Moscow", "Asia/Dubai", "Asia/Kolkata", "Asia/Kathmandu", "Asia/Shanghai",
	"Asia/Singapore", "Australia/Perth", "Australia/Eucla", "Asia/Tokyo", "Asia/Seoul",
	"Australia/Adelaide", "Australia/Sydney", "Australia/Brisbane", "Pacific/Auckland",
	"Pacific/Chatham", "Pacific/Kiritimati", "Pacific/Honolulu", "America/Anchorage",
	"America/Los_Angeles", "America/Phoenix", "America/Denver", "America/Chicago",
	"America/New_York", "America/Halifax", "America/St_Johns", "America/Sao_Paulo",
	"Atlantic/Azores", "Pacific/Marquesas",
}

func newIndex() *Index {
	return New(wallclock.NewFormatter(zone.NewResolver(), model.DefaultNightWindow()))
}

func winter() time.Time {
	return time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)
}

func TestNeighborsWinterLondon(t *testing.T) {
	got := newIndex().NeighborsOf("UTC", winter(), []string{"UTC", "Europe/London"})
	if diff := cmp.Diff([]string{"Europe/London"}, got); diff != "" {
		t.Errorf("NeighborsOf mismatch (-want +got):\n%s", diff)
	}
}

func TestNeighborsSummerLondonSplits(t *testing.T) {
	summer := time.Date(2024, time.July, 15, 10, 30, 0, 0, time.UTC)
	got := newIndex().NeighborsOf("UTC", summer, []string{"UTC", "Europe/London"})
	assert.Empty(t, got)
}

func TestNeighborsOneHourApartNeverMatch(t *testing.T) {
	catalog := []string{"America/New_York", "America/Chicago"}
	index := newIndex()
	property := func(seconds int64) bool {
		at := time.Unix(seconds%(1<<33), 0).UTC()
		return len(index.NeighborsOf("America/New_York", at, catalog)) == 0
	}
	require.NoError(t, quick.Check(property, nil))
}

func TestNeighborsPreserveCatalogOrder(t *testing.T) {
	catalog := []string{"Europe/Paris", "UTC", "Europe/Berlin", "Africa/Lagos", "Europe/Rome"}
	got := newIndex().NeighborsOf("Europe/Berlin", winter(), catalog)
	if diff := cmp.Diff([]string{"Europe/Paris", "Africa/Lagos", "Europe/Rome"}, got); diff != "" {
		t.Errorf("NeighborsOf mismatch (-want +got):\n%s", diff)
	}
}

func TestNeighborsReferenceMissing(t *testing.T) {
	got := newIndex().NeighborsOf("Asia/Tokyo", winter(), []string{"UTC", "Europe/London"})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNeighborsMatchAcrossDayBoundary(t *testing.T) {
	// UTC+14 and UTC-10 show the same time of day on different dates.
	catalog := []string{"Pacific/Kiritimati", "Pacific/Honolulu"}
	got := newIndex().NeighborsOf("Pacific/Kiritimati", winter(), catalog)
	assert.Equal(t, []string{"Pacific/Honolulu"}, got)
}

func TestNeighborsExcludeSelfAndAreSymmetric(t *testing.T) {
	index := newIndex()
	property := func(seconds int64) bool {
		at := time.Unix(seconds%(1<<33), 0).UTC()
		buckets := index.Buckets(at, propertyCatalog)
		for _, id := range propertyCatalog {
			neighbors := buckets.NeighborsOf(id)
			if slices.Contains(neighbors, id) {
				return false
			}
			for _, other := range neighbors {
				if !slices.Contains(buckets.NeighborsOf(other), id) {
					return false
				}
			}
			if !slices.Equal(neighbors, index.NeighborsOf(id, at, propertyCatalog)) {
				return false
			}
		}
		return true
	}
	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 50}))
}

type stubFormatter map[string]wallclock.Key

func (stub stubFormatter) Key(id string, _ time.Time) (wallclock.Key, error) {
	key, ok := stub[id]
	if !ok {
		return wallclock.Key{}, errors.New("unformattable")
	}
	return key, nil
}

func TestBucketsSkipUnformattable(t *testing.T) {
	noon := wallclock.Key{Hour12: 12, Minute: 0, Meridiem: wallclock.PM}
	index := New(stubFormatter{"A": noon, "B": noon, "D": noon})
	catalog := []string{"A", "B", "C", "D", "A"}

	buckets := index.Buckets(winter(), catalog)
	assert.Equal(t, []string{"C"}, buckets.Failed())
	assert.Equal(t, []string{"B", "D"}, buckets.NeighborsOf("A"))
	assert.Empty(t, buckets.NeighborsOf("C"))
	assert.Equal(t, 1, buckets.Len())

	key, ok := buckets.KeyOf("D")
	assert.True(t, ok)
	assert.Equal(t, noon, key)
}

func TestBucketsDistinguishMeridiem(t *testing.T) {
	index := New(stubFormatter{
		"A": {Hour12: 7, Minute: 15, Meridiem: wallclock.AM},
		"B": {Hour12: 7, Minute: 15, Meridiem: wallclock.PM},
	})
	assert.Empty(t, index.NeighborsOf("A", winter(), []string{"A", "B"}))
}
