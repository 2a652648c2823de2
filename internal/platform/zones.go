package platform

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"meridian/internal/core/zone"
)

// NewZoneSource returns the host's timezone enumerator.
func NewZoneSource() zone.Source {
	return newZoneSource()
}

// SystemZone returns the host's default IANA zone, falling back to UTC.
func SystemZone() string {
	if name, ok := zoneFromEnv(os.Getenv("TZ")); ok {
		return name
	}
	if name := hostZoneName(); name != "" {
		return name
	}
	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}
	return zone.UTC
}

func zoneFromEnv(value string) (string, bool) {
	value = strings.TrimPrefix(strings.TrimSpace(value), ":")
	if value == "" {
		return "", false
	}
	if filepath.IsAbs(value) {
		return zoneNameFromPath(value)
	}
	if _, err := time.LoadLocation(value); err != nil {
		return "", false
	}
	return value, true
}

// zoneNameFromPath extracts "Europe/Paris" from ".../zoneinfo/Europe/Paris".
func zoneNameFromPath(path string) (string, bool) {
	path = filepath.ToSlash(path)
	const marker = "zoneinfo/"
	index := strings.LastIndex(path, marker)
	if index < 0 {
		return "", false
	}
	name := strings.TrimPrefix(path[index+len(marker):], "posix/")
	if name == "" {
		return "", false
	}
	return name, true
}

// legacyTrees are backward-compatibility link farms outside the canonical set.
var legacyTrees = map[string]bool{
	"posix":   true,
	"right":   true,
	"Etc":     true,
	"SystemV": true,
	"US":      true,
	"Canada":  true,
	"Mexico":  true,
	"Brazil":  true,
	"Chile":   true,
}

type zoneinfoSource struct {
	dirs []string
}

// Zones returns the first non-empty zoneinfo tree found.
func (source *zoneinfoSource) Zones() ([]string, error) {
	for _, dir := range source.dirs {
		if dir == "" {
			continue
		}
		zones, err := scanZoneinfo(dir)
		if err != nil || len(zones) == 0 {
			continue
		}
		return zones, nil
	}
	return nil, zone.ErrEnvironmentUnsupported
}

func scanZoneinfo(root string) ([]string, error) {
	var zones []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			return nil
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		name := filepath.ToSlash(rel)
		if entry.IsDir() {
			if legacyTrees[name] || !capitalized(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !canonicalName(name) || !isTZif(path) {
			return nil
		}
		zones = append(zones, name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(zones)
	return zones, nil
}

func canonicalName(name string) bool {
	if name == zone.UTC {
		return true
	}
	if !strings.Contains(name, "/") {
		return false
	}
	for _, segment := range strings.Split(name, "/") {
		if !capitalized(segment) || strings.ContainsAny(segment, ".") {
			return false
		}
	}
	return true
}

func capitalized(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

var tzifMagic = []byte("TZif")

func isTZif(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() {
		_ = file.Close()
	}()
	header := make([]byte, len(tzifMagic))
	if _, err := io.ReadFull(file, header); err != nil {
		return false
	}
	return bytes.Equal(header, tzifMagic)
}
