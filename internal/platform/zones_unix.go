//go:build !windows

package platform

import (
	"os"
	"strings"
)

func newZoneSource() *zoneinfoSource {
	return &zoneinfoSource{dirs: []string{
		os.Getenv("ZONEINFO"),
		"/usr/share/zoneinfo",
		"/usr/share/lib/zoneinfo",
		"/usr/lib/locale/TZ",
	}}
}

func hostZoneName() string {
	if target, err := os.Readlink("/etc/localtime"); err == nil {
		if name, ok := zoneNameFromPath(target); ok {
			return name
		}
	}
	if rawData, err := os.ReadFile("/etc/timezone"); err == nil {
		if name, ok := zoneFromEnv(strings.TrimSpace(string(rawData))); ok {
			return name
		}
	}
	return ""
}
