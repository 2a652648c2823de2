//go:build windows

package platform

import "os"

// Windows ships no zoneinfo tree; only an explicit ZONEINFO can be walked.
func newZoneSource() *zoneinfoSource {
	return &zoneinfoSource{dirs: []string{os.Getenv("ZONEINFO")}}
}

func hostZoneName() string {
	return ""
}
