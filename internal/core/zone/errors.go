package zone

import "errors"

var (
	// ErrEnvironmentUnsupported indicates the host cannot enumerate timezones.
	ErrEnvironmentUnsupported = errors.New("timezone enumeration unsupported")
	// ErrUnknownZone indicates an identifier has no entry in the region table.
	ErrUnknownZone = errors.New("unknown zone")
	// ErrUnresolvable indicates the host cannot load rules for an identifier.
	ErrUnresolvable = errors.New("zone cannot be resolved")
)
