package command

import "time"

// LicenseConfig holds settings shared by the license commands.
type LicenseConfig struct {
	// KeyPrefix is the product prefix of generated keys.
	KeyPrefix string
	// Location is the zone persisted timestamps are written and read in.
	Location *time.Location
	// RejectInactive makes validation fail for deactivated licenses.
	RejectInactive bool
}

func (c LicenseConfig) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}
