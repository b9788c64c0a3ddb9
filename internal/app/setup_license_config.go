package app

import (
	"context"
	"fmt"
	"time"

	"github.com/soozu/stove-license/internal/command"
	"github.com/soozu/stove-license/internal/domain"
)

// DefaultServerVersion is reported by the index route unless SERVER_VERSION is set.
const DefaultServerVersion = "v0.2.5"

// LicenseConfigFromEnv reads the license settings shared by every command.
func LicenseConfigFromEnv(ctx context.Context) (command.LicenseConfig, error) {
	loc, err := time.LoadLocation(GetEnvAsString("LICENSE_TIMEZONE", "Local"))
	if err != nil {
		return command.LicenseConfig{}, fmt.Errorf("loading LICENSE_TIMEZONE: %w", err)
	}

	return command.LicenseConfig{
		KeyPrefix:      GetEnvAsString("LICENSE_KEY_PREFIX", domain.DefaultLicenseKeyPrefix),
		Location:       loc,
		RejectInactive: GetEnvAsBoolean(ctx, "VALIDATE_REJECT_INACTIVE", false),
	}, nil
}
