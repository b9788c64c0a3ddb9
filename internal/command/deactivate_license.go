package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/soozu/stove-license/internal/datasources"
	"github.com/soozu/stove-license/internal/domain"
)

var (
	// ErrStoreNotFound is returned when deactivating before any license was stored.
	ErrStoreNotFound = errors.New("license store not found")
	// ErrLicenseNotFound is returned when the key is not in the store.
	ErrLicenseNotFound = errors.New("license not found")
)

// DeactivateLicenseRequest is the request for the DeactivateLicense command.
type DeactivateLicenseRequest struct {
	LicenseKey string
}

// DeactivateLicense clears the active flag of a stored license.
// The expiry date is left untouched.
type DeactivateLicense struct {
	Updater datasources.LicenseUpdater
}

func NewDeactivateLicense(updater datasources.LicenseUpdater) *DeactivateLicense {
	return &DeactivateLicense{Updater: updater}
}

func (c *DeactivateLicense) Execute(ctx context.Context, req DeactivateLicenseRequest) (Empty, error) {
	err := c.Updater.UpdateLicenses(ctx, func(licenses domain.Licenses, exists bool) error {
		if !exists {
			return ErrStoreNotFound
		}

		license, ok := licenses[req.LicenseKey]
		if !ok {
			return ErrLicenseNotFound
		}

		license.IsActive = false
		licenses[req.LicenseKey] = license
		return nil
	})
	if err != nil {
		return Empty{}, fmt.Errorf("deactivating license [%s]: %w", req.LicenseKey, err)
	}

	domain.LoggerFromContext(ctx).InfoContext(ctx, "deactivated license", "license_key", req.LicenseKey)
	return Empty{}, nil
}
