package command

import (
	"context"
	"fmt"

	"github.com/juju/clock"
	"github.com/soozu/stove-license/internal/datasources"
	"github.com/soozu/stove-license/internal/domain"
)

// Reasons a license failed validation. They are logged, never returned to clients.
const (
	InvalidReasonUnknown  = "unknown_key"
	InvalidReasonExpired  = "expired"
	InvalidReasonBadDate  = "unparsable_expiry"
	InvalidReasonInactive = "inactive"
)

// ValidateLicenseRequest is the request for the ValidateLicense command.
type ValidateLicenseRequest struct {
	LicenseKey string
}

// ValidateLicenseResponse reports whether the key is currently valid.
// License is set only when Valid is true.
type ValidateLicenseResponse struct {
	Valid   bool
	License *domain.License
	Reason  string
}

// ValidateLicense checks a key against the store without modifying it.
type ValidateLicense struct {
	Viewer datasources.LicenseViewer
	Clock  clock.Clock
	Config LicenseConfig
}

func NewValidateLicense(
	viewer datasources.LicenseViewer,
	clk clock.Clock,
	config LicenseConfig,
) *ValidateLicense {
	return &ValidateLicense{
		Viewer: viewer,
		Clock:  clk,
		Config: config,
	}
}

func (c *ValidateLicense) Execute(ctx context.Context, req ValidateLicenseRequest) (ValidateLicenseResponse, error) {
	var (
		license domain.License
		found   bool
	)
	err := c.Viewer.ViewLicenses(ctx, func(licenses domain.Licenses, _ bool) error {
		license, found = licenses[req.LicenseKey]
		return nil
	})
	if err != nil {
		return ValidateLicenseResponse{}, fmt.Errorf("loading licenses: %w", err)
	}

	if !found {
		return c.invalid(ctx, req.LicenseKey, InvalidReasonUnknown), nil
	}

	valid, err := license.ValidAt(c.Clock.Now(), c.Config.location())
	if err != nil {
		domain.LoggerFromContext(ctx).WarnContext(ctx, "stored license has unparsable expiry date",
			"license_key", req.LicenseKey,
			"expiry_date", license.ExpiryDate,
			"error", err)
		return c.invalid(ctx, req.LicenseKey, InvalidReasonBadDate), nil
	}
	if !valid {
		return c.invalid(ctx, req.LicenseKey, InvalidReasonExpired), nil
	}
	if c.Config.RejectInactive && !license.IsActive {
		return c.invalid(ctx, req.LicenseKey, InvalidReasonInactive), nil
	}

	return ValidateLicenseResponse{
		Valid:   true,
		License: &license,
	}, nil
}

func (c *ValidateLicense) invalid(ctx context.Context, key, reason string) ValidateLicenseResponse {
	domain.LoggerFromContext(ctx).DebugContext(ctx, "license rejected",
		"license_key", key,
		"reason", reason)
	return ValidateLicenseResponse{Reason: reason}
}
