package command

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/juju/clock"
	"github.com/soozu/stove-license/internal/datasources"
	"github.com/soozu/stove-license/internal/domain"
)

// ErrInvalidDuration is returned when a negative license duration is requested.
var ErrInvalidDuration = errors.New("duration_days must be positive")

// GenerateLicenseRequest is the request for the GenerateLicense command.
// Zero values fall back to the defaults in the domain package.
type GenerateLicenseRequest struct {
	UserID         string
	DurationDays   int
	DiscordContact string
}

// GenerateLicense mints a new license and persists it.
type GenerateLicense struct {
	Updater datasources.LicenseUpdater
	Clock   clock.Clock
	Random  io.Reader
	Config  LicenseConfig
}

// NewGenerateLicense creates a GenerateLicense command reading randomness from crypto/rand.
func NewGenerateLicense(
	updater datasources.LicenseUpdater,
	clk clock.Clock,
	config LicenseConfig,
) *GenerateLicense {
	return &GenerateLicense{
		Updater: updater,
		Clock:   clk,
		Random:  rand.Reader,
		Config:  config,
	}
}

func (c *GenerateLicense) Execute(ctx context.Context, req GenerateLicenseRequest) (domain.License, error) {
	logger := domain.LoggerFromContext(ctx)

	if req.DurationDays < 0 {
		return domain.License{}, ErrInvalidDuration
	}
	if req.DurationDays == 0 {
		req.DurationDays = domain.DefaultDurationDays
	}
	if req.UserID == "" {
		req.UserID = domain.DefaultUserID
	}

	loc := c.Config.location()
	createdAt := c.Clock.Now().In(loc).Truncate(time.Second)
	expiryDate := createdAt.AddDate(0, 0, req.DurationDays)

	prefix := c.Config.KeyPrefix
	if prefix == "" {
		prefix = domain.DefaultLicenseKeyPrefix
	}
	key, err := domain.NewLicenseKey(prefix, createdAt, c.Random)
	if err != nil {
		return domain.License{}, fmt.Errorf("generating license key: %w", err)
	}

	license := domain.License{
		LicenseKey:     key,
		UserID:         req.UserID,
		CreatedAt:      domain.FormatTimestamp(createdAt, loc),
		ExpiryDate:     domain.FormatTimestamp(expiryDate, loc),
		DiscordContact: req.DiscordContact,
		IsActive:       true,
	}

	err = c.Updater.UpdateLicenses(ctx, func(licenses domain.Licenses, _ bool) error {
		licenses[key] = license
		return nil
	})
	if err != nil {
		return domain.License{}, fmt.Errorf("storing license: %w", err)
	}

	logger.InfoContext(ctx, "generated license",
		"license_key", key,
		"user_id", req.UserID,
		"expiry_date", license.ExpiryDate)

	return license, nil
}
