package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/juju/clock"
	"github.com/soozu/stove-license/internal/app"
	"github.com/soozu/stove-license/internal/client"
	"github.com/soozu/stove-license/internal/domain"
	"github.com/spf13/cobra"
)

var errLicenseInvalid = errors.New("license is invalid or expired")

type cli struct {
	serverURL string
	apiKey    string
	keyPrefix string
	timeout   time.Duration
	clock     clock.Clock
	out       io.Writer
}

func newRootCommand(clk clock.Clock, out io.Writer) *cobra.Command {
	c := &cli{clock: clk, out: out}

	cmd := &cobra.Command{
		Use:           "licensectl",
		Short:         "Manage and check licenses on a license server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&c.serverURL, "server",
		app.GetEnvAsString("LICENSE_SERVER_URL", "http://localhost:5000"), "license server base URL")
	cmd.PersistentFlags().StringVar(&c.apiKey, "api-key",
		app.GetEnvAsString("LICENSE_API_KEY", ""), "admin API key for generate and deactivate")
	cmd.PersistentFlags().StringVar(&c.keyPrefix, "key-prefix",
		app.GetEnvAsString("LICENSE_KEY_PREFIX", domain.DefaultLicenseKeyPrefix), "expected license key prefix")
	cmd.PersistentFlags().DurationVar(&c.timeout, "timeout", 30*time.Second, "request timeout")

	cmd.AddCommand(
		c.newHealthCmd(),
		c.newGenerateCmd(),
		c.newValidateCmd(),
		c.newDeactivateCmd(),
		c.newStatusCmd(),
	)
	return cmd
}

func (c *cli) client() *client.Client {
	return client.NewClient(c.serverURL, c.apiKey).WithKeyPrefix(c.keyPrefix)
}

func (c *cli) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *cli) newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is online",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			index, err := c.client().Index(ctx)
			if err != nil {
				return fmt.Errorf("checking server: %w", err)
			}
			fmt.Fprintf(c.out, "Server %s (version %s, time %s)\n", index.Status, index.Version, index.Timestamp)
			return nil
		},
	}
}

func (c *cli) newGenerateCmd() *cobra.Command {
	var req client.GenerateRequest

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new license key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.DurationDays < 0 {
				return fmt.Errorf("--days must be positive")
			}

			ctx, cancel := c.context(cmd)
			defer cancel()

			license, err := c.client().GenerateLicense(ctx, req)
			if err != nil {
				return fmt.Errorf("generating license: %w", err)
			}
			fmt.Fprintf(c.out, "License key: %s\n", license.LicenseKey)
			fmt.Fprintf(c.out, "User:        %s\n", license.UserID)
			fmt.Fprintf(c.out, "Expires:     %s\n", license.ExpiryDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.UserID, "user-id", "", "license owner (server default: default_user)")
	cmd.Flags().IntVar(&req.DurationDays, "days", 0, "validity in days (server default: 30)")
	cmd.Flags().StringVar(&req.DiscordContact, "discord", "", "Discord contact of the owner")
	return cmd
}

func (c *cli) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <license-key>",
		Short: "Check whether a license key is valid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			result, err := c.client().ValidateLicense(ctx, args[0])
			if err != nil {
				return fmt.Errorf("validating license: %w", err)
			}
			if !result.Valid {
				return errLicenseInvalid
			}
			fmt.Fprintln(c.out, "License verified successfully!")
			return nil
		},
	}
}

func (c *cli) newDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <license-key>",
		Short: "Mark a license key inactive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			if err := c.client().DeactivateLicense(ctx, args[0]); err != nil {
				return fmt.Errorf("deactivating license: %w", err)
			}
			fmt.Fprintf(c.out, "Deactivated %s\n", args[0])
			return nil
		},
	}
}

func (c *cli) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <license-key>",
		Short: "Show the time remaining on a license",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			result, err := c.client().ValidateLicense(ctx, args[0])
			if err != nil {
				return fmt.Errorf("validating license: %w", err)
			}
			if !result.Valid || result.License == nil {
				return errLicenseInvalid
			}

			remaining, err := result.License.TimeRemaining(c.clock.Now(), time.Local)
			if err != nil {
				return fmt.Errorf("reading expiry date: %w", err)
			}
			if remaining <= 0 {
				fmt.Fprintln(c.out, "License Expired")
				return nil
			}
			fmt.Fprintf(c.out, "Time Remaining: %s\n", domain.FormatRemaining(remaining))
			return nil
		},
	}
}
