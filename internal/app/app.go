package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/juju/clock"
	"github.com/soozu/stove-license/internal/command"
	"github.com/soozu/stove-license/internal/datasources"
	"github.com/soozu/stove-license/internal/datasources/jsonfile"
	"github.com/soozu/stove-license/internal/datasources/mysql"
	"github.com/soozu/stove-license/internal/transport/web/router"
	"github.com/soozu/stove-license/internal/transport/web/server"
)

type Component interface {
	Run(ctx context.Context) error
}

func Setup(ctx context.Context) ([]Component, error) {
	store, err := setupLicenseStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up license store: %w", err)
	}

	adminMiddleware, err := setupAdminMiddleware(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up admin middleware: %w", err)
	}

	licenseConfig, err := LicenseConfigFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading license config: %w", err)
	}

	transactor := datasources.NewSerializedStore(store)
	clk := clock.WallClock

	httpRouter, err := router.MakeRouter(
		command.NewGenerateLicense(transactor, clk, licenseConfig),
		command.NewValidateLicense(transactor, clk, licenseConfig),
		command.NewDeactivateLicense(transactor),
		adminMiddleware,
		router.NewMetrics(),
		router.Config{
			Version:           GetEnvAsString("SERVER_VERSION", DefaultServerVersion),
			Clock:             clk,
			Location:          licenseConfig.Location,
			ValidateRateLimit: GetEnvAsFloat(ctx, "VALIDATE_RATE_LIMIT", 0),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create HTTP router: %w", err)
	}

	return []Component{
		&server.Server{
			TLSDisabled:       GetEnvAsBoolean(ctx, "HTTP_TLS_DISABLED", true),
			TLSDisabledPort:   GetEnvAsInt(ctx, "PORT", 5000),
			AutocertHostnames: GetEnvAsStrings("HTTP_AUTOCERT_HOSTNAMES", ""),
			Router:            httpRouter,
		},
	}, nil
}

func setupLicenseStore(ctx context.Context) (datasources.LicenseStore, error) {
	switch driver := GetEnvAsString("STORE_DRIVER", "jsonfile"); driver {
	case "jsonfile":
		return jsonfile.New(GetEnvAsString("DB_PATH", "licenses_db.json")), nil
	case "memory":
		return datasources.NewMemoryLicenseStore(nil), nil
	case "mysql":
		db, err := mysql.Connect(ctx, MustGetEnvAsString(ctx, "MYSQL_URI"))
		if err != nil {
			return nil, fmt.Errorf("connecting to MySQL: %w", err)
		}
		repo := mysql.New(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("creating MySQL schema: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown store driver [%s]", driver)
	}
}

func setupAdminMiddleware(ctx context.Context) (func(http.Handler) http.Handler, error) {
	var validators []router.AdminValidator

	for _, driver := range GetEnvAsStrings("ADMIN_AUTH_DRIVERS", "shared_secret") {
		switch driver {
		case "shared_secret":
			v, err := router.NewSharedSecretValidator(MustGetEnvAsString(ctx, "API_KEY"))
			if err != nil {
				return nil, fmt.Errorf("creating shared secret validator: %w", err)
			}
			validators = append(validators, v)
		case "auth0":
			v, err := router.NewAuth0Validator(
				MustGetEnvAsString(ctx, "AUTH0_DOMAIN"),
				MustGetEnvAsString(ctx, "AUTH0_AUDIENCE"),
			)
			if err != nil {
				return nil, fmt.Errorf("creating Auth0 validator: %w", err)
			}
			validators = append(validators, v)
		default:
			return nil, fmt.Errorf("unknown admin auth driver [%s]", driver)
		}
	}

	if len(validators) == 0 {
		return nil, fmt.Errorf("no admin auth drivers configured")
	}

	return router.NewAdminMiddleware(validators), nil
}
