package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/juju/clock"
	"github.com/soozu/stove-license/internal/command"
	"github.com/soozu/stove-license/internal/domain"
	"github.com/soozu/stove-license/internal/transport/web/controller"
)

// Config carries the non-command settings of the HTTP API.
type Config struct {
	Version  string
	Clock    clock.Clock
	Location *time.Location
	// ValidateRateLimit is the allowed validate requests per second; 0 disables limiting.
	ValidateRateLimit float64
}

func MakeRouter(
	generateCmd command.Command[command.GenerateLicenseRequest, domain.License],
	validateCmd command.Command[command.ValidateLicenseRequest, command.ValidateLicenseResponse],
	deactivateCmd command.Command[command.DeactivateLicenseRequest, command.Empty],
	adminMiddleware func(http.Handler) http.Handler,
	metrics *Metrics,
	cfg Config,
) (http.Handler, error) {
	validate := controller.NewValidator()

	r := mux.NewRouter()
	r.Use(metrics.middleware)

	r.Handle("/", controller.Index{
		Version:  cfg.Version,
		Clock:    cfg.Clock,
		Location: cfg.Location,
	}).Methods(http.MethodGet)

	r.Handle("/health", controller.Health{}).Methods(http.MethodGet)

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	admin := func(h http.Handler) http.Handler {
		return adminMiddleware(requireAdminMiddleware(h))
	}

	r.Handle("/api/generate_license", admin(controller.LicenseGenerate{
		GenerateCmd: generateCmd,
		Validator:   validate,
	})).Methods(http.MethodPost)

	r.Handle("/api/validate_license", controller.LicenseValidate{
		ValidateCmd: validateCmd,
		Validator:   validate,
		Results:     metrics.Validations,
	}).Methods(http.MethodGet)

	r.Handle("/api/validate_license", rateLimitMiddleware(cfg.ValidateRateLimit)(controller.LicenseValidate{
		ValidateCmd: validateCmd,
		Validator:   validate,
		Results:     metrics.Validations,
	})).Methods(http.MethodPost)

	r.Handle("/api/deactivate_license", admin(controller.LicenseDeactivate{
		DeactivateCmd: deactivateCmd,
		Validator:     validate,
	})).Methods(http.MethodPost)

	return corsMiddleware(loggingMiddleware(recoverMiddleware(r))), nil
}
