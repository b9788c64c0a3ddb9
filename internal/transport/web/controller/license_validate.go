package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/soozu/stove-license/internal/command"
	"github.com/soozu/stove-license/internal/domain"
)

// LicenseKeyRequest is the JSON request body naming a single license.
type LicenseKeyRequest struct {
	LicenseKey *string `json:"license_key" validate:"omitnil,max=128"`
}

// LicenseValidateResponse is the JSON response for a validation attempt.
type LicenseValidateResponse struct {
	Valid       bool            `json:"valid"`
	LicenseData *domain.License `json:"license_data,omitempty"`
	Message     string          `json:"message,omitempty"`
}

// LicenseValidate handles GET and POST /api/validate_license.
// GET is a liveness probe; POST checks a key.
type LicenseValidate struct {
	ValidateCmd command.Command[command.ValidateLicenseRequest, command.ValidateLicenseResponse]
	Validator   *validator.Validate
	// Results counts outcomes by result label; nil disables counting.
	Results *prometheus.CounterVec
}

func (c LicenseValidate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	if r.Method == http.MethodGet {
		writeJSON(ctx, w, http.StatusOK, statusResponse{Status: "License server is running"})
		return
	}

	// The desktop client does not always send a JSON content type, so the
	// body is parsed regardless of the header.
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		logger.WarnContext(ctx, "unable to read request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request format")
		return
	}

	var reqBody LicenseKeyRequest
	if err := json.Unmarshal(body, &reqBody); err != nil {
		logger.WarnContext(ctx, "unable to parse request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if reqBody.LicenseKey == nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if err := c.Validator.Struct(reqBody); err != nil {
		writeError(ctx, w, http.StatusBadRequest, validationMessage(err))
		return
	}

	res, err := c.ValidateCmd.Execute(ctx, command.ValidateLicenseRequest{LicenseKey: *reqBody.LicenseKey})
	if err != nil {
		logger.ErrorContext(ctx, "unable to validate license", "error", err)
		c.count("error")
		writeError(ctx, w, http.StatusInternalServerError, err.Error())
		return
	}

	if !res.Valid {
		c.count("invalid")
		writeJSON(ctx, w, http.StatusUnauthorized, LicenseValidateResponse{
			Valid:   false,
			Message: "Invalid or expired license",
		})
		return
	}

	c.count("valid")
	writeJSON(ctx, w, http.StatusOK, LicenseValidateResponse{
		Valid:       true,
		LicenseData: res.License,
	})
}

func (c LicenseValidate) count(result string) {
	if c.Results != nil {
		c.Results.WithLabelValues(result).Inc()
	}
}
