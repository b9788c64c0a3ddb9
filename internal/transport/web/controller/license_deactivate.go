package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/soozu/stove-license/internal/command"
	"github.com/soozu/stove-license/internal/domain"
)

type successResponse struct {
	Success bool `json:"success"`
}

// LicenseDeactivate handles POST /api/deactivate_license.
type LicenseDeactivate struct {
	DeactivateCmd command.Command[command.DeactivateLicenseRequest, command.Empty]
	Validator     *validator.Validate
}

func (c LicenseDeactivate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	if domain.AdminFromContext(ctx) == "" {
		writeError(ctx, w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var reqBody LicenseKeyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&reqBody); err != nil {
		logger.WarnContext(ctx, "unable to parse request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if reqBody.LicenseKey == nil || *reqBody.LicenseKey == "" {
		writeError(ctx, w, http.StatusBadRequest, "License key required")
		return
	}
	if err := c.Validator.Struct(reqBody); err != nil {
		writeError(ctx, w, http.StatusBadRequest, validationMessage(err))
		return
	}

	_, err := c.DeactivateCmd.Execute(ctx, command.DeactivateLicenseRequest{LicenseKey: *reqBody.LicenseKey})
	switch {
	case err == nil:
		writeJSON(ctx, w, http.StatusOK, successResponse{Success: true})
	case errors.Is(err, command.ErrStoreNotFound):
		writeError(ctx, w, http.StatusNotFound, "License not found")
	case errors.Is(err, command.ErrLicenseNotFound):
		// Existing clients expect 200 with an error body for unknown keys.
		writeError(ctx, w, http.StatusOK, "Invalid license key")
	default:
		logger.ErrorContext(ctx, "unable to deactivate license", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, err.Error())
	}
}
