package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/soozu/stove-license/internal/command"
	"github.com/soozu/stove-license/internal/domain"
)

// LicenseGenerateRequest is the JSON request body for minting a license.
// Every field is optional.
type LicenseGenerateRequest struct {
	UserID         *string `json:"user_id" validate:"omitnil,max=255"`
	DurationDays   *int    `json:"duration_days" validate:"omitnil,min=1,max=36500"`
	DiscordContact *string `json:"discord_contact" validate:"omitnil,max=255"`
}

// LicenseGenerateResponse is the JSON response for a minted license.
type LicenseGenerateResponse struct {
	Success     bool           `json:"success"`
	LicenseData domain.License `json:"license_data"`
}

// LicenseGenerate handles POST /api/generate_license.
type LicenseGenerate struct {
	GenerateCmd command.Command[command.GenerateLicenseRequest, domain.License]
	Validator   *validator.Validate
}

func (c LicenseGenerate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	if domain.AdminFromContext(ctx) == "" {
		writeError(ctx, w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var reqBody LicenseGenerateRequest
	if r.Body != nil {
		err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&reqBody)
		if err != nil && !errors.Is(err, io.EOF) {
			logger.WarnContext(ctx, "unable to parse request body", "error", err)
			writeError(ctx, w, http.StatusBadRequest, "Invalid request format")
			return
		}
	}

	if err := c.Validator.Struct(reqBody); err != nil {
		writeError(ctx, w, http.StatusBadRequest, validationMessage(err))
		return
	}

	req := command.GenerateLicenseRequest{}
	if reqBody.UserID != nil {
		req.UserID = *reqBody.UserID
	}
	if reqBody.DurationDays != nil {
		req.DurationDays = *reqBody.DurationDays
	}
	if reqBody.DiscordContact != nil {
		req.DiscordContact = *reqBody.DiscordContact
	}

	license, err := c.GenerateCmd.Execute(ctx, req)
	if err != nil {
		logger.ErrorContext(ctx, "unable to generate license", "error", err)
		if errors.Is(err, command.ErrInvalidDuration) {
			writeError(ctx, w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(ctx, w, http.StatusInternalServerError, "Failed to save license")
		return
	}

	writeJSON(ctx, w, http.StatusOK, LicenseGenerateResponse{
		Success:     true,
		LicenseData: license,
	})
}
