package controller

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/soozu/stove-license/internal/command"
	"github.com/soozu/stove-license/internal/command/mocks"
	"github.com/soozu/stove-license/internal/datasources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLicenseValidate_ServeHTTP(t *testing.T) {
	license := testLicense()

	cases := []struct {
		name        string
		method      string
		body        string
		contentType string
		wantKey     *string
		res         command.ValidateLicenseResponse
		cmdErr      error
		wantStatus  int
		wantBody    string
		wantResult  string
	}{
		{
			name:       "get_is_liveness",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"License server is running"}`,
		},
		{
			name:        "valid_license",
			method:      http.MethodPost,
			body:        `{"license_key":"STOVE-202405-0123456789AB"}`,
			contentType: "application/json",
			wantKey:     ptr("STOVE-202405-0123456789AB"),
			res:         command.ValidateLicenseResponse{Valid: true, License: &license},
			wantStatus:  http.StatusOK,
			wantBody:    `{"valid":true,"license_data":{"license_key":"STOVE-202405-0123456789AB","user_id":"user-42","created_at":"2024-05-14 09:30:15","expiry_date":"2024-06-13 09:30:15","discord_contact":"someone#1234","is_active":true}}`,
			wantResult:  "valid",
		},
		{
			name:       "valid_license_without_content_type",
			method:     http.MethodPost,
			body:       `{"license_key":"STOVE-202405-0123456789AB"}`,
			wantKey:    ptr("STOVE-202405-0123456789AB"),
			res:        command.ValidateLicenseResponse{Valid: true, License: &license},
			wantStatus: http.StatusOK,
			wantResult: "valid",
		},
		{
			name:       "invalid_license",
			method:     http.MethodPost,
			body:       `{"license_key":"STOVE-202405-FFFFFFFFFFFF"}`,
			wantKey:    ptr("STOVE-202405-FFFFFFFFFFFF"),
			res:        command.ValidateLicenseResponse{Reason: command.InvalidReasonUnknown},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"valid":false,"message":"Invalid or expired license"}`,
			wantResult: "invalid",
		},
		{
			name:       "empty_key_is_unknown",
			method:     http.MethodPost,
			body:       `{"license_key":""}`,
			wantKey:    ptr(""),
			res:        command.ValidateLicenseResponse{Reason: command.InvalidReasonUnknown},
			wantStatus: http.StatusUnauthorized,
			wantResult: "invalid",
		},
		{
			name:       "missing_key",
			method:     http.MethodPost,
			body:       `{"key":"STOVE-202405-0123456789AB"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid request data"}`,
		},
		{
			name:       "not_json",
			method:     http.MethodPost,
			body:       `license_key=STOVE`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid request format"}`,
		},
		{
			name:       "key_too_long",
			method:     http.MethodPost,
			body:       `{"license_key":"` + strings.Repeat("A", 129) + `"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "storage_error",
			method:     http.MethodPost,
			body:       `{"license_key":"STOVE-202405-0123456789AB"}`,
			wantKey:    ptr("STOVE-202405-0123456789AB"),
			cmdErr:     errors.New("loading licenses: license storage error"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"loading licenses: license storage error"}`,
			wantResult: "error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := mocks.NewMockCommand[command.ValidateLicenseRequest, command.ValidateLicenseResponse](t)
			if tc.wantKey != nil {
				cmd.EXPECT().
					Execute(mock.Anything, command.ValidateLicenseRequest{LicenseKey: *tc.wantKey}).
					Return(tc.res, tc.cmdErr)
			}

			results := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_validations_total"}, []string{"result"})
			c := LicenseValidate{ValidateCmd: cmd, Validator: NewValidator(), Results: results}

			req := httptest.NewRequest(tc.method, "/api/validate_license", strings.NewReader(tc.body))
			if tc.contentType != "" {
				req.Header.Set("Content-Type", tc.contentType)
			}
			rec := httptest.NewRecorder()
			c.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantBody != "" {
				assert.JSONEq(t, tc.wantBody, rec.Body.String())
			}
			if tc.wantResult != "" {
				assert.Equal(t, float64(1), testutil.ToFloat64(results.WithLabelValues(tc.wantResult)))
			}
		})
	}
}

func TestLicenseValidate_NilResults(t *testing.T) {
	cmd := mocks.NewMockCommand[command.ValidateLicenseRequest, command.ValidateLicenseResponse](t)
	cmd.EXPECT().
		Execute(mock.Anything, mock.Anything).
		Return(command.ValidateLicenseResponse{}, datasources.ErrStorage)

	c := LicenseValidate{ValidateCmd: cmd, Validator: NewValidator()}
	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/validate_license", strings.NewReader(`{"license_key":"x"}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func ptr[T any](v T) *T {
	return &v
}
