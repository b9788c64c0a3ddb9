package controller

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/soozu/stove-license/internal/command"
	"github.com/soozu/stove-license/internal/command/mocks"
	"github.com/soozu/stove-license/internal/datasources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLicenseDeactivate_ServeHTTP(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		admin      bool
		callCmd    bool
		cmdErr     error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "deactivated",
			body:       `{"license_key":"STOVE-202405-0123456789AB"}`,
			admin:      true,
			callCmd:    true,
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true}`,
		},
		{
			name:       "not_admin",
			body:       `{"license_key":"STOVE-202405-0123456789AB"}`,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Unauthorized"}`,
		},
		{
			name:       "missing_key",
			body:       `{}`,
			admin:      true,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"License key required"}`,
		},
		{
			name:       "empty_key",
			body:       `{"license_key":""}`,
			admin:      true,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"License key required"}`,
		},
		{
			name:       "malformed_body",
			body:       `not json`,
			admin:      true,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid request format"}`,
		},
		{
			name:       "store_missing",
			body:       `{"license_key":"STOVE-202405-0123456789AB"}`,
			admin:      true,
			callCmd:    true,
			cmdErr:     fmt.Errorf("deactivating license: %w", command.ErrStoreNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"License not found"}`,
		},
		{
			name:       "unknown_key_reports_error_with_ok_status",
			body:       `{"license_key":"STOVE-202405-0123456789AB"}`,
			admin:      true,
			callCmd:    true,
			cmdErr:     fmt.Errorf("deactivating license: %w", command.ErrLicenseNotFound),
			wantStatus: http.StatusOK,
			wantBody:   `{"error":"Invalid license key"}`,
		},
		{
			name:       "storage_error",
			body:       `{"license_key":"STOVE-202405-0123456789AB"}`,
			admin:      true,
			callCmd:    true,
			cmdErr:     fmt.Errorf("saving licenses: %w", datasources.ErrStorage),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"saving licenses: license storage error"}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := mocks.NewMockCommand[command.DeactivateLicenseRequest, command.Empty](t)
			if tc.callCmd {
				cmd.EXPECT().
					Execute(mock.Anything, command.DeactivateLicenseRequest{LicenseKey: "STOVE-202405-0123456789AB"}).
					Return(command.Empty{}, tc.cmdErr)
			}

			c := LicenseDeactivate{DeactivateCmd: cmd, Validator: NewValidator()}

			req := httptest.NewRequest(http.MethodPost, "/api/deactivate_license", strings.NewReader(tc.body))
			if tc.admin {
				req = adminRequest(http.MethodPost, "/api/deactivate_license", tc.body)
			}
			rec := httptest.NewRecorder()
			c.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
		})
	}
}
