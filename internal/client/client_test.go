package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "s3cret")
}

func TestClient_Index(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"online","version":"v0.2.5","timestamp":"2024-05-14 09:30:15"}`))
	})

	status, err := c.Index(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusResponse{Status: "online", Version: "v0.2.5", Timestamp: "2024-05-14 09:30:15"}, status)
}

func TestClient_GenerateLicense(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate_license", r.URL.Path)
		assert.Equal(t, "s3cret", r.Header.Get("X-API-Key"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"user_id": "user-42", "duration_days": float64(7)}, body)

		_, _ = w.Write([]byte(`{"success":true,"license_data":{"license_key":"STOVE-202405-0123456789AB","user_id":"user-42","created_at":"2024-05-14 09:30:15","expiry_date":"2024-05-21 09:30:15","discord_contact":"","is_active":true}}`))
	})

	license, err := c.GenerateLicense(context.Background(), GenerateRequest{UserID: "user-42", DurationDays: 7})
	require.NoError(t, err)
	assert.Equal(t, "STOVE-202405-0123456789AB", license.LicenseKey)
	assert.True(t, license.IsActive)
}

func TestClient_GenerateLicenseUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
	})

	_, err := c.GenerateLicense(context.Background(), GenerateRequest{})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Unauthorized", apiErr.Message)
}

func TestClient_ValidateLicense(t *testing.T) {
	cases := []struct {
		name      string
		key       string
		status    int
		body      string
		wantValid bool
		wantErr   error
		wantCall  bool
	}{
		{
			name:      "valid",
			key:       "STOVE-202405-0123456789AB",
			status:    http.StatusOK,
			body:      `{"valid":true,"license_data":{"license_key":"STOVE-202405-0123456789AB","expiry_date":"2024-06-13 09:30:15","is_active":true}}`,
			wantValid: true,
			wantCall:  true,
		},
		{
			name:     "invalid",
			key:      "STOVE-202405-FFFFFFFFFFFF",
			status:   http.StatusUnauthorized,
			body:     `{"valid":false,"message":"Invalid or expired license"}`,
			wantCall: true,
		},
		{
			name:    "wrong_prefix",
			key:     "OTHER-202405-0123456789AB",
			wantErr: ErrInvalidKeyFormat,
		},
		{
			name:    "empty",
			key:     "",
			wantErr: ErrInvalidKeyFormat,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				called = true
				var body map[string]string
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, tc.key, body["license_key"])
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			result, err := c.ValidateLicense(context.Background(), tc.key)
			assert.Equal(t, tc.wantCall, called)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantValid, result.Valid)
			if tc.wantValid {
				require.NotNil(t, result.License)
				assert.Equal(t, tc.key, result.License.LicenseKey)
			} else {
				assert.Equal(t, "Invalid or expired license", result.Message)
			}
		})
	}
}

func TestClient_ValidateLicenseServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"loading licenses: license storage error"}`))
	})

	_, err := c.ValidateLicense(context.Background(), "STOVE-202405-0123456789AB")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestClient_DeactivateLicense(t *testing.T) {
	cases := []struct {
		name       string
		status     int
		body       string
		wantErrIs  error
		wantStatus int
	}{
		{name: "success", status: http.StatusOK, body: `{"success":true}`},
		{name: "unknown_key", status: http.StatusOK, body: `{"error":"Invalid license key"}`, wantErrIs: ErrUnknownLicense},
		{name: "no_store", status: http.StatusNotFound, body: `{"error":"License not found"}`, wantStatus: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/deactivate_license", r.URL.Path)
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			err := c.DeactivateLicense(context.Background(), "STOVE-202405-0123456789AB")
			switch {
			case tc.wantErrIs != nil:
				require.ErrorIs(t, err, tc.wantErrIs)
			case tc.wantStatus != 0:
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tc.wantStatus, apiErr.StatusCode)
			default:
				require.NoError(t, err)
			}
		})
	}
}
