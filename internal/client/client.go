// Package client provides an HTTP client for the license server API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/soozu/stove-license/internal/domain"
)

// ErrInvalidKeyFormat is returned without contacting the server when a key
// lacks the expected prefix.
var ErrInvalidKeyFormat = errors.New("invalid license key format")

// ErrUnknownLicense is returned when deactivating a key the server does not know.
var ErrUnknownLicense = errors.New("unknown license key")

// APIError is a non-success response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// StatusResponse is returned by the index and health routes.
type StatusResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// GenerateRequest describes a license to mint. Zero values take server defaults.
type GenerateRequest struct {
	UserID         string `json:"user_id,omitempty"`
	DurationDays   int    `json:"duration_days,omitempty"`
	DiscordContact string `json:"discord_contact,omitempty"`
}

// ValidateResult is the outcome of a validation call.
type ValidateResult struct {
	Valid   bool            `json:"valid"`
	License *domain.License `json:"license_data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Client is an HTTP client for the license server API.
type Client struct {
	baseURL    string
	apiKey     string
	keyPrefix  string
	httpClient *http.Client
}

// NewClient creates a new API client. apiKey may be empty for the public routes.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		apiKey:    apiKey,
		keyPrefix: domain.DefaultLicenseKeyPrefix,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithKeyPrefix returns a copy of the client that checks keys against prefix.
func (c *Client) WithKeyPrefix(prefix string) *Client {
	clone := *c
	clone.keyPrefix = prefix
	return &clone
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshalling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	return resp, nil
}

func (c *Client) handleResponse(resp *http.Response, result any) error {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readAPIError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

func readAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var errBody struct {
		Error string `json:"error"`
	}
	message := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
		message = errBody.Error
	}

	return &APIError{StatusCode: resp.StatusCode, Message: message}
}

// Index fetches the server's version and clock.
func (c *Client) Index(ctx context.Context) (StatusResponse, error) {
	return c.status(ctx, "/")
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) (StatusResponse, error) {
	return c.status(ctx, "/health")
}

func (c *Client) status(ctx context.Context, path string) (StatusResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return StatusResponse{}, err
	}

	var result StatusResponse
	if err := c.handleResponse(resp, &result); err != nil {
		return StatusResponse{}, err
	}
	return result, nil
}

// GenerateLicense mints a new license. Requires an API key.
func (c *Client) GenerateLicense(ctx context.Context, req GenerateRequest) (domain.License, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/generate_license", req)
	if err != nil {
		return domain.License{}, err
	}

	var result struct {
		Success     bool           `json:"success"`
		LicenseData domain.License `json:"license_data"`
	}
	if err := c.handleResponse(resp, &result); err != nil {
		return domain.License{}, err
	}
	if !result.Success {
		return domain.License{}, errors.New("server did not confirm license creation")
	}
	return result.LicenseData, nil
}

// ValidateLicense checks a key. An unknown or expired key is reported as
// Valid false, not as an error.
func (c *Client) ValidateLicense(ctx context.Context, key string) (ValidateResult, error) {
	key = strings.TrimSpace(key)
	if !domain.HasKeyPrefix(key, c.keyPrefix) {
		return ValidateResult{}, fmt.Errorf("%w: expected prefix %s-", ErrInvalidKeyFormat, c.keyPrefix)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/validate_license", map[string]string{"license_key": key})
	if err != nil {
		return ValidateResult{}, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		defer func() { _ = resp.Body.Close() }()
		var result ValidateResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return ValidateResult{}, fmt.Errorf("decoding response: %w", err)
		}
		result.Valid = false
		return result, nil
	}

	var result ValidateResult
	if err := c.handleResponse(resp, &result); err != nil {
		return ValidateResult{}, err
	}
	return result, nil
}

// DeactivateLicense marks a key inactive. Requires an API key.
func (c *Client) DeactivateLicense(ctx context.Context, key string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/deactivate_license", map[string]string{"license_key": key})
	if err != nil {
		return err
	}

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.handleResponse(resp, &result); err != nil {
		return err
	}

	// The server reports an unknown key with a 200 and an error body.
	if result.Error != "" {
		return fmt.Errorf("%w: %s", ErrUnknownLicense, result.Error)
	}
	if !result.Success {
		return errors.New("server did not confirm deactivation")
	}
	return nil
}
