package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/soozu/stove-license/internal/client"
	"github.com/soozu/stove-license/internal/domain"
)

// now is replaced in tests.
var now = time.Now

func (s *Server) handleGenerateLicense(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments

	req := client.GenerateRequest{}
	if userID, ok := args["user_id"].(string); ok {
		req.UserID = userID
	}
	if contact, ok := args["discord_contact"].(string); ok {
		req.DiscordContact = contact
	}
	if days, ok := args["duration_days"].(float64); ok {
		if days < 1 || days != float64(int(days)) {
			return mcp.NewToolResultError("duration_days must be a positive whole number"), nil
		}
		req.DurationDays = int(days)
	}

	license, err := s.client.GenerateLicense(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to generate license: %v", err)), nil
	}

	return formatLicenseResult("Generated license", license)
}

func (s *Server) handleValidateLicense(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	key, ok := request.Params.Arguments["license_key"].(string)
	if !ok || key == "" {
		return mcp.NewToolResultError("license_key is required"), nil
	}

	result, err := s.client.ValidateLicense(ctx, key)
	if errors.Is(err, client.ErrInvalidKeyFormat) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to validate license: %v", err)), nil
	}

	if !result.Valid || result.License == nil {
		return mcp.NewToolResultText(fmt.Sprintf("License %s is invalid or expired.", key)), nil
	}

	remaining, err := result.License.TimeRemaining(now(), time.Local)
	if err != nil {
		return formatLicenseResult("License is valid", *result.License)
	}
	header := fmt.Sprintf("License is valid, %s remaining", domain.FormatRemaining(remaining))
	return formatLicenseResult(header, *result.License)
}

func (s *Server) handleDeactivateLicense(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	key, ok := request.Params.Arguments["license_key"].(string)
	if !ok || key == "" {
		return mcp.NewToolResultError("license_key is required"), nil
	}

	if err := s.client.DeactivateLicense(ctx, key); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to deactivate license: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully deactivated license %s", key)), nil
}

func (s *Server) handleServerStatus(
	ctx context.Context,
	_ mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	status, err := s.client.Index(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("license server unreachable: %v", err)), nil
	}

	msg := fmt.Sprintf("Status: %s\nVersion: %s\nServer time: %s", status.Status, status.Version, status.Timestamp)
	return mcp.NewToolResultText(msg), nil
}

func formatLicenseResult(header string, license domain.License) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(license, "", "  ")
	if err != nil {
		errMsg := fmt.Sprintf("failed to format license: %v", err)
		return mcp.NewToolResultError(errMsg), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s:\n\n%s", header, string(data))), nil
}
