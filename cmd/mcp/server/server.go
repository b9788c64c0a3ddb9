// Package server provides the MCP server implementation.
package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/soozu/stove-license/internal/client"
	"github.com/soozu/stove-license/internal/domain"
)

// LicenseAPI is the subset of the license server API exposed to agents.
type LicenseAPI interface {
	Index(ctx context.Context) (client.StatusResponse, error)
	GenerateLicense(ctx context.Context, req client.GenerateRequest) (domain.License, error)
	ValidateLicense(ctx context.Context, key string) (client.ValidateResult, error)
	DeactivateLicense(ctx context.Context, key string) error
}

// Server is the MCP server for the license server.
type Server struct {
	client    LicenseAPI
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server with the given API client.
func NewServer(apiClient LicenseAPI) *Server {
	s := &Server{
		client: apiClient,
	}

	s.mcpServer = server.NewMCPServer(
		"stove-license",
		"1.0.0",
		server.WithResourceCapabilities(true, false),
		server.WithLogging(),
	)

	s.registerTools()
	s.registerResources()

	return s
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("generate_license",
		mcp.WithDescription(
			"Generate a new license key. Requires the server API key. "+
				"Returns the stored license record including its expiry date."),
		mcp.WithString("user_id",
			mcp.Description("Identifier of the license owner (default: default_user)"),
		),
		mcp.WithNumber("duration_days",
			mcp.Description("Validity period in days (default: 30)"),
		),
		mcp.WithString("discord_contact",
			mcp.Description("Discord handle to contact the owner"),
		),
	), s.handleGenerateLicense)

	s.mcpServer.AddTool(mcp.NewTool("validate_license",
		mcp.WithDescription("Check whether a license key exists and has not expired."),
		mcp.WithString("license_key",
			mcp.Required(),
			mcp.Description("The license key, e.g. STOVE-202405-0123456789AB"),
		),
	), s.handleValidateLicense)

	s.mcpServer.AddTool(mcp.NewTool("deactivate_license",
		mcp.WithDescription("Mark a license key inactive. Requires the server API key."),
		mcp.WithString("license_key",
			mcp.Required(),
			mcp.Description("The license key to deactivate"),
		),
	), s.handleDeactivateLicense)

	s.mcpServer.AddTool(mcp.NewTool("server_status",
		mcp.WithDescription("Report whether the license server is online, with its version and clock."),
	), s.handleServerStatus)
}
