// Package main provides the entry point for the license server MCP server.
//
// This MCP server lets AI agents generate, validate and deactivate licenses
// through the license server HTTP API.
//
// Configuration:
//
//	LICENSE_SERVER_URL - Base URL of the license server (default: http://localhost:5000)
//	LICENSE_API_KEY    - Admin API key; required for generate and deactivate
//
// Usage with an MCP client:
//
//	mcp add stove-license --transport stdio \
//	  --env LICENSE_API_KEY=xxx \
//	  -- /path/to/stove-license-mcp
package main

import (
	"log"

	"github.com/soozu/stove-license/cmd/mcp/server"
	"github.com/soozu/stove-license/internal/app"
	"github.com/soozu/stove-license/internal/client"
)

import _ "github.com/joho/godotenv/autoload"

func main() {
	apiURL := app.GetEnvAsString("LICENSE_SERVER_URL", "http://localhost:5000")
	apiKey := app.GetEnvAsString("LICENSE_API_KEY", "")
	if apiKey == "" {
		log.Print("LICENSE_API_KEY not set, generate and deactivate will be rejected")
	}

	apiClient := client.NewClient(apiURL, apiKey).
		WithKeyPrefix(app.GetEnvAsString("LICENSE_KEY_PREFIX", "STOVE"))
	srv := server.NewServer(apiClient)

	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
