package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const licenseURIPrefix = "license://"

func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			licenseURIPrefix+"{license_key}",
			"License record from the license server",
			mcp.WithTemplateDescription(
				"Fetch the validation result for a license key, including the "+
					"stored record when the key is valid."),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleLicenseResource,
	)
}

func (s *Server) handleLicenseResource(
	ctx context.Context,
	request mcp.ReadResourceRequest,
) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, licenseURIPrefix) {
		return nil, fmt.Errorf("invalid license URI format: %s", uri)
	}

	key := strings.TrimPrefix(uri, licenseURIPrefix)
	if key == "" {
		return nil, fmt.Errorf("missing license_key in URI: %s", uri)
	}

	result, err := s.client.ValidateLicense(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to validate license %s: %w", key, err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal license: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
