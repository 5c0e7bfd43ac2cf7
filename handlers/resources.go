// ABOUTME: MCP resource handlers for exposing activation data
// ABOUTME: Provides read-only access to activations and their dashboards via URI
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/activator/activation"
)

const resourceScheme = "activator://"

type ResourceHandlers struct {
	svc *activation.Service
}

func NewResourceHandlers(svc *activation.Service) *ResourceHandlers {
	return &ResourceHandlers{svc: svc}
}

func ActivationListResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "activation_list",
		Title:       "Activations",
		Description: "Every activation with its phase and status",
		MIMEType:    "application/json",
		URI:         resourceScheme + "activations",
	}
}

func ActivationResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "activation",
		Title:       "Activation dashboard",
		Description: "Dashboard for one activation. URI format: activator://activations/{activation_id}",
		MIMEType:    "application/json",
		URITemplate: resourceScheme + "activations/{activation_id}",
	}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if request == nil || request.Params == nil {
		return nil, fmt.Errorf("resource URI is required")
	}
	uri := request.Params.URI
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")
	if parts[0] != "activations" {
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
	if len(parts) == 1 || parts[1] == "" {
		return h.readAllActivations(ctx, uri)
	}
	return h.readActivation(ctx, uri, parts[1])
}

func (h *ResourceHandlers) readAllActivations(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	activations, err := h.svc.ListActivations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ActivationOutput, len(activations))
	for i := range activations {
		out[i] = activationToOutput(&activations[i])
	}
	return jsonResource(uri, out)
}

func (h *ResourceHandlers) readActivation(ctx context.Context, uri, rawID string) (*mcp.ReadResourceResult, error) {
	id, err := parseID("activation_id", rawID)
	if err != nil {
		return nil, err
	}
	d, err := h.svc.Dashboard(ctx, id)
	if err != nil {
		return nil, err
	}
	return jsonResource(uri, d)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
