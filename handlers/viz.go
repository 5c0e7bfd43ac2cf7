// ABOUTME: GraphViz visualization MCP handlers
// ABOUTME: Provides generate_graph tool for agents
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/viz"
)

type VizHandlers struct {
	generator *viz.GraphGenerator
}

func NewVizHandlers(svc *activation.Service) *VizHandlers {
	return &VizHandlers{generator: viz.NewGraphGenerator(svc)}
}

type GenerateGraphInput struct {
	ActivationID string `json:"activation_id" jsonschema:"Activation UUID (required)"`
	Type         string `json:"type,omitempty" jsonschema:"Graph type: pipeline (default) or stakeholders"`
}

type GenerateGraphOutput struct {
	GraphType string `json:"graph_type"`
	DOTSource string `json:"dot_source"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

func (h *VizHandlers) GenerateGraph(ctx context.Context, request *mcp.CallToolRequest, input GenerateGraphInput) (*mcp.CallToolResult, GenerateGraphOutput, error) {
	id, err := parseID("activation_id", input.ActivationID)
	if err != nil {
		return nil, GenerateGraphOutput{}, err
	}
	graphType := input.Type
	if graphType == "" {
		graphType = viz.GraphPipeline
	}

	dot, err := h.generator.Generate(ctx, graphType, id)
	if err != nil {
		return nil, GenerateGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}

	// Every graph is a tree hanging off the activation node.
	edgeCount := strings.Count(dot, "->")

	return nil, GenerateGraphOutput{
		GraphType: graphType,
		DOTSource: dot,
		NodeCount: edgeCount + 1,
		EdgeCount: edgeCount,
	}, nil
}
