// ABOUTME: Product inventory MCP tool handlers
// ABOUTME: Implements add_product, advance_product and reconcile_product
package handlers

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/models"
)

type ProductHandlers struct {
	svc *activation.Service
}

func NewProductHandlers(svc *activation.Service) *ProductHandlers {
	return &ProductHandlers{svc: svc}
}

type AddProductInput struct {
	ActivationID      string `json:"activation_id" jsonschema:"Activation UUID (required)"`
	Name              string `json:"name" jsonschema:"Product name (required)"`
	SKU               string `json:"sku,omitempty" jsonschema:"Stock keeping unit"`
	UnitCost          int64  `json:"unit_cost,omitempty" jsonschema:"Unit cost in cents"`
	QuantityRequested int    `json:"quantity_requested" jsonschema:"Units requested"`
	Notes             string `json:"notes,omitempty" jsonschema:"Notes"`
}

func (h *ProductHandlers) AddProduct(ctx context.Context, request *mcp.CallToolRequest, input AddProductInput) (*mcp.CallToolResult, ProductOutput, error) {
	activationID, err := parseID("activation_id", input.ActivationID)
	if err != nil {
		return nil, ProductOutput{}, err
	}
	p, err := h.svc.AddProduct(ctx, models.Product{
		ActivationID:      activationID,
		Name:              input.Name,
		SKU:               input.SKU,
		UnitCost:          input.UnitCost,
		QuantityRequested: input.QuantityRequested,
		Notes:             input.Notes,
	})
	if err != nil {
		return nil, ProductOutput{}, err
	}
	return nil, productToOutput(p), nil
}

type ProductIDInput struct {
	ProductID string `json:"product_id" jsonschema:"Product UUID (required)"`
}

func (h *ProductHandlers) AdvanceProduct(ctx context.Context, request *mcp.CallToolRequest, input ProductIDInput) (*mcp.CallToolResult, ProductOutput, error) {
	id, err := parseID("product_id", input.ProductID)
	if err != nil {
		return nil, ProductOutput{}, err
	}
	p, err := h.svc.AdvanceProduct(ctx, id)
	if err != nil {
		return nil, ProductOutput{}, err
	}
	return nil, productToOutput(p), nil
}

type ReconcileProductInput struct {
	ProductID string `json:"product_id" jsonschema:"Product UUID (required)"`
	Used      int    `json:"used" jsonschema:"Units used"`
	Returned  int    `json:"returned" jsonschema:"Units returned"`
	Damaged   int    `json:"damaged" jsonschema:"Units damaged"`
	By        string `json:"by" jsonschema:"Who performed the count (required)"`
}

func (h *ProductHandlers) ReconcileProduct(ctx context.Context, request *mcp.CallToolRequest, input ReconcileProductInput) (*mcp.CallToolResult, ProductOutput, error) {
	id, err := parseID("product_id", input.ProductID)
	if err != nil {
		return nil, ProductOutput{}, err
	}
	p, err := h.svc.ReconcileProduct(ctx, id, activation.Reconciliation{
		Used:     input.Used,
		Returned: input.Returned,
		Damaged:  input.Damaged,
		By:       input.By,
	})
	if err != nil {
		return nil, ProductOutput{}, err
	}
	return nil, productToOutput(p), nil
}
