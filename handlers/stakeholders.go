// ABOUTME: Stakeholder and document MCP tool handlers
// ABOUTME: Implements add_stakeholder, add_document, list_documents, request_signature and sign_document
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/models"
)

// StakeholderHandlers act as the activation operator, so signing requests
// are always admin-initiated. Document listing can impersonate a stakeholder.
type StakeholderHandlers struct {
	svc *activation.Service
}

func NewStakeholderHandlers(svc *activation.Service) *StakeholderHandlers {
	return &StakeholderHandlers{svc: svc}
}

type AddStakeholderInput struct {
	ActivationID string `json:"activation_id" jsonschema:"Activation UUID (required)"`
	Name         string `json:"name" jsonschema:"Stakeholder name (required)"`
	Company      string `json:"company,omitempty" jsonschema:"Company"`
	Email        string `json:"email,omitempty" jsonschema:"Email address"`
	Phone        string `json:"phone,omitempty" jsonschema:"Phone number"`
	Type         string `json:"type,omitempty" jsonschema:"brand, venue, distributor, marketing_agency, vendor, personnel or other"`
	NDAStatus    string `json:"nda_status,omitempty" jsonschema:"not_required, pending or signed"`
}

func (h *StakeholderHandlers) AddStakeholder(ctx context.Context, request *mcp.CallToolRequest, input AddStakeholderInput) (*mcp.CallToolResult, StakeholderOutput, error) {
	activationID, err := parseID("activation_id", input.ActivationID)
	if err != nil {
		return nil, StakeholderOutput{}, err
	}
	sh, err := h.svc.AddStakeholder(ctx, models.Stakeholder{
		ActivationID: activationID,
		Name:         input.Name,
		Company:      input.Company,
		Email:        input.Email,
		Phone:        input.Phone,
		Type:         models.StakeholderType(input.Type),
		NDAStatus:    models.NDAStatus(input.NDAStatus),
	})
	if err != nil {
		return nil, StakeholderOutput{}, err
	}
	return nil, stakeholderToOutput(sh), nil
}

type AddDocumentInput struct {
	ActivationID  string `json:"activation_id" jsonschema:"Activation UUID (required)"`
	Title         string `json:"title" jsonschema:"Document title (required)"`
	Type          string `json:"type,omitempty" jsonschema:"contract, nda, brief, permit, insurance or other"`
	Content       string `json:"content,omitempty" jsonschema:"Document body"`
	FileURL       string `json:"file_url,omitempty" jsonschema:"Link to the file"`
	StakeholderID string `json:"stakeholder_id,omitempty" jsonschema:"Scope the document to this stakeholder (omit for admin-only)"`
	RequireSign   bool   `json:"require_signature,omitempty" jsonschema:"Start the document pending signature"`
}

func (h *StakeholderHandlers) AddDocument(ctx context.Context, request *mcp.CallToolRequest, input AddDocumentInput) (*mcp.CallToolResult, DocumentOutput, error) {
	activationID, err := parseID("activation_id", input.ActivationID)
	if err != nil {
		return nil, DocumentOutput{}, err
	}
	scope, err := parseOptionalID("stakeholder_id", input.StakeholderID)
	if err != nil {
		return nil, DocumentOutput{}, err
	}

	docType := models.DocumentType(input.Type)
	if docType == "" {
		docType = models.DocumentOther
	}
	signStatus := models.SignNotRequired
	if input.RequireSign {
		signStatus = models.SignPendingSignature
	}

	doc, err := h.svc.AddDocument(ctx, models.Document{
		ActivationID:          activationID,
		Title:                 input.Title,
		Type:                  docType,
		Content:               input.Content,
		FileURL:               input.FileURL,
		ScopedToStakeholderID: scope,
		SignStatus:            signStatus,
	})
	if err != nil {
		return nil, DocumentOutput{}, err
	}
	return nil, documentToOutput(doc), nil
}

type ListDocumentsInput struct {
	ActivationID  string `json:"activation_id" jsonschema:"Activation UUID (required)"`
	StakeholderID string `json:"stakeholder_id,omitempty" jsonschema:"List only what this stakeholder may see (omit for everything)"`
}

type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
}

func (h *StakeholderHandlers) ListDocuments(ctx context.Context, request *mcp.CallToolRequest, input ListDocumentsInput) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	activationID, err := parseID("activation_id", input.ActivationID)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}
	stakeholderID, err := parseOptionalID("stakeholder_id", input.StakeholderID)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	viewer, err := h.svc.ResolveViewer(ctx, activationID, stakeholderID, stakeholderID == nil)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}
	docs, err := h.svc.DocumentsFor(ctx, activationID, viewer)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	result := make([]DocumentOutput, len(docs))
	for i := range docs {
		result[i] = documentToOutput(&docs[i])
	}
	return nil, ListDocumentsOutput{Documents: result}, nil
}

type RequestSignatureInput struct {
	DocumentID  string `json:"document_id" jsonschema:"Document UUID (required)"`
	SignerName  string `json:"signer_name,omitempty" jsonschema:"Expected signer name"`
	SignerEmail string `json:"signer_email,omitempty" jsonschema:"Expected signer email"`
}

func (h *StakeholderHandlers) RequestSignature(ctx context.Context, request *mcp.CallToolRequest, input RequestSignatureInput) (*mcp.CallToolResult, DocumentOutput, error) {
	id, err := parseID("document_id", input.DocumentID)
	if err != nil {
		return nil, DocumentOutput{}, err
	}
	doc, err := h.svc.RequestSignature(ctx, id, input.SignerName, input.SignerEmail)
	if err != nil {
		return nil, DocumentOutput{}, err
	}
	return nil, documentToOutput(doc), nil
}

type SignDocumentInput struct {
	DocumentID    string `json:"document_id" jsonschema:"Document UUID (required)"`
	SignerName    string `json:"signer_name" jsonschema:"Name of the person signing (required)"`
	SignerEmail   string `json:"signer_email,omitempty" jsonschema:"Email of the person signing"`
	SignatureData string `json:"signature_data" jsonschema:"Captured signature as a data:image/ URL (required)"`
	Consent       bool   `json:"consent" jsonschema:"Signer consented to sign electronically (must be true)"`
}

func (h *StakeholderHandlers) SignDocument(ctx context.Context, request *mcp.CallToolRequest, input SignDocumentInput) (*mcp.CallToolResult, DocumentOutput, error) {
	id, err := parseID("document_id", input.DocumentID)
	if err != nil {
		return nil, DocumentOutput{}, err
	}
	doc, err := h.svc.SignDocument(ctx, id, activation.SignatureRequest{
		Viewer:        models.AdminViewer,
		SignerName:    input.SignerName,
		SignerEmail:   input.SignerEmail,
		SignatureData: input.SignatureData,
		Consent:       input.Consent,
	})
	if err != nil {
		return nil, DocumentOutput{}, fmt.Errorf("failed to sign document: %w", err)
	}
	return nil, documentToOutput(doc), nil
}
