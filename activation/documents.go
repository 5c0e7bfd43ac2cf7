// ABOUTME: Document visibility and consent-gated e-signature
// ABOUTME: Signing needs an admin, explicit consent and a captured image
package activation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/store"
)

// SignatureRequest carries everything SignDocument checks before signing.
type SignatureRequest struct {
	Viewer        models.Viewer `json:"-"`
	SignerName    string        `json:"signer_name"`
	SignerEmail   string        `json:"signer_email"`
	SignatureData string        `json:"signature_data"`
	Consent       bool          `json:"consent"`
}

// AddDocument stores a document. A scoped document must name a stakeholder
// of the same activation.
func (s *Service) AddDocument(ctx context.Context, doc models.Document) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireName("document title", doc.Title); err != nil {
		return nil, err
	}
	if doc.Type == "" {
		doc.Type = models.DocumentOther
	}
	if !doc.Type.Valid() {
		return nil, invalid("unknown document type %q", doc.Type)
	}
	if doc.SignStatus == "" {
		doc.SignStatus = models.SignNotRequired
	}
	if doc.SignStatus == models.SignSigned {
		return nil, invalid("documents cannot be created already signed")
	}
	if doc.SignStatus != models.SignNotRequired && doc.SignStatus != models.SignPendingSignature {
		return nil, invalid("unknown sign status %q", doc.SignStatus)
	}
	if err := s.checkScope(ctx, doc); err != nil {
		return nil, err
	}

	now := s.timestamp()
	doc.ID = s.newID()
	doc.SignatureData = ""
	doc.SignedAt = nil
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if err := insert(ctx, s.store.Documents, doc); err != nil {
		return nil, err
	}
	if err := s.record(ctx, doc.ActivationID, models.VerbCreated, models.KindDocument, doc.ID, doc.Title); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Service) checkScope(ctx context.Context, doc models.Document) error {
	if doc.ScopedToStakeholderID == nil {
		return nil
	}
	sh, err := s.store.Stakeholders.Get(ctx, doc.ScopedToStakeholderID.String())
	if err != nil {
		return fmt.Errorf("document scope %s: %w", doc.ScopedToStakeholderID, store.ErrDanglingReference)
	}
	if sh.ActivationID != doc.ActivationID {
		return fmt.Errorf("document scope %s belongs to another activation: %w", sh.ID, store.ErrDanglingReference)
	}
	return nil
}

func (s *Service) GetDocument(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	return get(ctx, s.store.Documents, id)
}

// DocumentsFor returns the activation's documents that viewer may see.
func (s *Service) DocumentsFor(ctx context.Context, activationID uuid.UUID, viewer models.Viewer) ([]models.Document, error) {
	docs, err := list(ctx, s.store.Documents, activationID)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Document, 0, len(docs))
	for _, doc := range docs {
		if viewer.CanView(doc) {
			visible = append(visible, doc)
		}
	}
	return visible, nil
}

func (s *Service) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := get(ctx, s.store.Documents, id)
	if err != nil {
		return err
	}
	if err := s.store.Documents.Delete(ctx, id.String()); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return s.record(ctx, doc.ActivationID, models.VerbDeleted, models.KindDocument, doc.ID, doc.Title)
}

// RequestSignature marks a document as awaiting signature by signer.
func (s *Service) RequestSignature(ctx context.Context, id uuid.UUID, signerName, signerEmail string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := get(ctx, s.store.Documents, id)
	if err != nil {
		return nil, err
	}
	if doc.SignStatus != models.SignNotRequired {
		return nil, transitionError(models.KindDocument, doc.SignStatus, models.SignPendingSignature)
	}

	doc.SignStatus = models.SignPendingSignature
	setString(&doc.SignerName, nonEmpty(signerName))
	setString(&doc.SignerEmail, nonEmpty(signerEmail))
	doc.UpdatedAt = s.timestamp()

	if err := save(ctx, s.store.Documents, *doc); err != nil {
		return nil, err
	}
	if err := s.record(ctx, doc.ActivationID, models.VerbUpdated, models.KindDocument, doc.ID, "signature requested"); err != nil {
		return nil, err
	}
	return doc, nil
}

// SignDocument signs a pending document. It fails unless the request comes
// from an admin, the signer consented and a signature image was captured.
// Signing a scoped NDA marks that stakeholder's NDA as signed.
func (s *Service) SignDocument(ctx context.Context, id uuid.UUID, req SignatureRequest) (*models.Document, error) {
	if !req.Viewer.IsAdmin {
		return nil, fmt.Errorf("sign document %s: %w", id, models.ErrNotAdmin)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := get(ctx, s.store.Documents, id)
	if err != nil {
		return nil, err
	}
	if doc.SignStatus != models.SignPendingSignature {
		return nil, transitionError(models.KindDocument, doc.SignStatus, models.SignSigned)
	}
	if !req.Consent {
		return nil, fmt.Errorf("sign document %s: %w", id, models.ErrConsentRequired)
	}
	if !models.ValidSignatureData(req.SignatureData) {
		return nil, fmt.Errorf("sign document %s: %w", id, models.ErrSignatureRequired)
	}

	setString(&doc.SignerName, nonEmpty(req.SignerName))
	setString(&doc.SignerEmail, nonEmpty(req.SignerEmail))
	if err := requireName("signer name", doc.SignerName); err != nil {
		return nil, err
	}

	now := s.timestamp()
	doc.SignatureData = req.SignatureData
	doc.SignStatus = models.SignSigned
	doc.SignedAt = &now
	doc.UpdatedAt = now

	if err := save(ctx, s.store.Documents, *doc); err != nil {
		return nil, err
	}

	if doc.Type == models.DocumentNDA && doc.ScopedToStakeholderID != nil {
		sh, err := s.store.Stakeholders.Get(ctx, doc.ScopedToStakeholderID.String())
		switch {
		case errors.Is(err, store.ErrNotFound):
			// stakeholder was removed after scoping
		case err != nil:
			return nil, fmt.Errorf("failed to get stakeholder: %w", err)
		default:
			sh.NDAStatus = models.NDASigned
			sh.UpdatedAt = now
			if err := save(ctx, s.store.Stakeholders, *sh); err != nil {
				return nil, err
			}
		}
	}

	if err := s.record(ctx, doc.ActivationID, models.VerbSigned, models.KindDocument, doc.ID, doc.SignerName); err != nil {
		return nil, err
	}
	return doc, nil
}

func nonEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
