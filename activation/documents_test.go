// ABOUTME: Tests for stakeholder permissions, document visibility and signing
// ABOUTME: Signing must fail without admin, consent or a captured signature
package activation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/store"
)

const testSignature = "data:image/png;base64,iVBORw0KGgo="

func TestAddStakeholderDefaultPermissions(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	for _, typ := range []models.StakeholderType{
		models.StakeholderBrand, models.StakeholderVenue, models.StakeholderDistributor,
		models.StakeholderMarketingAgency, models.StakeholderVendor, models.StakeholderPersonnel, models.StakeholderOther,
	} {
		sh, err := svc.AddStakeholder(ctx, models.Stakeholder{ActivationID: a.ID, Name: string(typ), Type: typ})
		require.NoError(t, err)
		assert.Equal(t, models.DefaultPermissions(typ), sh.Permissions(), typ)
	}
}

func TestAddStakeholderIgnoresSuppliedPermissions(t *testing.T) {
	svc, _ := setupService(t)
	a := createActivation(t, svc)

	sh, err := svc.AddStakeholder(context.Background(), models.Stakeholder{
		ActivationID:  a.ID,
		Name:          "Rent-A-Tent",
		Type:          models.StakeholderVendor,
		CanViewBudget: true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPermissions(models.StakeholderVendor).CanViewBudget, sh.CanViewBudget)
	assert.Equal(t, models.NDANotRequired, sh.NDAStatus)
}

func TestUpdateStakeholderPermissions(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	sh, err := svc.AddStakeholder(ctx, models.Stakeholder{ActivationID: a.ID, Name: "Rent-A-Tent", Type: models.StakeholderVendor})
	require.NoError(t, err)

	got, err := svc.UpdateStakeholderPermissions(ctx, sh.ID, models.Permissions{CanViewLeads: true})
	require.NoError(t, err)
	assert.True(t, got.CanViewLeads)
	assert.False(t, got.CanViewBudget)
}

func TestDocumentsForViewer(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	brand, err := svc.AddStakeholder(ctx, models.Stakeholder{ActivationID: a.ID, Name: "Fizz Co", Type: models.StakeholderBrand})
	require.NoError(t, err)
	vendor, err := svc.AddStakeholder(ctx, models.Stakeholder{ActivationID: a.ID, Name: "Rent-A-Tent", Type: models.StakeholderVendor})
	require.NoError(t, err)

	_, err = svc.AddDocument(ctx, models.Document{ActivationID: a.ID, Title: "Master brief", Type: models.DocumentBrief})
	require.NoError(t, err)
	_, err = svc.AddDocument(ctx, models.Document{ActivationID: a.ID, Title: "Tent contract", Type: models.DocumentContract, ScopedToStakeholderID: &vendor.ID})
	require.NoError(t, err)

	titles := func(docs []models.Document) []string {
		out := make([]string, 0, len(docs))
		for _, d := range docs {
			out = append(out, d.Title)
		}
		return out
	}

	docs, err := svc.DocumentsFor(ctx, a.ID, models.Viewer{Stakeholder: vendor})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tent contract"}, titles(docs))

	docs, err = svc.DocumentsFor(ctx, a.ID, models.Viewer{Stakeholder: brand})
	require.NoError(t, err)
	assert.Equal(t, []string{"Master brief"}, titles(docs))

	docs, err = svc.DocumentsFor(ctx, a.ID, models.AdminViewer)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = svc.DocumentsFor(ctx, a.ID, models.Viewer{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestAddDocumentScopeMustExist(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)
	other := createActivation(t, svc)

	missing := uuid.New()
	_, err := svc.AddDocument(ctx, models.Document{ActivationID: a.ID, Title: "NDA", ScopedToStakeholderID: &missing})
	assert.ErrorIs(t, err, store.ErrDanglingReference)

	foreign, err := svc.AddStakeholder(ctx, models.Stakeholder{ActivationID: other.ID, Name: "Elsewhere"})
	require.NoError(t, err)
	_, err = svc.AddDocument(ctx, models.Document{ActivationID: a.ID, Title: "NDA", ScopedToStakeholderID: &foreign.ID})
	assert.ErrorIs(t, err, store.ErrDanglingReference)
}

func pendingNDA(t *testing.T, svc *Service) (*models.Document, *models.Stakeholder) {
	t.Helper()
	ctx := context.Background()
	a := createActivation(t, svc)

	sh, err := svc.AddStakeholder(ctx, models.Stakeholder{ActivationID: a.ID, Name: "Pier 9 Events", Type: models.StakeholderVenue, NDAStatus: models.NDAPending})
	require.NoError(t, err)
	doc, err := svc.AddDocument(ctx, models.Document{ActivationID: a.ID, Title: "Mutual NDA", Type: models.DocumentNDA, ScopedToStakeholderID: &sh.ID})
	require.NoError(t, err)
	doc, err = svc.RequestSignature(ctx, doc.ID, "Jordan Lee", "jordan@pier9.example")
	require.NoError(t, err)
	require.Equal(t, models.SignPendingSignature, doc.SignStatus)
	return doc, sh
}

func TestSignDocumentRequiresAdmin(t *testing.T) {
	svc, _ := setupService(t)
	doc, sh := pendingNDA(t, svc)

	_, err := svc.SignDocument(context.Background(), doc.ID, SignatureRequest{
		Viewer:        models.Viewer{Stakeholder: sh},
		SignatureData: testSignature,
		Consent:       true,
	})
	assert.ErrorIs(t, err, models.ErrNotAdmin)
}

func TestSignDocumentRequiresConsent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	doc, _ := pendingNDA(t, svc)

	_, err := svc.SignDocument(ctx, doc.ID, SignatureRequest{Viewer: models.AdminViewer, SignatureData: testSignature})
	assert.ErrorIs(t, err, models.ErrConsentRequired)

	stored, err := svc.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SignPendingSignature, stored.SignStatus)
	assert.Nil(t, stored.SignedAt)
}

func TestSignDocumentRequiresSignatureImage(t *testing.T) {
	svc, _ := setupService(t)
	doc, _ := pendingNDA(t, svc)

	for _, data := range []string{"", "Jordan Lee", "data:image/"} {
		_, err := svc.SignDocument(context.Background(), doc.ID, SignatureRequest{Viewer: models.AdminViewer, SignatureData: data, Consent: true})
		assert.ErrorIs(t, err, models.ErrSignatureRequired, "data %q", data)
	}
}

func TestSignDocumentMarksNDASigned(t *testing.T) {
	svc, clock := setupService(t)
	ctx := context.Background()
	doc, sh := pendingNDA(t, svc)

	signed, err := svc.SignDocument(ctx, doc.ID, SignatureRequest{Viewer: models.AdminViewer, SignatureData: testSignature, Consent: true})
	require.NoError(t, err)
	assert.Equal(t, models.SignSigned, signed.SignStatus)
	assert.Equal(t, "Jordan Lee", signed.SignerName)
	assert.Equal(t, testSignature, signed.SignatureData)
	require.NotNil(t, signed.SignedAt)
	assert.True(t, signed.SignedAt.Equal(clock.now))

	stakeholder, err := svc.GetStakeholder(ctx, sh.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NDASigned, stakeholder.NDAStatus)

	_, err = svc.SignDocument(ctx, doc.ID, SignatureRequest{Viewer: models.AdminViewer, SignatureData: testSignature, Consent: true})
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestSignDocumentNotRequested(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	doc, err := svc.AddDocument(ctx, models.Document{ActivationID: a.ID, Title: "Brief"})
	require.NoError(t, err)

	_, err = svc.SignDocument(ctx, doc.ID, SignatureRequest{Viewer: models.AdminViewer, SignerName: "A", SignatureData: testSignature, Consent: true})
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestResolveViewer(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)
	other := createActivation(t, svc)

	sh, err := svc.AddStakeholder(ctx, models.Stakeholder{ActivationID: a.ID, Name: "Fizz Co", Type: models.StakeholderBrand})
	require.NoError(t, err)

	v, err := svc.ResolveViewer(ctx, a.ID, &sh.ID, false)
	require.NoError(t, err)
	require.NotNil(t, v.Stakeholder)
	assert.Equal(t, sh.ID, v.StakeholderID())

	_, err = svc.ResolveViewer(ctx, other.ID, &sh.ID, false)
	assert.ErrorIs(t, err, models.ErrForbidden)

	anon, err := svc.ResolveViewer(ctx, a.ID, nil, false)
	require.NoError(t, err)
	assert.False(t, anon.CanViewBudget())
}

func TestDeletedStakeholderDocumentsStayAdminOnly(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createActivation(t, svc)

	venue, err := svc.AddStakeholder(ctx, models.Stakeholder{ActivationID: a.ID, Name: "Pier 9", Type: models.StakeholderVenue})
	require.NoError(t, err)
	brand, err := svc.AddStakeholder(ctx, models.Stakeholder{ActivationID: a.ID, Name: "Fizz Co", Type: models.StakeholderBrand})
	require.NoError(t, err)
	require.True(t, brand.CanViewAllDocuments)

	nda, err := svc.AddDocument(ctx, models.Document{ActivationID: a.ID, Title: "Venue NDA", Type: models.DocumentNDA, ScopedToStakeholderID: &venue.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStakeholder(ctx, venue.ID))

	got, err := svc.GetDocument(ctx, nda.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ScopedToStakeholderID)
	assert.Equal(t, venue.ID, *got.ScopedToStakeholderID)

	docs, err := svc.DocumentsFor(ctx, a.ID, models.Viewer{Stakeholder: brand})
	require.NoError(t, err)
	assert.Empty(t, docs)

	docs, err = svc.DocumentsFor(ctx, a.ID, models.Viewer{IsAdmin: true})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, nda.ID, docs[0].ID)
}
