// ABOUTME: Tests for the JSON HTTP API
// ABOUTME: Exercises routes through httptest and checks viewer gating and error statuses
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/metrics"
	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/seed"
	"github.com/harperreed/activator/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

func setupServer(t *testing.T) (*Server, *activation.Service) {
	t.Helper()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	svc := activation.New(store.NewMemory(), activation.WithClock(func() time.Time { return now }))
	t.Cleanup(func() { _ = svc.Store().Close() })
	return NewServer(svc, nil), svc
}

func do(t *testing.T, s *Server, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s, _ := setupServer(t)
	rec := do(t, s, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestActivationLifecycle(t *testing.T) {
	s, _ := setupServer(t)

	rec := do(t, s, http.MethodPost, "/api/activations", map[string]any{
		"name": "Summer Sampling Tour", "brand": "Fizz Co", "budget_total": 2_500_000, "lead_goal": 200,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	a := decode[models.Activation](t, rec)
	assert.Equal(t, models.PhasePlanning, a.Phase)

	rec = do(t, s, http.MethodPost, "/api/activations/"+a.ID.String()+"/advance", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.PhasePreEvent, decode[models.Activation](t, rec).Phase)

	rec = do(t, s, http.MethodPatch, "/api/activations/"+a.ID.String(), map[string]any{"lead_goal": 300}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 300, decode[models.Activation](t, rec).LeadGoal)

	rec = do(t, s, http.MethodGet, "/api/activations/"+a.ID.String()+"/activity", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	activity := decode[struct {
		Activity []models.ActivityEntry `json:"activity"`
	}](t, rec)
	assert.NotEmpty(t, activity.Activity)

	rec = do(t, s, http.MethodDelete, "/api/activations/"+a.ID.String(), nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/activations/"+a.ID.String(), nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorStatuses(t *testing.T) {
	s, svc := setupServer(t)
	ctx := context.Background()
	a, err := svc.CreateActivation(ctx, models.Activation{Name: "Pop-up", Brand: "Acme", BudgetTotal: 100_000})
	require.NoError(t, err)
	item, err := svc.AddBudgetItem(ctx, models.BudgetItem{ActivationID: a.ID, Description: "Tent", EstimatedAmount: 5_000})
	require.NoError(t, err)

	rec := do(t, s, http.MethodGet, "/api/activations/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/activations", map[string]any{"brand": "no name"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/budget-items/"+item.ID.String()+"/transition", map[string]any{"status": "paid"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/budget-items/"+item.ID.String()+"/transition", map[string]any{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBudgetVisibility(t *testing.T) {
	s, svc := setupServer(t)
	ctx := context.Background()
	a, err := seed.Demo(ctx, svc, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	stakeholders, err := svc.ListStakeholders(ctx, a.ID)
	require.NoError(t, err)

	var brand, venue models.Stakeholder
	for _, sh := range stakeholders {
		switch sh.Type {
		case models.StakeholderBrand:
			brand = sh
		case models.StakeholderVenue:
			venue = sh
		}
	}

	path := "/api/activations/" + a.ID.String() + "/budget"

	rec := do(t, s, http.MethodGet, path, nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, s, http.MethodGet, path, nil, map[string]string{HeaderStakeholderID: venue.ID.String()})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, s, http.MethodGet, path, nil, map[string]string{HeaderStakeholderID: brand.ID.String()})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Summary struct {
			TotalActual int64 `json:"total_actual"`
			BudgetPct   int   `json:"budget_pct"`
		} `json:"summary"`
		Items []models.BudgetItem `json:"items"`
	}](t, rec)
	assert.Equal(t, int64(800_000), body.Summary.TotalActual)
	assert.Equal(t, 32, body.Summary.BudgetPct)
	assert.Len(t, body.Items, 5)

	rec = do(t, s, http.MethodGet, path, nil, map[string]string{HeaderAdmin: "true"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, path, nil, map[string]string{HeaderStakeholderID: "00000000-0000-0000-0000-000000000001"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBudgetFiguresHiddenOnSummaryRoutes(t *testing.T) {
	s, svc := setupServer(t)
	ctx := context.Background()
	a, err := svc.CreateActivation(ctx, models.Activation{Name: "Pop-up", Brand: "Acme", BudgetTotal: 2_500_000})
	require.NoError(t, err)
	item, err := svc.AddBudgetItem(ctx, models.BudgetItem{ActivationID: a.ID, Description: "Tent", EstimatedAmount: 500_000})
	require.NoError(t, err)
	_, err = svc.SubmitBudgetItem(ctx, item.ID)
	require.NoError(t, err)
	_, err = svc.ApproveBudgetItem(ctx, item.ID, "dana")
	require.NoError(t, err)
	_, err = svc.MarkBudgetItemPaid(ctx, item.ID, nil)
	require.NoError(t, err)
	_, err = svc.GenerateReport(ctx, a.ID, "dana", "")
	require.NoError(t, err)
	vendor, err := svc.AddStakeholder(ctx, models.Stakeholder{ActivationID: a.ID, Name: "Alex", Type: models.StakeholderVendor})
	require.NoError(t, err)

	base := "/api/activations/" + a.ID.String()
	asVendor := map[string]string{HeaderStakeholderID: vendor.ID.String()}
	asAdmin := map[string]string{HeaderAdmin: "true"}

	rec := do(t, s, http.MethodGet, base+"/budget", nil, asVendor)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, s, http.MethodGet, base, nil, asVendor)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	d := decode[activation.Dashboard](t, rec)
	assert.True(t, d.BudgetHidden)
	assert.Zero(t, d.Activation.BudgetTotal)
	assert.Zero(t, d.Metrics.TotalBudgetSpent)
	assert.Zero(t, d.Metrics.BudgetPct)
	assert.Zero(t, d.Budget.TotalActual)

	rec = do(t, s, http.MethodGet, base, nil, asAdmin)
	require.Equal(t, http.StatusOK, rec.Code)
	d = decode[activation.Dashboard](t, rec)
	assert.False(t, d.BudgetHidden)
	assert.Equal(t, int64(500_000), d.Metrics.TotalBudgetSpent)

	rec = do(t, s, http.MethodGet, base+"/metrics", nil, asVendor)
	require.Equal(t, http.StatusOK, rec.Code)
	m := decode[metrics.ActivationMetrics](t, rec)
	assert.Zero(t, m.TotalBudgetSpent)
	assert.Zero(t, m.BudgetPct)

	rec = do(t, s, http.MethodGet, base+"/reports", nil, asVendor)
	require.Equal(t, http.StatusOK, rec.Code)
	reports := decode[struct {
		Reports []models.Report `json:"reports"`
	}](t, rec)
	require.Len(t, reports.Reports, 1)
	assert.Zero(t, reports.Reports[0].TotalBudgetSpent)

	rec = do(t, s, http.MethodGet, "/api/activations", nil, asVendor)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[struct {
		Activations []models.Activation `json:"activations"`
	}](t, rec)
	require.Len(t, listed.Activations, 1)
	assert.Zero(t, listed.Activations[0].BudgetTotal)

	rec = do(t, s, http.MethodGet, "/api/activations", nil, map[string]string{HeaderStakeholderID: "00000000-0000-0000-0000-000000000001"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDocumentsAndSigning(t *testing.T) {
	s, svc := setupServer(t)
	ctx := context.Background()
	a, err := svc.CreateActivation(ctx, models.Activation{Name: "Pop-up", Brand: "Acme"})
	require.NoError(t, err)

	rec := do(t, s, http.MethodPost, "/api/activations/"+a.ID.String()+"/stakeholders", map[string]any{"name": "Jordan", "type": "venue"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	venue := decode[models.Stakeholder](t, rec)

	rec = do(t, s, http.MethodPost, "/api/activations/"+a.ID.String()+"/documents", map[string]any{
		"title": "Venue NDA", "type": "nda", "scoped_to_stakeholder_id": venue.ID, "sign_status": "pending_signature",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	nda := decode[models.Document](t, rec)

	rec = do(t, s, http.MethodPost, "/api/activations/"+a.ID.String()+"/documents", map[string]any{"title": "Run sheet", "type": "brief"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/activations/"+a.ID.String()+"/documents", nil, map[string]string{HeaderStakeholderID: venue.ID.String()})
	require.Equal(t, http.StatusOK, rec.Code)
	docs := decode[struct {
		Documents []models.Document `json:"documents"`
	}](t, rec)
	require.Len(t, docs.Documents, 1)
	assert.Equal(t, nda.ID, docs.Documents[0].ID)

	sign := map[string]any{"signer_name": "Jordan", "signature_data": "data:image/png;base64,AAAA", "consent": true}

	rec = do(t, s, http.MethodPost, "/api/documents/"+nda.ID.String()+"/sign", sign, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/documents/"+nda.ID.String()+"/sign", map[string]any{"signer_name": "Jordan", "signature_data": "data:image/png;base64,AAAA"}, map[string]string{HeaderAdmin: "1"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/documents/"+nda.ID.String()+"/sign", sign, map[string]string{HeaderAdmin: "1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.SignSigned, decode[models.Document](t, rec).SignStatus)
}

func TestProductReconcileRoutes(t *testing.T) {
	s, svc := setupServer(t)
	ctx := context.Background()
	a, err := svc.CreateActivation(ctx, models.Activation{Name: "Pop-up", Brand: "Acme"})
	require.NoError(t, err)

	rec := do(t, s, http.MethodPost, "/api/activations/"+a.ID.String()+"/products", map[string]any{"name": "Lime", "quantity_requested": 120}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	p := decode[models.Product](t, rec)

	for i := 0; i < 3; i++ {
		rec = do(t, s, http.MethodPost, "/api/products/"+p.ID.String()+"/advance", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec = do(t, s, http.MethodPost, "/api/products/"+p.ID.String()+"/reconcile", map[string]any{"used": 200, "by": "Riley"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/products/"+p.ID.String()+"/reconcile", map[string]any{"used": 100, "returned": 15, "damaged": 5, "by": "Riley"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ProductReconciled, decode[models.Product](t, rec).Status)

	rec = do(t, s, http.MethodGet, "/api/activations/"+a.ID.String()+"/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_samples":100`)
}

func TestRunStopsOnCancel(t *testing.T) {
	s, _ := setupServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
