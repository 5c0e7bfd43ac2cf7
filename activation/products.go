// ABOUTME: Product inventory pipeline operations
// ABOUTME: Advance carries quantities forward; reconcile closes out counts
package activation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/harperreed/activator/metrics"
	"github.com/harperreed/activator/models"
)

// Reconciliation is the post-event count for a product.
type Reconciliation struct {
	Used     int    `json:"used"`
	Returned int    `json:"returned"`
	Damaged  int    `json:"damaged"`
	By       string `json:"by"`
}

// AddProduct stores a product request. Only QuantityRequested is kept from the input quantities.
func (s *Service) AddProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireName("product name", p.Name); err != nil {
		return nil, err
	}
	if p.QuantityRequested < 0 || p.UnitCost < 0 {
		return nil, invalid("quantity and unit cost must not be negative")
	}

	now := s.timestamp()
	p = models.Product{
		ID:                s.newID(),
		ActivationID:      p.ActivationID,
		Name:              p.Name,
		SKU:               p.SKU,
		UnitCost:          p.UnitCost,
		QuantityRequested: p.QuantityRequested,
		Status:            models.ProductRequested,
		Notes:             p.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := insert(ctx, s.store.Products, p); err != nil {
		return nil, err
	}
	if err := s.record(ctx, p.ActivationID, models.VerbCreated, models.KindProduct, p.ID, p.Name); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return get(ctx, s.store.Products, id)
}

func (s *Service) ListProducts(ctx context.Context, activationID uuid.UUID) ([]models.Product, error) {
	return list(ctx, s.store.Products, activationID)
}

func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := get(ctx, s.store.Products, id)
	if err != nil {
		return err
	}
	if err := s.store.Products.Delete(ctx, id.String()); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return s.record(ctx, p.ActivationID, models.VerbDeleted, models.KindProduct, p.ID, p.Name)
}

// AdvanceProduct moves a product one stage forward, copying the previous
// stage's quantity into the new one. In use and reconciled products are returned unchanged.
func (s *Service) AdvanceProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := get(ctx, s.store.Products, id)
	if err != nil {
		return nil, err
	}

	next, ok := p.Status.Next()
	if !ok {
		return p, nil
	}

	now := s.timestamp()
	switch next {
	case models.ProductConfirmed:
		p.QuantityConfirmed = p.QuantityRequested
	case models.ProductShipped:
		p.QuantityShipped = p.QuantityConfirmed
	case models.ProductDelivered:
		p.QuantityDelivered = p.QuantityShipped
		p.DeliveredAt = &now
	}

	from := p.Status
	p.Status = next
	p.UpdatedAt = now

	if err := save(ctx, s.store.Products, *p); err != nil {
		return nil, err
	}
	if err := s.record(ctx, p.ActivationID, models.VerbAdvanced, models.KindProduct, p.ID, fmt.Sprintf("%s -> %s", from, next)); err != nil {
		return nil, err
	}
	return p, nil
}

// ReconcileProduct records final counts for a delivered or in-use product.
// Counts may fall short of delivered (see Product.Unaccounted) but never exceed it.
func (s *Service) ReconcileProduct(ctx context.Context, id uuid.UUID, r Reconciliation) (*models.Product, error) {
	if r.Used < 0 || r.Returned < 0 || r.Damaged < 0 {
		return nil, invalid("reconciled quantities must not be negative")
	}
	if err := requireName("reconciled by", r.By); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := get(ctx, s.store.Products, id)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanReconcile() {
		return nil, transitionError(models.KindProduct, p.Status, models.ProductReconciled)
	}
	if total := r.Used + r.Returned + r.Damaged; total > p.QuantityDelivered {
		return nil, fmt.Errorf("product %s: %d counted, %d delivered: %w", p.Name, total, p.QuantityDelivered, models.ErrQuantityMismatch)
	}

	now := s.timestamp()
	p.QuantityUsed = r.Used
	p.QuantityReturned = r.Returned
	p.QuantityDamaged = r.Damaged
	p.Status = models.ProductReconciled
	p.ReconciledAt = &now
	p.ReconciledBy = r.By
	p.UpdatedAt = now

	if err := save(ctx, s.store.Products, *p); err != nil {
		return nil, err
	}
	detail := fmt.Sprintf("used %d, returned %d, damaged %d", r.Used, r.Returned, r.Damaged)
	if err := s.record(ctx, p.ActivationID, models.VerbReconciled, models.KindProduct, p.ID, detail); err != nil {
		return nil, err
	}
	return p, nil
}

// InventorySummary totals an activation's products.
func (s *Service) InventorySummary(ctx context.Context, activationID uuid.UUID) (*metrics.ProductSummary, error) {
	products, err := list(ctx, s.store.Products, activationID)
	if err != nil {
		return nil, err
	}
	summary := metrics.SummarizeProducts(products)
	return &summary, nil
}
