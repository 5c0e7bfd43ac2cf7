// ABOUTME: Stakeholder management and viewer resolution
// ABOUTME: New stakeholders take the default permissions for their type
package activation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/harperreed/activator/models"
)

// AddStakeholder stores a stakeholder with DefaultPermissions for its type.
func (s *Service) AddStakeholder(ctx context.Context, sh models.Stakeholder) (*models.Stakeholder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireName("stakeholder name", sh.Name); err != nil {
		return nil, err
	}
	if sh.Type == "" {
		sh.Type = models.StakeholderOther
	}
	if !sh.Type.Valid() {
		return nil, invalid("unknown stakeholder type %q", sh.Type)
	}
	if sh.NDAStatus == "" {
		sh.NDAStatus = models.NDANotRequired
	}
	if !sh.NDAStatus.Valid() {
		return nil, invalid("unknown nda status %q", sh.NDAStatus)
	}

	now := s.timestamp()
	sh.ID = s.newID()
	sh.ApplyPermissions(models.DefaultPermissions(sh.Type))
	sh.CreatedAt = now
	sh.UpdatedAt = now

	if err := insert(ctx, s.store.Stakeholders, sh); err != nil {
		return nil, err
	}
	if err := s.record(ctx, sh.ActivationID, models.VerbCreated, models.KindStakeholder, sh.ID, sh.Name); err != nil {
		return nil, err
	}
	return &sh, nil
}

func (s *Service) GetStakeholder(ctx context.Context, id uuid.UUID) (*models.Stakeholder, error) {
	return get(ctx, s.store.Stakeholders, id)
}

func (s *Service) ListStakeholders(ctx context.Context, activationID uuid.UUID) ([]models.Stakeholder, error) {
	return list(ctx, s.store.Stakeholders, activationID)
}

// UpdateStakeholderPermissions overrides a stakeholder's capability flags.
func (s *Service) UpdateStakeholderPermissions(ctx context.Context, id uuid.UUID, p models.Permissions) (*models.Stakeholder, error) {
	return s.mutateStakeholder(ctx, id, "permissions", func(sh *models.Stakeholder) error {
		sh.ApplyPermissions(p)
		return nil
	})
}

func (s *Service) SetNDAStatus(ctx context.Context, id uuid.UUID, status models.NDAStatus) (*models.Stakeholder, error) {
	return s.mutateStakeholder(ctx, id, "nda "+string(status), func(sh *models.Stakeholder) error {
		if !status.Valid() {
			return invalid("unknown nda status %q", status)
		}
		sh.NDAStatus = status
		return nil
	})
}

func (s *Service) mutateStakeholder(ctx context.Context, id uuid.UUID, detail string, fn func(*models.Stakeholder) error) (*models.Stakeholder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sh, err := get(ctx, s.store.Stakeholders, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sh); err != nil {
		return nil, err
	}

	sh.UpdatedAt = s.timestamp()
	if err := save(ctx, s.store.Stakeholders, *sh); err != nil {
		return nil, err
	}
	if err := s.record(ctx, sh.ActivationID, models.VerbUpdated, models.KindStakeholder, sh.ID, detail); err != nil {
		return nil, err
	}
	return sh, nil
}

// DeleteStakeholder removes a stakeholder. Documents scoped to them keep
// the stale scope, which no remaining stakeholder matches, so only admins see them.
func (s *Service) DeleteStakeholder(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sh, err := get(ctx, s.store.Stakeholders, id)
	if err != nil {
		return err
	}
	if err := s.store.Stakeholders.Delete(ctx, id.String()); err != nil {
		return fmt.Errorf("failed to delete stakeholder: %w", err)
	}
	return s.record(ctx, sh.ActivationID, models.VerbDeleted, models.KindStakeholder, sh.ID, sh.Name)
}

// ResolveViewer builds a Viewer for an activation. A nil stakeholder id with
// isAdmin false yields an anonymous viewer that sees nothing restricted.
func (s *Service) ResolveViewer(ctx context.Context, activationID uuid.UUID, stakeholderID *uuid.UUID, isAdmin bool) (models.Viewer, error) {
	viewer := models.Viewer{IsAdmin: isAdmin}
	if stakeholderID == nil {
		return viewer, nil
	}

	sh, err := get(ctx, s.store.Stakeholders, *stakeholderID)
	if err != nil {
		return models.Viewer{}, err
	}
	if sh.ActivationID != activationID {
		return models.Viewer{}, fmt.Errorf("stakeholder %s does not belong to activation %s: %w", sh.ID, activationID, models.ErrForbidden)
	}
	viewer.Stakeholder = sh
	return viewer, nil
}
