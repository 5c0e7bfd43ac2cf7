// ABOUTME: Run of show, readiness checklist and event media
// ABOUTME: Run of show lists in sequence order; checklists group by category
package activation

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/harperreed/activator/metrics"
	"github.com/harperreed/activator/models"
)

// AddRunOfShowItem adds a schedule entry. A zero Sequence appends it after the last one.
func (s *Service) AddRunOfShowItem(ctx context.Context, item models.RunOfShowItem) (*models.RunOfShowItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireName("run of show title", item.Title); err != nil {
		return nil, err
	}
	if item.DurationMinutes < 0 || item.Sequence < 0 {
		return nil, invalid("duration and sequence must not be negative")
	}

	if item.Sequence == 0 {
		existing, err := list(ctx, s.store.RunOfShow, item.ActivationID)
		if err != nil {
			return nil, err
		}
		for _, e := range existing {
			if e.Sequence > item.Sequence {
				item.Sequence = e.Sequence
			}
		}
		item.Sequence++
	}

	now := s.timestamp()
	item.ID = s.newID()
	item.Completed = false
	item.CompletedAt = nil
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := insert(ctx, s.store.RunOfShow, item); err != nil {
		return nil, err
	}
	if err := s.record(ctx, item.ActivationID, models.VerbCreated, models.KindRunOfShow, item.ID, item.Title); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListRunOfShow returns schedule entries ordered by Sequence, then StartTime.
func (s *Service) ListRunOfShow(ctx context.Context, activationID uuid.UUID) ([]models.RunOfShowItem, error) {
	items, err := list(ctx, s.store.RunOfShow, activationID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Sequence != items[j].Sequence {
			return items[i].Sequence < items[j].Sequence
		}
		a, b := items[i].StartTime, items[j].StartTime
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.Before(*b)
	})
	return items, nil
}

func (s *Service) SetRunOfShowCompleted(ctx context.Context, id uuid.UUID, done bool) (*models.RunOfShowItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := get(ctx, s.store.RunOfShow, id)
	if err != nil {
		return nil, err
	}
	if item.Completed == done {
		return item, nil
	}

	now := s.timestamp()
	item.Completed = done
	item.CompletedAt = nil
	if done {
		item.CompletedAt = &now
	}
	item.UpdatedAt = now

	if err := save(ctx, s.store.RunOfShow, *item); err != nil {
		return nil, err
	}
	if err := s.record(ctx, item.ActivationID, models.VerbUpdated, models.KindRunOfShow, item.ID, completionDetail(done)); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) DeleteRunOfShowItem(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := get(ctx, s.store.RunOfShow, id)
	if err != nil {
		return err
	}
	if err := s.store.RunOfShow.Delete(ctx, id.String()); err != nil {
		return fmt.Errorf("failed to delete run of show item: %w", err)
	}
	return s.record(ctx, item.ActivationID, models.VerbDeleted, models.KindRunOfShow, item.ID, item.Title)
}

// AddChecklistItem adds a readiness task. An empty category becomes "general".
func (s *Service) AddChecklistItem(ctx context.Context, item models.ChecklistItem) (*models.ChecklistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireName("checklist title", item.Title); err != nil {
		return nil, err
	}
	if item.Category == "" {
		item.Category = "general"
	}

	now := s.timestamp()
	item.ID = s.newID()
	item.Completed = false
	item.CompletedBy = ""
	item.CompletedAt = nil
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := insert(ctx, s.store.Checklist, item); err != nil {
		return nil, err
	}
	if err := s.record(ctx, item.ActivationID, models.VerbCreated, models.KindChecklist, item.ID, item.Title); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) ListChecklist(ctx context.Context, activationID uuid.UUID) ([]models.ChecklistItem, error) {
	return list(ctx, s.store.Checklist, activationID)
}

// ChecklistProgress groups the checklist by category with completion counts.
func (s *Service) ChecklistProgress(ctx context.Context, activationID uuid.UUID) (*metrics.ChecklistProgress, error) {
	items, err := list(ctx, s.store.Checklist, activationID)
	if err != nil {
		return nil, err
	}
	progress := metrics.GroupChecklist(items)
	return &progress, nil
}

func (s *Service) SetChecklistCompleted(ctx context.Context, id uuid.UUID, done bool, by string) (*models.ChecklistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := get(ctx, s.store.Checklist, id)
	if err != nil {
		return nil, err
	}
	if item.Completed == done {
		return item, nil
	}

	now := s.timestamp()
	item.Completed = done
	item.CompletedBy = ""
	item.CompletedAt = nil
	if done {
		item.CompletedBy = by
		item.CompletedAt = &now
	}
	item.UpdatedAt = now

	if err := save(ctx, s.store.Checklist, *item); err != nil {
		return nil, err
	}
	if err := s.record(ctx, item.ActivationID, models.VerbUpdated, models.KindChecklist, item.ID, completionDetail(done)); err != nil {
		return nil, err
	}
	return item, nil
}

// AddMedia stores a photo or video reference. New media starts unapproved.
func (s *Service) AddMedia(ctx context.Context, m models.MediaItem) (*models.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireName("media url", m.URL); err != nil {
		return nil, err
	}
	if m.Type == "" {
		m.Type = models.MediaPhoto
	}
	if !m.Type.Valid() {
		return nil, invalid("unknown media type %q", m.Type)
	}

	now := s.timestamp()
	m.ID = s.newID()
	m.Approved = false
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := insert(ctx, s.store.Media, m); err != nil {
		return nil, err
	}
	if err := s.record(ctx, m.ActivationID, models.VerbCreated, models.KindMedia, m.ID, m.URL); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) ListMedia(ctx context.Context, activationID uuid.UUID) ([]models.MediaItem, error) {
	return list(ctx, s.store.Media, activationID)
}

func (s *Service) ApproveMedia(ctx context.Context, id uuid.UUID) (*models.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := get(ctx, s.store.Media, id)
	if err != nil {
		return nil, err
	}
	if m.Approved {
		return m, nil
	}
	m.Approved = true
	m.UpdatedAt = s.timestamp()

	if err := save(ctx, s.store.Media, *m); err != nil {
		return nil, err
	}
	if err := s.record(ctx, m.ActivationID, models.VerbApproved, models.KindMedia, m.ID, ""); err != nil {
		return nil, err
	}
	return m, nil
}

func completionDetail(done bool) string {
	if done {
		return "completed"
	}
	return "reopened"
}
