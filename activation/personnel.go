// ABOUTME: Staff roster and the personnel time clock
// ABOUTME: Breaks accumulate and are subtracted from hours worked at clock-out
package activation

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/harperreed/activator/models"
)

// KnowledgePassScore is the minimum product knowledge score that counts as verified.
const KnowledgePassScore = 80

func (s *Service) AddPersonnel(ctx context.Context, p models.Personnel) (*models.Personnel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireName("personnel name", p.Name); err != nil {
		return nil, err
	}
	if p.HourlyRate < 0 {
		return nil, invalid("hourly rate must not be negative")
	}

	now := s.timestamp()
	p = models.Personnel{
		ID:           s.newID(),
		ActivationID: p.ActivationID,
		Name:         p.Name,
		Role:         p.Role,
		Email:        p.Email,
		Phone:        p.Phone,
		HourlyRate:   p.HourlyRate,
		ClockStatus:  models.ClockNotStarted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := insert(ctx, s.store.Personnel, p); err != nil {
		return nil, err
	}
	if err := s.record(ctx, p.ActivationID, models.VerbCreated, models.KindPersonnel, p.ID, p.Name); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) GetPersonnel(ctx context.Context, id uuid.UUID) (*models.Personnel, error) {
	return get(ctx, s.store.Personnel, id)
}

func (s *Service) ListPersonnel(ctx context.Context, activationID uuid.UUID) ([]models.Personnel, error) {
	return list(ctx, s.store.Personnel, activationID)
}

// ClockPersonnel applies a time clock action. Actions not allowed from the
// current state fail with ErrInvalidTransition; clocking out from a break is one of them.
func (s *Service) ClockPersonnel(ctx context.Context, id uuid.UUID, action models.ClockAction) (*models.Personnel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := get(ctx, s.store.Personnel, id)
	if err != nil {
		return nil, err
	}

	next, ok := p.ClockStatus.Apply(action)
	if !ok {
		switch action {
		case models.ActionClockIn, models.ActionStartBreak, models.ActionEndBreak, models.ActionClockOut:
			return nil, fmt.Errorf("%s cannot %s while %s: %w", p.Name, action, p.ClockStatus, models.ErrInvalidTransition)
		}
		return nil, invalid("unknown clock action %q", action)
	}

	now := s.timestamp()
	switch action {
	case models.ActionClockIn:
		p.ClockInTime = &now
		p.ClockOutTime = nil
		p.BreakDuration = 0
		p.TotalHoursWorked = 0
	case models.ActionStartBreak:
		p.BreakStartTime = &now
	case models.ActionEndBreak:
		if p.BreakStartTime != nil {
			p.BreakDuration += now.Sub(*p.BreakStartTime)
		}
		p.BreakStartTime = nil
	case models.ActionClockOut:
		p.ClockOutTime = &now
		if p.ClockInTime != nil {
			worked := now.Sub(*p.ClockInTime) - p.BreakDuration
			p.TotalHoursWorked = math.Max(0, math.Round(worked.Hours()*100)/100)
		}
	}

	p.ClockStatus = next
	p.UpdatedAt = now
	if err := save(ctx, s.store.Personnel, *p); err != nil {
		return nil, err
	}
	if err := s.record(ctx, p.ActivationID, models.VerbClocked, models.KindPersonnel, p.ID, string(action)); err != nil {
		return nil, err
	}
	return p, nil
}

// VerifyProductKnowledge stores a quiz score; scores of KnowledgePassScore or more verify.
func (s *Service) VerifyProductKnowledge(ctx context.Context, id uuid.UUID, score int) (*models.Personnel, error) {
	if score < 0 || score > 100 {
		return nil, invalid("score must be between 0 and 100")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := get(ctx, s.store.Personnel, id)
	if err != nil {
		return nil, err
	}
	p.ProductKnowledgeScore = score
	p.ProductKnowledgeVerified = score >= KnowledgePassScore
	p.UpdatedAt = s.timestamp()

	if err := save(ctx, s.store.Personnel, *p); err != nil {
		return nil, err
	}
	if err := s.record(ctx, p.ActivationID, models.VerbUpdated, models.KindPersonnel, p.ID, fmt.Sprintf("knowledge score %d", score)); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePersonnel(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := get(ctx, s.store.Personnel, id)
	if err != nil {
		return err
	}
	if err := s.store.Personnel.Delete(ctx, id.String()); err != nil {
		return fmt.Errorf("failed to delete personnel: %w", err)
	}
	return s.record(ctx, p.ActivationID, models.VerbDeleted, models.KindPersonnel, p.ID, p.Name)
}
