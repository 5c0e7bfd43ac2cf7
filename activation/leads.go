// ABOUTME: Lead capture and on-site issue tracking
// ABOUTME: Leads are gated by the viewer's CanViewLeads flag
package activation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/store"
)

// CaptureLead stores a lead. CapturedBy, when set, must be staff on the same activation.
func (s *Service) CaptureLead(ctx context.Context, lead models.Lead) (*models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireName("lead name", lead.Name); err != nil {
		return nil, err
	}
	if lead.CapturedBy != nil {
		staff, err := s.store.Personnel.Get(ctx, lead.CapturedBy.String())
		if err != nil || staff.ActivationID != lead.ActivationID {
			return nil, fmt.Errorf("lead captured by %s: %w", lead.CapturedBy, store.ErrDanglingReference)
		}
	}

	now := s.timestamp()
	lead.ID = s.newID()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	if err := insert(ctx, s.store.Leads, lead); err != nil {
		return nil, err
	}
	if err := s.record(ctx, lead.ActivationID, models.VerbCreated, models.KindLead, lead.ID, lead.Name); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (s *Service) ListLeads(ctx context.Context, activationID uuid.UUID) ([]models.Lead, error) {
	return list(ctx, s.store.Leads, activationID)
}

// LeadsFor returns leads if viewer may see them.
func (s *Service) LeadsFor(ctx context.Context, activationID uuid.UUID, viewer models.Viewer) ([]models.Lead, error) {
	if !viewer.CanViewLeads() {
		return nil, fmt.Errorf("leads for %s: %w", activationID, models.ErrForbidden)
	}
	return s.ListLeads(ctx, activationID)
}

func (s *Service) DeleteLead(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, err := get(ctx, s.store.Leads, id)
	if err != nil {
		return err
	}
	if err := s.store.Leads.Delete(ctx, id.String()); err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	return s.record(ctx, lead.ActivationID, models.VerbDeleted, models.KindLead, lead.ID, lead.Name)
}

// ReportIssue opens an issue. Severity defaults to medium.
func (s *Service) ReportIssue(ctx context.Context, issue models.Issue) (*models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireName("issue title", issue.Title); err != nil {
		return nil, err
	}
	if issue.Severity == "" {
		issue.Severity = models.SeverityMedium
	}
	if !issue.Severity.Valid() {
		return nil, invalid("unknown severity %q", issue.Severity)
	}

	now := s.timestamp()
	issue.ID = s.newID()
	issue.Status = models.IssueOpen
	issue.Resolution = ""
	issue.ResolvedAt = nil
	issue.CreatedAt = now
	issue.UpdatedAt = now

	if err := insert(ctx, s.store.Issues, issue); err != nil {
		return nil, err
	}
	if err := s.record(ctx, issue.ActivationID, models.VerbReported, models.KindIssue, issue.ID, string(issue.Severity)+": "+issue.Title); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (s *Service) ListIssues(ctx context.Context, activationID uuid.UUID) ([]models.Issue, error) {
	return list(ctx, s.store.Issues, activationID)
}

func (s *Service) EscalateIssue(ctx context.Context, id uuid.UUID) (*models.Issue, error) {
	return s.transitionIssue(ctx, id, models.IssueEscalated, "")
}

// ResolveIssue closes an open or escalated issue with a resolution note.
func (s *Service) ResolveIssue(ctx context.Context, id uuid.UUID, resolution string) (*models.Issue, error) {
	return s.transitionIssue(ctx, id, models.IssueResolved, resolution)
}

func (s *Service) transitionIssue(ctx context.Context, id uuid.UUID, to models.IssueStatus, resolution string) (*models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue, err := get(ctx, s.store.Issues, id)
	if err != nil {
		return nil, err
	}
	if !issue.Status.CanTransition(to) {
		return nil, transitionError(models.KindIssue, issue.Status, to)
	}

	now := s.timestamp()
	verb := models.VerbEscalated
	if to == models.IssueResolved {
		issue.Resolution = resolution
		issue.ResolvedAt = &now
		verb = models.VerbResolved
	}
	issue.Status = to
	issue.UpdatedAt = now

	if err := save(ctx, s.store.Issues, *issue); err != nil {
		return nil, err
	}
	if err := s.record(ctx, issue.ActivationID, verb, models.KindIssue, issue.ID, resolution); err != nil {
		return nil, err
	}
	return issue, nil
}
