// ABOUTME: Venue booking pipeline operations
// ABOUTME: Forward-only status advance and walkthrough scheduling
package activation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/store"
)

type VenuePatch struct {
	Name                *string `json:"name,omitempty"`
	Address             *string `json:"address,omitempty"`
	City                *string `json:"city,omitempty"`
	State               *string `json:"state,omitempty"`
	Zip                 *string `json:"zip,omitempty"`
	ContactName         *string `json:"contact_name,omitempty"`
	ContactEmail        *string `json:"contact_email,omitempty"`
	ContactPhone        *string `json:"contact_phone,omitempty"`
	VenueType           *string `json:"venue_type,omitempty"`
	Capacity            *int    `json:"capacity,omitempty"`
	BookingCost         *int64  `json:"booking_cost,omitempty"`
	SpecialRequirements *string `json:"special_requirements,omitempty"`
}

// CreateVenue adds a venue. The first venue of an activation becomes its VenueID.
func (s *Service) CreateVenue(ctx context.Context, v models.Venue) (*models.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireName("venue name", v.Name); err != nil {
		return nil, err
	}
	if v.Status == "" {
		v.Status = models.VenueIdentified
	}
	if !v.Status.Valid() {
		return nil, invalid("unknown venue status %q", v.Status)
	}
	if v.Capacity < 0 || v.BookingCost < 0 {
		return nil, invalid("capacity and booking cost must not be negative")
	}

	now := s.timestamp()
	v.ID = s.newID()
	v.CreatedAt = now
	v.UpdatedAt = now
	if v.Status == models.VenueBooked && v.BookingConfirmedAt == nil {
		v.BookingConfirmedAt = &now
	}

	if err := insert(ctx, s.store.Venues, v); err != nil {
		return nil, err
	}

	a, err := get(ctx, s.store.Activations, v.ActivationID)
	if err != nil {
		return nil, err
	}
	if a.VenueID == nil {
		a.VenueID = &v.ID
		a.UpdatedAt = now
		if err := save(ctx, s.store.Activations, *a); err != nil {
			return nil, err
		}
	}

	if err := s.record(ctx, v.ActivationID, models.VerbCreated, models.KindVenue, v.ID, v.Name); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Service) GetVenue(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	return get(ctx, s.store.Venues, id)
}

func (s *Service) ListVenues(ctx context.Context, activationID uuid.UUID) ([]models.Venue, error) {
	return list(ctx, s.store.Venues, activationID)
}

// VenueForActivation returns the activation's venue, or nil when it has none.
// The venue named by Activation.VenueID wins; otherwise the first one added.
func (s *Service) VenueForActivation(ctx context.Context, activationID uuid.UUID) (*models.Venue, error) {
	a, err := get(ctx, s.store.Activations, activationID)
	if err != nil {
		return nil, err
	}

	if a.VenueID != nil {
		venue, err := s.store.Venues.Get(ctx, a.VenueID.String())
		if err == nil {
			return venue, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("failed to get venue: %w", err)
		}
	}

	venue, err := s.store.Venues.Find(ctx, activationID.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to find venue: %w", err)
	}
	return venue, nil
}

func (s *Service) UpdateVenue(ctx context.Context, id uuid.UUID, patch VenuePatch) (*models.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := get(ctx, s.store.Venues, id)
	if err != nil {
		return nil, err
	}

	setString(&v.Name, patch.Name)
	setString(&v.Address, patch.Address)
	setString(&v.City, patch.City)
	setString(&v.State, patch.State)
	setString(&v.Zip, patch.Zip)
	setString(&v.ContactName, patch.ContactName)
	setString(&v.ContactEmail, patch.ContactEmail)
	setString(&v.ContactPhone, patch.ContactPhone)
	setString(&v.VenueType, patch.VenueType)
	setString(&v.SpecialRequirements, patch.SpecialRequirements)
	if patch.Capacity != nil {
		v.Capacity = *patch.Capacity
	}
	if patch.BookingCost != nil {
		v.BookingCost = *patch.BookingCost
	}

	if err := requireName("venue name", v.Name); err != nil {
		return nil, err
	}
	if v.Capacity < 0 || v.BookingCost < 0 {
		return nil, invalid("capacity and booking cost must not be negative")
	}

	v.UpdatedAt = s.timestamp()
	if err := save(ctx, s.store.Venues, *v); err != nil {
		return nil, err
	}
	if err := s.record(ctx, v.ActivationID, models.VerbUpdated, models.KindVenue, v.ID, ""); err != nil {
		return nil, err
	}
	return v, nil
}

// AdvanceVenue moves a venue one step along the booking pipeline. Booked venues
// are returned unchanged. Reaching booked stamps BookingConfirmedAt.
func (s *Service) AdvanceVenue(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := get(ctx, s.store.Venues, id)
	if err != nil {
		return nil, err
	}

	next, ok := v.Status.Next()
	if !ok {
		return v, nil
	}

	now := s.timestamp()
	from := v.Status
	v.Status = next
	if next == models.VenueBooked {
		v.BookingConfirmedAt = &now
	}
	v.UpdatedAt = now

	if err := save(ctx, s.store.Venues, *v); err != nil {
		return nil, err
	}
	if err := s.record(ctx, v.ActivationID, models.VerbAdvanced, models.KindVenue, v.ID, fmt.Sprintf("%s -> %s", from, next)); err != nil {
		return nil, err
	}
	return v, nil
}

// ScheduleWalkthrough records a walkthrough date and notes. With a date, a venue
// still identified or contacted moves to walkthrough_scheduled; later statuses keep theirs.
func (s *Service) ScheduleWalkthrough(ctx context.Context, id uuid.UUID, date *time.Time, notes string) (*models.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := get(ctx, s.store.Venues, id)
	if err != nil {
		return nil, err
	}

	if date != nil {
		v.WalkthroughDate = date
		if v.Status == models.VenueIdentified || v.Status == models.VenueContacted {
			v.Status = models.VenueWalkthroughScheduled
		}
	}
	if notes != "" {
		v.WalkthroughNotes = notes
	}
	v.UpdatedAt = s.timestamp()

	if err := save(ctx, s.store.Venues, *v); err != nil {
		return nil, err
	}

	detail := "walkthrough notes"
	if date != nil {
		detail = "walkthrough " + date.Format(time.DateOnly)
	}
	if err := s.record(ctx, v.ActivationID, models.VerbUpdated, models.KindVenue, v.ID, detail); err != nil {
		return nil, err
	}
	return v, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// DeleteVenue removes a venue and clears the activation's VenueID when it pointed there.
func (s *Service) DeleteVenue(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := get(ctx, s.store.Venues, id)
	if err != nil {
		return err
	}
	if err := s.store.Venues.Delete(ctx, id.String()); err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}

	a, err := get(ctx, s.store.Activations, v.ActivationID)
	if err != nil {
		return err
	}
	if a.VenueID != nil && *a.VenueID == id {
		a.VenueID = nil
		a.UpdatedAt = s.timestamp()
		if err := save(ctx, s.store.Activations, *a); err != nil {
			return err
		}
	}
	return s.record(ctx, v.ActivationID, models.VerbDeleted, models.KindVenue, v.ID, v.Name)
}
