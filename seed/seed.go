// ABOUTME: Demo data for trying out the activation pipelines
// ABOUTME: Builds one activation with records in every pipeline stage
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/models"
)

// Demo creates a sample activation through the service so every record
// passes the same validation and leaves an activity trail.
func Demo(ctx context.Context, svc *activation.Service, now time.Time) (*models.Activation, error) {
	day := func(offset int) *time.Time {
		t := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
		return &t
	}

	a, err := svc.CreateActivation(ctx, models.Activation{
		Name:            "Summer Sampling Tour",
		Brand:           "Fizz Co",
		Description:     "Three day sparkling water sampling at Pier 9",
		Color:           "#2BB3A3",
		Status:          models.ActivationActive,
		EventDate:       day(14),
		EventEndDate:    day(16),
		SetupDate:       day(13),
		TeardownDate:    day(17),
		BudgetTotal:     2_500_000,
		LeadGoal:        200,
		SampleGoal:      1000,
		InteractionGoal: 1500,
		Tags:            []string{"sampling", "summer"},
		CreatedBy:       "demo",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create activation: %w", err)
	}
	if _, err := svc.AdvancePhase(ctx, a.ID); err != nil {
		return nil, err
	}

	venue, err := svc.CreateVenue(ctx, models.Venue{
		ActivationID: a.ID,
		Name:         "Pier 9",
		Address:      "9 Harbor Way",
		City:         "Chicago",
		State:        "IL",
		ContactName:  "Jordan Lee",
		ContactEmail: "jordan@pier9.example",
		VenueType:    "waterfront",
		Capacity:     400,
		BookingCost:  500_000,
	})
	if err != nil {
		return nil, err
	}
	if _, err := svc.AdvanceVenue(ctx, venue.ID); err != nil {
		return nil, err
	}
	if _, err := svc.ScheduleWalkthrough(ctx, venue.ID, day(3), "Check power drops near the north dock"); err != nil {
		return nil, err
	}

	if err := seedBudget(ctx, svc, a); err != nil {
		return nil, err
	}
	if err := seedProducts(ctx, svc, a); err != nil {
		return nil, err
	}
	if err := seedPeople(ctx, svc, a); err != nil {
		return nil, err
	}
	if err := seedSchedule(ctx, svc, a, day(14)); err != nil {
		return nil, err
	}

	if _, err := svc.RecordInteractions(ctx, a.ID, 320); err != nil {
		return nil, err
	}
	return svc.GetActivation(ctx, a.ID)
}

func seedBudget(ctx context.Context, svc *activation.Service, a *models.Activation) error {
	items := []struct {
		category models.BudgetCategory
		desc     string
		vendor   string
		estimate int64
		actual   int64
		status   models.BudgetStatus
	}{
		{models.CategoryVenue, "Pier 9 rental", "Pier 9", 450_000, 500_000, models.BudgetPaid},
		{models.CategoryStaffing, "Brand ambassadors", "StaffCo", 300_000, 300_000, models.BudgetPaid},
		{models.CategorySignage, "Banners and flags", "PrintHaus", 80_000, 0, models.BudgetApproved},
		{models.CategoryEquipment, "Coolers and tents", "Rent-A-Tent", 120_000, 0, models.BudgetPendingApproval},
		{models.CategoryPermits, "Special event permit", "City of Chicago", 25_000, 0, models.BudgetEstimated},
	}

	for _, it := range items {
		item, err := svc.AddBudgetItem(ctx, models.BudgetItem{
			ActivationID:    a.ID,
			Category:        it.category,
			Description:     it.desc,
			Vendor:          it.vendor,
			EstimatedAmount: it.estimate,
		})
		if err != nil {
			return err
		}

		steps := map[models.BudgetStatus]int{
			models.BudgetEstimated:       0,
			models.BudgetPendingApproval: 1,
			models.BudgetApproved:        2,
			models.BudgetPaid:            3,
		}[it.status]
		if steps >= 1 {
			if _, err := svc.SubmitBudgetItem(ctx, item.ID); err != nil {
				return err
			}
		}
		if steps >= 2 {
			if _, err := svc.ApproveBudgetItem(ctx, item.ID, "Dana Brooks"); err != nil {
				return err
			}
		}
		if steps >= 3 {
			actual := it.actual
			if _, err := svc.MarkBudgetItemPaid(ctx, item.ID, &actual); err != nil {
				return err
			}
		}
	}
	return nil
}

func seedProducts(ctx context.Context, svc *activation.Service, a *models.Activation) error {
	lime, err := svc.AddProduct(ctx, models.Product{ActivationID: a.ID, Name: "Sparkling Lime 12oz", SKU: "FZ-LIME-12", UnitCost: 85, QuantityRequested: 120})
	if err != nil {
		return err
	}
	for i := 0; i < 4; i++ {
		if _, err := svc.AdvanceProduct(ctx, lime.ID); err != nil {
			return err
		}
	}
	if _, err := svc.ReconcileProduct(ctx, lime.ID, activation.Reconciliation{Used: 100, Returned: 15, Damaged: 5, By: "Riley Chen"}); err != nil {
		return err
	}

	berry, err := svc.AddProduct(ctx, models.Product{ActivationID: a.ID, Name: "Sparkling Berry 12oz", SKU: "FZ-BERRY-12", UnitCost: 85, QuantityRequested: 240})
	if err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.AdvanceProduct(ctx, berry.ID); err != nil {
			return err
		}
	}

	_, err = svc.AddProduct(ctx, models.Product{ActivationID: a.ID, Name: "Branded koozies", SKU: "FZ-KOOZIE", UnitCost: 120, QuantityRequested: 500})
	return err
}

func seedPeople(ctx context.Context, svc *activation.Service, a *models.Activation) error {
	brand, err := svc.AddStakeholder(ctx, models.Stakeholder{ActivationID: a.ID, Name: "Dana Brooks", Company: "Fizz Co", Email: "dana@fizz.example", Type: models.StakeholderBrand})
	if err != nil {
		return err
	}
	venue, err := svc.AddStakeholder(ctx, models.Stakeholder{ActivationID: a.ID, Name: "Jordan Lee", Company: "Pier 9", Email: "jordan@pier9.example", Type: models.StakeholderVenue, NDAStatus: models.NDAPending})
	if err != nil {
		return err
	}
	if _, err := svc.AddStakeholder(ctx, models.Stakeholder{ActivationID: a.ID, Name: "Alex Park", Company: "Rent-A-Tent", Type: models.StakeholderVendor}); err != nil {
		return err
	}

	if _, err := svc.AddDocument(ctx, models.Document{ActivationID: a.ID, Title: "Creative brief", Type: models.DocumentBrief, Content: "Lead with lime."}); err != nil {
		return err
	}
	nda, err := svc.AddDocument(ctx, models.Document{ActivationID: a.ID, Title: "Venue NDA", Type: models.DocumentNDA, ScopedToStakeholderID: &venue.ID})
	if err != nil {
		return err
	}
	if _, err := svc.RequestSignature(ctx, nda.ID, venue.Name, venue.Email); err != nil {
		return err
	}
	if _, err := svc.AddDocument(ctx, models.Document{ActivationID: a.ID, Title: "Brand agreement", Type: models.DocumentContract, ScopedToStakeholderID: &brand.ID}); err != nil {
		return err
	}

	riley, err := svc.AddPersonnel(ctx, models.Personnel{ActivationID: a.ID, Name: "Riley Chen", Role: "Team lead", HourlyRate: 3500})
	if err != nil {
		return err
	}
	if _, err := svc.VerifyProductKnowledge(ctx, riley.ID, 92); err != nil {
		return err
	}
	if _, err := svc.ClockPersonnel(ctx, riley.ID, models.ActionClockIn); err != nil {
		return err
	}
	if _, err := svc.AddPersonnel(ctx, models.Personnel{ActivationID: a.ID, Name: "Morgan Diaz", Role: "Brand ambassador", HourlyRate: 2500}); err != nil {
		return err
	}

	for _, name := range []string{"Pat Doe", "Sam Rivera", "Kai Moreno"} {
		if _, err := svc.CaptureLead(ctx, models.Lead{ActivationID: a.ID, Name: name, SampleGiven: true, OptIn: true, CapturedBy: &riley.ID}); err != nil {
			return err
		}
	}

	_, err = svc.ReportIssue(ctx, models.Issue{ActivationID: a.ID, Title: "Ice delivery late", Severity: models.SeverityHigh, ReportedBy: riley.Name})
	return err
}

func seedSchedule(ctx context.Context, svc *activation.Service, a *models.Activation, eventDay *time.Time) error {
	at := func(hour int) *time.Time {
		t := eventDay.Add(time.Duration(hour) * time.Hour)
		return &t
	}

	for _, item := range []models.RunOfShowItem{
		{Title: "Load in", StartTime: at(8), DurationMinutes: 90, Owner: "Riley Chen"},
		{Title: "Team briefing", StartTime: at(10), DurationMinutes: 30, Owner: "Riley Chen"},
		{Title: "Doors open", StartTime: at(11), DurationMinutes: 360},
		{Title: "Teardown", StartTime: at(17), DurationMinutes: 120},
	} {
		item.ActivationID = a.ID
		if _, err := svc.AddRunOfShowItem(ctx, item); err != nil {
			return err
		}
	}

	for _, item := range []models.ChecklistItem{
		{Category: "compliance", Title: "Event permit approved", Required: true},
		{Category: "compliance", Title: "Certificate of insurance", Required: true},
		{Category: "logistics", Title: "Ice order confirmed", Required: true},
		{Category: "logistics", Title: "Playlist loaded"},
	} {
		item.ActivationID = a.ID
		created, err := svc.AddChecklistItem(ctx, item)
		if err != nil {
			return err
		}
		if item.Title == "Certificate of insurance" {
			if _, err := svc.SetChecklistCompleted(ctx, created.ID, true, "Dana Brooks"); err != nil {
				return err
			}
		}
	}

	_, err := svc.AddMedia(ctx, models.MediaItem{ActivationID: a.ID, Type: models.MediaPhoto, URL: "https://cdn.fizz.example/pier9/booth.jpg", Caption: "Booth mockup", CapturedBy: "Dana Brooks"})
	return err
}
