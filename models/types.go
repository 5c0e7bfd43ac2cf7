// ABOUTME: Data models for activation entities
// ABOUTME: Defines Activation and its child records (venue, budget, products, people, documents)
package models

import (
	"time"

	"github.com/google/uuid"
)

type Activation struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Brand            string          `json:"brand"`
	Description      string          `json:"description,omitempty"`
	Color            string          `json:"color,omitempty"`
	Phase            Phase           `json:"phase"`
	Status           ActivationState `json:"status"`
	EventDate        *time.Time      `json:"event_date,omitempty"`
	EventEndDate     *time.Time      `json:"event_end_date,omitempty"`
	SetupDate        *time.Time      `json:"setup_date,omitempty"`
	TeardownDate     *time.Time      `json:"teardown_date,omitempty"`
	VenueID          *uuid.UUID      `json:"venue_id,omitempty"`
	BudgetTotal      int64           `json:"budget_total"` // in cents
	BudgetSpent      int64           `json:"budget_spent"` // in cents
	LeadGoal         int             `json:"lead_goal"`
	SampleGoal       int             `json:"sample_goal"`
	InteractionGoal  int             `json:"interaction_goal"`
	InteractionCount int             `json:"interaction_count"`
	Tags             []string        `json:"tags,omitempty"`
	CreatedBy        string          `json:"created_by,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type Venue struct {
	ID                  uuid.UUID   `json:"id"`
	ActivationID        uuid.UUID   `json:"activation_id"`
	Name                string      `json:"name"`
	Address             string      `json:"address,omitempty"`
	City                string      `json:"city,omitempty"`
	State               string      `json:"state,omitempty"`
	Zip                 string      `json:"zip,omitempty"`
	ContactName         string      `json:"contact_name,omitempty"`
	ContactEmail        string      `json:"contact_email,omitempty"`
	ContactPhone        string      `json:"contact_phone,omitempty"`
	VenueType           string      `json:"venue_type,omitempty"`
	Capacity            int         `json:"capacity,omitempty"`
	Status              VenueStatus `json:"status"`
	WalkthroughDate     *time.Time  `json:"walkthrough_date,omitempty"`
	WalkthroughNotes    string      `json:"walkthrough_notes,omitempty"`
	BookingConfirmedAt  *time.Time  `json:"booking_confirmed_at,omitempty"`
	BookingCost         int64       `json:"booking_cost,omitempty"` // in cents
	SpecialRequirements string      `json:"special_requirements,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

type BudgetItem struct {
	ID              uuid.UUID      `json:"id"`
	ActivationID    uuid.UUID      `json:"activation_id"`
	Category        BudgetCategory `json:"category"`
	Description     string         `json:"description"`
	Vendor          string         `json:"vendor,omitempty"`
	EstimatedAmount int64          `json:"estimated_amount"`        // in cents
	ActualAmount    *int64         `json:"actual_amount,omitempty"` // in cents, nil until paid
	Status          BudgetStatus   `json:"status"`
	ApprovedBy      string         `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty"`
	PaidAt          *time.Time     `json:"paid_at,omitempty"`
	ReceiptURL      string         `json:"receipt_url,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Spend returns the amount an item contributes to its category rollup.
func (b BudgetItem) Spend() int64 {
	if b.ActualAmount != nil {
		return *b.ActualAmount
	}
	return b.EstimatedAmount
}

type Product struct {
	ID                uuid.UUID     `json:"id"`
	ActivationID      uuid.UUID     `json:"activation_id"`
	Name              string        `json:"name"`
	SKU               string        `json:"sku,omitempty"`
	UnitCost          int64         `json:"unit_cost,omitempty"` // in cents
	QuantityRequested int           `json:"quantity_requested"`
	QuantityConfirmed int           `json:"quantity_confirmed"`
	QuantityShipped   int           `json:"quantity_shipped"`
	QuantityDelivered int           `json:"quantity_delivered"`
	QuantityUsed      int           `json:"quantity_used"`
	QuantityReturned  int           `json:"quantity_returned"`
	QuantityDamaged   int           `json:"quantity_damaged"`
	Status            ProductStatus `json:"status"`
	DeliveredAt       *time.Time    `json:"delivered_at,omitempty"`
	ReconciledAt      *time.Time    `json:"reconciled_at,omitempty"`
	ReconciledBy      string        `json:"reconciled_by,omitempty"`
	Notes             string        `json:"notes,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// Unaccounted is the delivered quantity not yet covered by used, returned or damaged.
func (p Product) Unaccounted() int {
	return p.QuantityDelivered - p.QuantityUsed - p.QuantityReturned - p.QuantityDamaged
}

type Stakeholder struct {
	ID                  uuid.UUID       `json:"id"`
	ActivationID        uuid.UUID       `json:"activation_id"`
	Name                string          `json:"name"`
	Company             string          `json:"company,omitempty"`
	Email               string          `json:"email,omitempty"`
	Phone               string          `json:"phone,omitempty"`
	Type                StakeholderType `json:"type"`
	NDAStatus           NDAStatus       `json:"nda_status"`
	CanViewBudget       bool            `json:"can_view_budget"`
	CanViewLeads        bool            `json:"can_view_leads"`
	CanViewAllDocuments bool            `json:"can_view_all_documents"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

type Document struct {
	ID                    uuid.UUID    `json:"id"`
	ActivationID          uuid.UUID    `json:"activation_id"`
	Title                 string       `json:"title"`
	Type                  DocumentType `json:"type"`
	Content               string       `json:"content,omitempty"`
	FileURL               string       `json:"file_url,omitempty"`
	ScopedToStakeholderID *uuid.UUID   `json:"scoped_to_stakeholder_id,omitempty"`
	SignStatus            SignStatus   `json:"sign_status"`
	SignerName            string       `json:"signer_name,omitempty"`
	SignerEmail           string       `json:"signer_email,omitempty"`
	SignatureData         string       `json:"signature_data,omitempty"`
	SignedAt              *time.Time   `json:"signed_at,omitempty"`
	CreatedAt             time.Time    `json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
}

type Personnel struct {
	ID                       uuid.UUID     `json:"id"`
	ActivationID             uuid.UUID     `json:"activation_id"`
	Name                     string        `json:"name"`
	Role                     string        `json:"role,omitempty"`
	Email                    string        `json:"email,omitempty"`
	Phone                    string        `json:"phone,omitempty"`
	HourlyRate               int64         `json:"hourly_rate,omitempty"` // in cents
	ClockStatus              ClockStatus   `json:"clock_status"`
	ClockInTime              *time.Time    `json:"clock_in_time,omitempty"`
	ClockOutTime             *time.Time    `json:"clock_out_time,omitempty"`
	BreakStartTime           *time.Time    `json:"break_start_time,omitempty"`
	BreakDuration            time.Duration `json:"break_duration,omitempty"`
	TotalHoursWorked         float64       `json:"total_hours_worked,omitempty"`
	ProductKnowledgeVerified bool          `json:"product_knowledge_verified"`
	ProductKnowledgeScore    int           `json:"product_knowledge_score,omitempty"`
	CreatedAt                time.Time     `json:"created_at"`
	UpdatedAt                time.Time     `json:"updated_at"`
}

type Lead struct {
	ID           uuid.UUID  `json:"id"`
	ActivationID uuid.UUID  `json:"activation_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	ZipCode      string     `json:"zip_code,omitempty"`
	SampleGiven  bool       `json:"sample_given"`
	OptIn        bool       `json:"opt_in"`
	CapturedBy   *uuid.UUID `json:"captured_by,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Issue struct {
	ID           uuid.UUID     `json:"id"`
	ActivationID uuid.UUID     `json:"activation_id"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Severity     IssueSeverity `json:"severity"`
	Status       IssueStatus   `json:"status"`
	ReportedBy   string        `json:"reported_by,omitempty"`
	Resolution   string        `json:"resolution,omitempty"`
	ResolvedAt   *time.Time    `json:"resolved_at,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type RunOfShowItem struct {
	ID              uuid.UUID  `json:"id"`
	ActivationID    uuid.UUID  `json:"activation_id"`
	Title           string     `json:"title"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	Owner           string     `json:"owner,omitempty"`
	Sequence        int        `json:"sequence"`
	Completed       bool       `json:"completed"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type ChecklistItem struct {
	ID           uuid.UUID  `json:"id"`
	ActivationID uuid.UUID  `json:"activation_id"`
	Category     string     `json:"category"`
	Title        string     `json:"title"`
	Required     bool       `json:"required"`
	Completed    bool       `json:"completed"`
	CompletedBy  string     `json:"completed_by,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type MediaItem struct {
	ID           uuid.UUID `json:"id"`
	ActivationID uuid.UUID `json:"activation_id"`
	Type         MediaType `json:"type"`
	URL          string    `json:"url"`
	Caption      string    `json:"caption,omitempty"`
	CapturedBy   string    `json:"captured_by,omitempty"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Report is a point-in-time snapshot of an activation's totals. It is never updated.
type Report struct {
	ID                 uuid.UUID `json:"id"`
	ActivationID       uuid.UUID `json:"activation_id"`
	GeneratedBy        string    `json:"generated_by,omitempty"`
	TotalLeads         int       `json:"total_leads"`
	TotalSamples       int       `json:"total_samples"`
	TotalInteractions  int       `json:"total_interactions"`
	TotalBudgetSpent   int64     `json:"total_budget_spent"` // in cents
	CostPerLead        int64     `json:"cost_per_lead"`      // in cents
	CostPerSample      int64     `json:"cost_per_sample"`    // in cents
	BudgetUsedPct      int       `json:"budget_used_pct"`
	LeadGoalPct        int       `json:"lead_goal_pct"`
	SampleGoalPct      int       `json:"sample_goal_pct"`
	InteractionGoalPct int       `json:"interaction_goal_pct"`
	Notes              string    `json:"notes,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ActivityEntry records one change made to an activation's records.
type ActivityEntry struct {
	ID           string    `json:"id"` // ULID, sorts by time
	ActivationID uuid.UUID `json:"activation_id"`
	Verb         string    `json:"verb"`
	Kind         Kind      `json:"kind"`
	SubjectID    uuid.UUID `json:"subject_id"`
	Detail       string    `json:"detail,omitempty"`
	At           time.Time `json:"at"`
}

// Activity verbs.
const (
	VerbCreated    = "created"
	VerbUpdated    = "updated"
	VerbDeleted    = "deleted"
	VerbAdvanced   = "advanced"
	VerbApproved   = "approved"
	VerbRejected   = "rejected"
	VerbPaid       = "paid"
	VerbReconciled = "reconciled"
	VerbSigned     = "signed"
	VerbClocked    = "clocked"
	VerbResolved   = "resolved"
	VerbEscalated  = "escalated"
	VerbReported   = "reported"
)
