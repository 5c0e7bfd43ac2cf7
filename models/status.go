// ABOUTME: Status enumerations and their forward-only ordering
// ABOUTME: Each pipeline's Next() is an explicit switch, never an index into a slice
package models

// Kind names a record collection.
type Kind string

const (
	KindActivation  Kind = "activation"
	KindVenue       Kind = "venue"
	KindBudgetItem  Kind = "budget_item"
	KindProduct     Kind = "product"
	KindStakeholder Kind = "stakeholder"
	KindDocument    Kind = "document"
	KindPersonnel   Kind = "personnel"
	KindLead        Kind = "lead"
	KindIssue       Kind = "issue"
	KindRunOfShow   Kind = "run_of_show"
	KindChecklist   Kind = "checklist"
	KindMedia       Kind = "media"
	KindReport      Kind = "report"
	KindActivity    Kind = "activity"
)

// Phase is where an activation sits in its lifecycle.
type Phase string

const (
	PhasePlanning  Phase = "planning"
	PhasePreEvent  Phase = "pre_event"
	PhaseLive      Phase = "live"
	PhasePostEvent Phase = "post_event"
	PhaseWrapped   Phase = "wrapped"
)

// Next returns the following phase. ok is false at the terminal phase.
func (p Phase) Next() (next Phase, ok bool) {
	switch p {
	case PhasePlanning:
		return PhasePreEvent, true
	case PhasePreEvent:
		return PhaseLive, true
	case PhaseLive:
		return PhasePostEvent, true
	case PhasePostEvent:
		return PhaseWrapped, true
	}
	return p, false
}

func (p Phase) Valid() bool {
	switch p {
	case PhasePlanning, PhasePreEvent, PhaseLive, PhasePostEvent, PhaseWrapped:
		return true
	}
	return false
}

// ActivationState is the administrative status of an activation.
type ActivationState string

const (
	ActivationDraft     ActivationState = "draft"
	ActivationActive    ActivationState = "active"
	ActivationOnHold    ActivationState = "on_hold"
	ActivationCompleted ActivationState = "completed"
	ActivationCancelled ActivationState = "cancelled"
)

func (s ActivationState) Valid() bool {
	switch s {
	case ActivationDraft, ActivationActive, ActivationOnHold, ActivationCompleted, ActivationCancelled:
		return true
	}
	return false
}

// VenueStatus tracks venue booking progress.
type VenueStatus string

const (
	VenueIdentified           VenueStatus = "identified"
	VenueContacted            VenueStatus = "contacted"
	VenueWalkthroughScheduled VenueStatus = "walkthrough_scheduled"
	VenueWalkthroughDone      VenueStatus = "walkthrough_done"
	VenueBooked               VenueStatus = "booked"
)

// VenueStatuses lists venue statuses in pipeline order.
var VenueStatuses = []VenueStatus{
	VenueIdentified,
	VenueContacted,
	VenueWalkthroughScheduled,
	VenueWalkthroughDone,
	VenueBooked,
}

// Next returns the following venue status. ok is false once booked.
func (s VenueStatus) Next() (next VenueStatus, ok bool) {
	switch s {
	case VenueIdentified:
		return VenueContacted, true
	case VenueContacted:
		return VenueWalkthroughScheduled, true
	case VenueWalkthroughScheduled:
		return VenueWalkthroughDone, true
	case VenueWalkthroughDone:
		return VenueBooked, true
	}
	return s, false
}

func (s VenueStatus) Valid() bool {
	switch s {
	case VenueIdentified, VenueContacted, VenueWalkthroughScheduled, VenueWalkthroughDone, VenueBooked:
		return true
	}
	return false
}

// BudgetStatus tracks a line item through approval and payment.
type BudgetStatus string

const (
	BudgetEstimated       BudgetStatus = "estimated"
	BudgetPendingApproval BudgetStatus = "pending_approval"
	BudgetApproved        BudgetStatus = "approved"
	BudgetRejected        BudgetStatus = "rejected"
	BudgetPaid            BudgetStatus = "paid"
)

// CanTransition reports whether a budget item may move from s to to.
func (s BudgetStatus) CanTransition(to BudgetStatus) bool {
	switch s {
	case BudgetEstimated:
		return to == BudgetPendingApproval
	case BudgetPendingApproval:
		return to == BudgetApproved || to == BudgetRejected
	case BudgetApproved:
		return to == BudgetPaid
	}
	return false
}

func (s BudgetStatus) Valid() bool {
	switch s {
	case BudgetEstimated, BudgetPendingApproval, BudgetApproved, BudgetRejected, BudgetPaid:
		return true
	}
	return false
}

// BudgetCategory groups line items for rollups.
type BudgetCategory string

const (
	CategoryVenue          BudgetCategory = "venue"
	CategoryStaffing       BudgetCategory = "staffing"
	CategoryProduct        BudgetCategory = "product"
	CategoryEquipment      BudgetCategory = "equipment"
	CategoryTransportation BudgetCategory = "transportation"
	CategoryMarketing      BudgetCategory = "marketing"
	CategoryPermits        BudgetCategory = "permits"
	CategoryInsurance      BudgetCategory = "insurance"
	CategoryCatering       BudgetCategory = "catering"
	CategorySignage        BudgetCategory = "signage"
	CategoryOther          BudgetCategory = "other"
)

// BudgetCategories lists every category in display order.
var BudgetCategories = []BudgetCategory{
	CategoryVenue,
	CategoryStaffing,
	CategoryProduct,
	CategoryEquipment,
	CategoryTransportation,
	CategoryMarketing,
	CategoryPermits,
	CategoryInsurance,
	CategoryCatering,
	CategorySignage,
	CategoryOther,
}

func (c BudgetCategory) Valid() bool {
	for _, known := range BudgetCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ProductStatus tracks product inventory from request to reconciliation.
type ProductStatus string

const (
	ProductRequested  ProductStatus = "requested"
	ProductConfirmed  ProductStatus = "confirmed"
	ProductShipped    ProductStatus = "shipped"
	ProductDelivered  ProductStatus = "delivered"
	ProductInUse      ProductStatus = "in_use"
	ProductReconciled ProductStatus = "reconciled"
)

// ProductStatuses lists product statuses in pipeline order.
var ProductStatuses = []ProductStatus{
	ProductRequested,
	ProductConfirmed,
	ProductShipped,
	ProductDelivered,
	ProductInUse,
	ProductReconciled,
}

// Next returns the following status reachable by a plain advance.
// Reconciled is excluded; only an explicit reconcile gets there.
func (s ProductStatus) Next() (next ProductStatus, ok bool) {
	switch s {
	case ProductRequested:
		return ProductConfirmed, true
	case ProductConfirmed:
		return ProductShipped, true
	case ProductShipped:
		return ProductDelivered, true
	case ProductDelivered:
		return ProductInUse, true
	}
	return s, false
}

// CanReconcile reports whether a product in this status may be reconciled.
func (s ProductStatus) CanReconcile() bool {
	return s == ProductDelivered || s == ProductInUse
}

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductRequested, ProductConfirmed, ProductShipped, ProductDelivered, ProductInUse, ProductReconciled:
		return true
	}
	return false
}

// ClockStatus is a staff member's time-clock state.
type ClockStatus string

const (
	ClockNotStarted ClockStatus = "not_started"
	ClockedIn       ClockStatus = "clocked_in"
	ClockOnBreak    ClockStatus = "on_break"
	ClockedOut      ClockStatus = "clocked_out"
)

// ClockAction is an input to the personnel clock state machine.
type ClockAction string

const (
	ActionClockIn    ClockAction = "clock_in"
	ActionStartBreak ClockAction = "start_break"
	ActionEndBreak   ClockAction = "end_break"
	ActionClockOut   ClockAction = "clock_out"
)

// Apply returns the state reached by performing action from s.
func (s ClockStatus) Apply(action ClockAction) (ClockStatus, bool) {
	switch {
	case s == ClockNotStarted && action == ActionClockIn:
		return ClockedIn, true
	case s == ClockedIn && action == ActionStartBreak:
		return ClockOnBreak, true
	case s == ClockOnBreak && action == ActionEndBreak:
		return ClockedIn, true
	case s == ClockedIn && action == ActionClockOut:
		return ClockedOut, true
	}
	return s, false
}

// StakeholderType classifies external parties.
type StakeholderType string

const (
	StakeholderBrand           StakeholderType = "brand"
	StakeholderVenue           StakeholderType = "venue"
	StakeholderDistributor     StakeholderType = "distributor"
	StakeholderMarketingAgency StakeholderType = "marketing_agency"
	StakeholderVendor          StakeholderType = "vendor"
	StakeholderPersonnel       StakeholderType = "personnel"
	StakeholderOther           StakeholderType = "other"
)

func (t StakeholderType) Valid() bool {
	switch t {
	case StakeholderBrand, StakeholderVenue, StakeholderDistributor, StakeholderMarketingAgency,
		StakeholderVendor, StakeholderPersonnel, StakeholderOther:
		return true
	}
	return false
}

// NDAStatus tracks a stakeholder's non-disclosure agreement.
type NDAStatus string

const (
	NDANotRequired NDAStatus = "not_required"
	NDAPending     NDAStatus = "pending"
	NDASigned      NDAStatus = "signed"
)

func (s NDAStatus) Valid() bool {
	return s == NDANotRequired || s == NDAPending || s == NDASigned
}

// DocumentType classifies documents.
type DocumentType string

const (
	DocumentContract  DocumentType = "contract"
	DocumentNDA       DocumentType = "nda"
	DocumentBrief     DocumentType = "brief"
	DocumentPermit    DocumentType = "permit"
	DocumentInsurance DocumentType = "insurance"
	DocumentOther     DocumentType = "other"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentContract, DocumentNDA, DocumentBrief, DocumentPermit, DocumentInsurance, DocumentOther:
		return true
	}
	return false
}

// SignStatus is a document's e-signature state.
type SignStatus string

const (
	SignNotRequired      SignStatus = "not_required"
	SignPendingSignature SignStatus = "pending_signature"
	SignSigned           SignStatus = "signed"
)

// IssueSeverity ranks on-site issues.
type IssueSeverity string

const (
	SeverityLow      IssueSeverity = "low"
	SeverityMedium   IssueSeverity = "medium"
	SeverityHigh     IssueSeverity = "high"
	SeverityCritical IssueSeverity = "critical"
)

func (s IssueSeverity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// IssueStatus tracks issue handling.
type IssueStatus string

const (
	IssueOpen      IssueStatus = "open"
	IssueEscalated IssueStatus = "escalated"
	IssueResolved  IssueStatus = "resolved"
)

// CanTransition reports whether an issue may move from s to to.
func (s IssueStatus) CanTransition(to IssueStatus) bool {
	switch s {
	case IssueOpen:
		return to == IssueEscalated || to == IssueResolved
	case IssueEscalated:
		return to == IssueResolved
	}
	return false
}

// MediaType classifies captured media.
type MediaType string

const (
	MediaPhoto MediaType = "photo"
	MediaVideo MediaType = "video"
)

func (t MediaType) Valid() bool {
	return t == MediaPhoto || t == MediaVideo
}
