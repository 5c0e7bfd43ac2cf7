// ABOUTME: Stakeholder default permissions and document access rules
// ABOUTME: Pure predicates over stakeholders, documents and admin status
package models

import (
	"strings"

	"github.com/google/uuid"
)

// Permissions are the capability flags a stakeholder carries.
type Permissions struct {
	CanViewBudget       bool `json:"can_view_budget"`
	CanViewLeads        bool `json:"can_view_leads"`
	CanViewAllDocuments bool `json:"can_view_all_documents"`
}

// DefaultPermissions returns the capability flags a new stakeholder of type t starts with.
func DefaultPermissions(t StakeholderType) Permissions {
	switch t {
	case StakeholderBrand:
		return Permissions{CanViewBudget: true, CanViewLeads: true, CanViewAllDocuments: true}
	case StakeholderMarketingAgency:
		return Permissions{CanViewBudget: true, CanViewLeads: true, CanViewAllDocuments: false}
	case StakeholderDistributor:
		return Permissions{CanViewBudget: false, CanViewLeads: true, CanViewAllDocuments: false}
	case StakeholderVenue, StakeholderVendor, StakeholderPersonnel, StakeholderOther:
		return Permissions{}
	}
	return Permissions{}
}

// Permissions returns the stakeholder's current capability flags.
func (s Stakeholder) Permissions() Permissions {
	return Permissions{
		CanViewBudget:       s.CanViewBudget,
		CanViewLeads:        s.CanViewLeads,
		CanViewAllDocuments: s.CanViewAllDocuments,
	}
}

// ApplyPermissions overwrites the stakeholder's capability flags.
func (s *Stakeholder) ApplyPermissions(p Permissions) {
	s.CanViewBudget = p.CanViewBudget
	s.CanViewLeads = p.CanViewLeads
	s.CanViewAllDocuments = p.CanViewAllDocuments
}

// Viewer identifies who is reading activation data.
type Viewer struct {
	IsAdmin     bool
	Stakeholder *Stakeholder
}

// AdminViewer is the operator with unrestricted access.
var AdminViewer = Viewer{IsAdmin: true}

// CanViewDocument reports whether viewer may see doc.
// Admins see everything. A stakeholder sees documents scoped to them, and
// unscoped documents only when their CanViewAllDocuments flag is set.
func CanViewDocument(doc Document, viewer *Stakeholder, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	if viewer == nil {
		return false
	}
	if doc.ScopedToStakeholderID != nil {
		return *doc.ScopedToStakeholderID == viewer.ID
	}
	return viewer.CanViewAllDocuments
}

// CanView is CanViewDocument for a Viewer.
func (v Viewer) CanView(doc Document) bool {
	return CanViewDocument(doc, v.Stakeholder, v.IsAdmin)
}

// CanViewBudget reports whether the viewer may see budget figures.
func (v Viewer) CanViewBudget() bool {
	return v.IsAdmin || (v.Stakeholder != nil && v.Stakeholder.CanViewBudget)
}

// CanViewBudgetOf is CanViewBudget for a specific activation. A stakeholder
// only sees figures for the activation they belong to.
func (v Viewer) CanViewBudgetOf(activationID uuid.UUID) bool {
	if v.IsAdmin {
		return true
	}
	return v.Stakeholder != nil && v.Stakeholder.ActivationID == activationID && v.Stakeholder.CanViewBudget
}

// WithoutBudget returns a copy of a with its budget figures cleared.
func (a Activation) WithoutBudget() Activation {
	a.BudgetTotal = 0
	a.BudgetSpent = 0
	return a
}

// WithoutBudget returns a copy of r with spend and cost figures cleared.
func (r Report) WithoutBudget() Report {
	r.TotalBudgetSpent = 0
	r.CostPerLead = 0
	r.CostPerSample = 0
	r.BudgetUsedPct = 0
	return r
}

// CanViewLeads reports whether the viewer may see captured leads.
func (v Viewer) CanViewLeads() bool {
	return v.IsAdmin || (v.Stakeholder != nil && v.Stakeholder.CanViewLeads)
}

// StakeholderID returns the viewer's stakeholder id, or uuid.Nil for admins without one.
func (v Viewer) StakeholderID() uuid.UUID {
	if v.Stakeholder == nil {
		return uuid.Nil
	}
	return v.Stakeholder.ID
}

// SignaturePrefix is the data URL prefix a captured signature image must carry.
const SignaturePrefix = "data:image/"

// ValidSignatureData reports whether data looks like a captured signature image.
func ValidSignatureData(data string) bool {
	return strings.HasPrefix(data, SignaturePrefix) && len(data) > len(SignaturePrefix)
}
