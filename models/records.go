// ABOUTME: Record identity accessors used by the store
// ABOUTME: Every record exposes its own id and the activation it belongs to
package models

func (a Activation) RecordID() string { return a.ID.String() }
func (a Activation) ParentID() string { return "" }

func (v Venue) RecordID() string { return v.ID.String() }
func (v Venue) ParentID() string { return v.ActivationID.String() }

func (b BudgetItem) RecordID() string { return b.ID.String() }
func (b BudgetItem) ParentID() string { return b.ActivationID.String() }

func (p Product) RecordID() string { return p.ID.String() }
func (p Product) ParentID() string { return p.ActivationID.String() }

func (s Stakeholder) RecordID() string { return s.ID.String() }
func (s Stakeholder) ParentID() string { return s.ActivationID.String() }

func (d Document) RecordID() string { return d.ID.String() }
func (d Document) ParentID() string { return d.ActivationID.String() }

func (p Personnel) RecordID() string { return p.ID.String() }
func (p Personnel) ParentID() string { return p.ActivationID.String() }

func (l Lead) RecordID() string { return l.ID.String() }
func (l Lead) ParentID() string { return l.ActivationID.String() }

func (i Issue) RecordID() string { return i.ID.String() }
func (i Issue) ParentID() string { return i.ActivationID.String() }

func (r RunOfShowItem) RecordID() string { return r.ID.String() }
func (r RunOfShowItem) ParentID() string { return r.ActivationID.String() }

func (c ChecklistItem) RecordID() string { return c.ID.String() }
func (c ChecklistItem) ParentID() string { return c.ActivationID.String() }

func (m MediaItem) RecordID() string { return m.ID.String() }
func (m MediaItem) ParentID() string { return m.ActivationID.String() }

func (r Report) RecordID() string { return r.ID.String() }
func (r Report) ParentID() string { return r.ActivationID.String() }

func (e ActivityEntry) RecordID() string { return e.ID }
func (e ActivityEntry) ParentID() string { return e.ActivationID.String() }
