// ABOUTME: Derived metrics computed from raw activation records
// ABOUTME: Pure functions, recomputed on every read, never cached
package metrics

import (
	"math"

	"github.com/harperreed/activator/models"
)

// Percent returns round(part/whole*100). It is 0 when whole is not positive
// and is not clamped, so overspend reads above 100.
func Percent(part, whole int64) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

// ClampPercent bounds p to [0, 100] for progress bar widths.
func ClampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// CostPer divides spend across count, rounded to the nearest cent. Zero count yields 0.
func CostPer(spent int64, count int) int64 {
	if count <= 0 {
		return 0
	}
	return int64(math.Round(float64(spent) / float64(count)))
}

// GoalProgress is a current value measured against a target.
type GoalProgress struct {
	Current int `json:"current"`
	Goal    int `json:"goal"`
	Pct     int `json:"pct"`     // raw, may exceed 100
	BarPct  int `json:"bar_pct"` // clamped for display
}

func Progress(current, goal int) GoalProgress {
	pct := Percent(int64(current), int64(goal))
	return GoalProgress{Current: current, Goal: goal, Pct: pct, BarPct: ClampPercent(pct)}
}

// ActivationMetrics are the headline numbers for one activation.
type ActivationMetrics struct {
	TotalLeads        int          `json:"total_leads"`
	TotalSamples      int          `json:"total_samples"`
	TotalInteractions int          `json:"total_interactions"`
	TotalBudgetSpent  int64        `json:"total_budget_spent"`
	CostPerLead       int64        `json:"cost_per_lead"`
	CostPerSample     int64        `json:"cost_per_sample"`
	BudgetPct         int          `json:"budget_pct"`
	BudgetBarPct      int          `json:"budget_bar_pct"`
	Leads             GoalProgress `json:"leads"`
	Samples           GoalProgress `json:"samples"`
	Interactions      GoalProgress `json:"interactions"`
}

// WithoutBudget returns a copy of m with spend and cost figures cleared.
func (m ActivationMetrics) WithoutBudget() ActivationMetrics {
	m.TotalBudgetSpent = 0
	m.CostPerLead = 0
	m.CostPerSample = 0
	m.BudgetPct = 0
	m.BudgetBarPct = 0
	return m
}

// Compute derives activation metrics. Spend comes from the budget ledger
// (paid actuals), not from the activation's stored BudgetSpent field.
func Compute(a models.Activation, items []models.BudgetItem, products []models.Product, leads []models.Lead) ActivationMetrics {
	budget := SummarizeBudget(a.BudgetTotal, items)

	samples := 0
	for _, p := range products {
		samples += p.QuantityUsed
	}

	m := ActivationMetrics{
		TotalLeads:        len(leads),
		TotalSamples:      samples,
		TotalInteractions: a.InteractionCount,
		TotalBudgetSpent:  budget.TotalActual,
		BudgetPct:         budget.BudgetPct,
		BudgetBarPct:      ClampPercent(budget.BudgetPct),
	}
	m.CostPerLead = CostPer(m.TotalBudgetSpent, m.TotalLeads)
	m.CostPerSample = CostPer(m.TotalBudgetSpent, m.TotalSamples)
	m.Leads = Progress(m.TotalLeads, a.LeadGoal)
	m.Samples = Progress(m.TotalSamples, a.SampleGoal)
	m.Interactions = Progress(m.TotalInteractions, a.InteractionGoal)
	return m
}
