// ABOUTME: Budget rollups by category and headline budget cards
// ABOUTME: Category totals use actual amounts when paid, estimates otherwise
package metrics

import "github.com/harperreed/activator/models"

type CategoryTotal struct {
	Category models.BudgetCategory `json:"category"`
	Items    int                   `json:"items"`
	Total    int64                 `json:"total"` // in cents
	Pct      int                   `json:"pct"`
}

type BudgetSummary struct {
	BudgetTotal     int64                       `json:"budget_total"`
	TotalEstimated  int64                       `json:"total_estimated"`
	TotalActual     int64                       `json:"total_actual"`
	Remaining       int64                       `json:"remaining"`
	BudgetPct       int                         `json:"budget_pct"`
	OverBudget      bool                        `json:"over_budget"`
	RollupTotal     int64                       `json:"rollup_total"`
	Categories      []CategoryTotal             `json:"categories"`
	PendingApproval int                         `json:"pending_approval"`
	StatusCounts    map[models.BudgetStatus]int `json:"status_counts"`
}

// SummarizeBudget rolls items up against budgetTotal.
func SummarizeBudget(budgetTotal int64, items []models.BudgetItem) BudgetSummary {
	summary := BudgetSummary{
		BudgetTotal:  budgetTotal,
		StatusCounts: make(map[models.BudgetStatus]int),
	}

	byCategory := make(map[models.BudgetCategory]*CategoryTotal, len(models.BudgetCategories))
	for _, category := range models.BudgetCategories {
		byCategory[category] = &CategoryTotal{Category: category}
	}

	for _, item := range items {
		summary.TotalEstimated += item.EstimatedAmount
		if item.ActualAmount != nil {
			summary.TotalActual += *item.ActualAmount
		}
		summary.StatusCounts[item.Status]++
		if item.Status == models.BudgetPendingApproval {
			summary.PendingApproval++
		}

		category := item.Category
		if _, ok := byCategory[category]; !ok {
			category = models.CategoryOther
		}
		ct := byCategory[category]
		ct.Items++
		ct.Total += item.Spend()
		summary.RollupTotal += item.Spend()
	}

	for _, category := range models.BudgetCategories {
		ct := byCategory[category]
		ct.Pct = Percent(ct.Total, summary.RollupTotal)
		summary.Categories = append(summary.Categories, *ct)
	}

	summary.Remaining = budgetTotal - summary.TotalActual
	summary.OverBudget = summary.Remaining < 0
	summary.BudgetPct = Percent(summary.TotalActual, budgetTotal)
	return summary
}
