// ABOUTME: Product inventory and staffing summaries
// ABOUTME: Totals per pipeline stage, unaccounted stock and labor hours
package metrics

import "github.com/harperreed/activator/models"

type ProductSummary struct {
	Products       int                          `json:"products"`
	Requested      int                          `json:"requested"`
	Confirmed      int                          `json:"confirmed"`
	Shipped        int                          `json:"shipped"`
	Delivered      int                          `json:"delivered"`
	Used           int                          `json:"used"`
	Returned       int                          `json:"returned"`
	Damaged        int                          `json:"damaged"`
	Unaccounted    int                          `json:"unaccounted"`
	RequestedValue int64                        `json:"requested_value"` // in cents
	UsedValue      int64                        `json:"used_value"`      // in cents
	StatusCounts   map[models.ProductStatus]int `json:"status_counts"`
}

func SummarizeProducts(products []models.Product) ProductSummary {
	summary := ProductSummary{
		Products:     len(products),
		StatusCounts: make(map[models.ProductStatus]int),
	}

	for _, p := range products {
		summary.Requested += p.QuantityRequested
		summary.Confirmed += p.QuantityConfirmed
		summary.Shipped += p.QuantityShipped
		summary.Delivered += p.QuantityDelivered
		summary.Used += p.QuantityUsed
		summary.Returned += p.QuantityReturned
		summary.Damaged += p.QuantityDamaged
		summary.RequestedValue += p.UnitCost * int64(p.QuantityRequested)
		summary.UsedValue += p.UnitCost * int64(p.QuantityUsed)
		summary.StatusCounts[p.Status]++
		if p.Status == models.ProductReconciled {
			summary.Unaccounted += p.Unaccounted()
		}
	}

	return summary
}

type StaffSummary struct {
	Total       int                        `json:"total"`
	Verified    int                        `json:"verified"`
	HoursWorked float64                    `json:"hours_worked"`
	LaborCost   int64                      `json:"labor_cost"` // in cents
	ByStatus    map[models.ClockStatus]int `json:"by_status"`
}

func SummarizeStaff(staff []models.Personnel) StaffSummary {
	summary := StaffSummary{Total: len(staff), ByStatus: make(map[models.ClockStatus]int)}
	for _, p := range staff {
		summary.ByStatus[p.ClockStatus]++
		summary.HoursWorked += p.TotalHoursWorked
		summary.LaborCost += int64(float64(p.HourlyRate) * p.TotalHoursWorked)
		if p.ProductKnowledgeVerified {
			summary.Verified++
		}
	}
	return summary
}
