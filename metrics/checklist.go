// ABOUTME: Checklist grouping and completion progress
// ABOUTME: Groups keep first-seen category order
package metrics

import "github.com/harperreed/activator/models"

type ChecklistGroup struct {
	Category  string                 `json:"category"`
	Items     []models.ChecklistItem `json:"items"`
	Completed int                    `json:"completed"`
}

type ChecklistProgress struct {
	Groups            []ChecklistGroup `json:"groups"`
	Total             int              `json:"total"`
	Completed         int              `json:"completed"`
	Required          int              `json:"required"`
	RequiredCompleted int              `json:"required_completed"`
	Pct               int              `json:"pct"`
	Ready             bool             `json:"ready"` // every required item done
}

func GroupChecklist(items []models.ChecklistItem) ChecklistProgress {
	var progress ChecklistProgress
	index := make(map[string]int)

	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(progress.Groups)
			index[item.Category] = i
			progress.Groups = append(progress.Groups, ChecklistGroup{Category: item.Category})
		}
		group := &progress.Groups[i]
		group.Items = append(group.Items, item)

		progress.Total++
		if item.Required {
			progress.Required++
		}
		if item.Completed {
			group.Completed++
			progress.Completed++
			if item.Required {
				progress.RequiredCompleted++
			}
		}
	}

	progress.Pct = Percent(int64(progress.Completed), int64(progress.Total))
	progress.Ready = progress.RequiredCompleted == progress.Required
	return progress
}
